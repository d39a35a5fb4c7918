// Package app wires the frontend together: configuration, the view,
// the input translator, the engine process, and the terminal screen,
// coordinated by a single-goroutine event loop.
package app

import (
	"errors"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/dshills/viewkit/internal/config"
	"github.com/dshills/viewkit/internal/config/luaext"
	"github.com/dshills/viewkit/internal/engine"
	"github.com/dshills/viewkit/internal/input"
	"github.com/dshills/viewkit/internal/input/key"
	"github.com/dshills/viewkit/internal/view"
)

// ErrQuit signals a user-requested exit.
var ErrQuit = errors.New("quit requested")

// quitChord exits the event loop.
var quitChord = key.NewRuneEvent('q', key.ModCtrl)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty means
	// the conventional location.
	ConfigPath string

	// InitScript is the path to a Lua init script with extra key
	// bindings.
	InitScript string

	// EnginePath overrides the engine executable from the config.
	EnginePath string

	// File is the document to open, empty for a scratch view.
	File string

	// LogLevel sets the logging verbosity.
	LogLevel string
}

// Application coordinates one view against one engine process. All
// mutable state is owned by the event loop goroutine; inbound engine
// notifications and config reloads are marshaled onto it.
type Application struct {
	opts    Options
	log     *log.Logger
	cfgPath string

	cfg       config.Config
	keymap    map[key.Event]string
	luaKeymap map[string]string

	view       *view.View
	translator *input.Translator
	conn       *engine.Conn

	msgs  chan func()
	cfgCh chan config.Config

	newViewReq string
	dirty      bool
	mouseDown  bool

	done      chan struct{}
	closeOnce sync.Once
}

// New creates an application: loads config, runs the init script, and
// builds the view and translator. The engine and terminal are
// acquired by Run.
func New(opts Options) (*Application, error) {
	logger := newLogger(opts.LogLevel)

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Warn("using default configuration", "err", err)
		cfg = config.Default()
	}
	if opts.EnginePath != "" {
		cfg.Engine.Path = opts.EnginePath
	}

	a := &Application{
		opts:    opts,
		log:     logger,
		cfgPath: cfgPath,
		msgs:    make(chan func(), 64),
		cfgCh:   make(chan config.Config, 1),
		done:    make(chan struct{}),
	}

	if opts.InitScript != "" {
		bindings, err := luaext.RunFile(opts.InitScript)
		if err != nil {
			return nil, err
		}
		a.luaKeymap = bindings.Merge(nil)
	}

	a.view = view.New(view.WithLogger(logger))
	a.translator = input.New(appSink{a}, a.view.Viewport())
	a.applyConfig(cfg)
	return a, nil
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "viewkit",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// Shutdown stops the event loop. Safe to call more than once and from
// any goroutine.
func (a *Application) Shutdown() {
	a.closeOnce.Do(func() {
		close(a.done)
	})
}

// applyConfig installs a loaded config: scroll scaling, theme, and
// the keymap with init-script bindings layered on top. Event loop
// goroutine only.
func (a *Application) applyConfig(cfg config.Config) {
	a.cfg = cfg
	a.translator.SetScrollScaling(cfg.ScrollScaling)
	a.view.SetTheme(cfg.RenderTheme())

	merged := make(map[string]string, len(cfg.Keymap)+len(a.luaKeymap))
	for chord, cmd := range cfg.Keymap {
		merged[chord] = cmd
	}
	for chord, cmd := range a.luaKeymap {
		merged[chord] = cmd
	}
	cfg.Keymap = merged
	a.keymap = cfg.ParsedKeymap()
	a.dirty = true
}

// handleKey routes one key event: quit chord, user keymap, then the
// translator's built-in dispatch. Unconsumed printable characters go
// down the character path.
func (a *Application) handleKey(ev key.Event) error {
	if ev.Equals(quitChord) {
		return ErrQuit
	}
	if cmd, bound := a.keymap[ev]; bound {
		if !a.translator.Menu(cmd) {
			a.log.Warn("chord bound to unknown command", "chord", ev.String(), "command", cmd)
		}
		return nil
	}
	if a.translator.KeyDown(ev) {
		return nil
	}
	if ev.IsChar() && !ev.Modifiers.HasCtrl() && !ev.Modifiers.HasAlt() && !ev.Modifiers.HasMeta() {
		a.translator.Char(ev.Rune)
	}
	return nil
}

// post marshals a closure onto the event loop.
func (a *Application) post(fn func()) {
	select {
	case a.msgs <- fn:
	case <-a.done:
	}
}

// appSink adapts the application to the translator's sink.
type appSink struct {
	a *Application
}

func (s appSink) SendEdit(method string, params any) {
	if s.a.conn == nil {
		return
	}
	// Write failures are logged by the connection; the loop keeps
	// running until the engine reader sees EOF.
	_ = s.a.conn.SendEdit(method, params, s.a.view.ViewID())
}

func (s appSink) Invalidate() {
	s.a.dirty = true
}
