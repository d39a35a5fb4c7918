package app

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/tidwall/gjson"

	"github.com/dshills/viewkit/internal/config"
	"github.com/dshills/viewkit/internal/engine"
	"github.com/dshills/viewkit/internal/render"
	"github.com/dshills/viewkit/internal/render/term"
)

// Run takes over the terminal, spawns the engine, and drives the
// event loop until quit, engine exit, or context cancellation.
func (a *Application) Run(ctx context.Context) error {
	screen, err := term.NewScreen()
	if err != nil {
		return fmt.Errorf("app: terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("app: terminal init: %w", err)
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	proc, err := engine.StartProcess(ctx, a.cfg.Engine.Path, a.cfg.Engine.Args, a.log)
	if err != nil {
		return fmt.Errorf("app: engine: %w", err)
	}
	defer proc.Stop()
	a.conn = proc.Conn()

	if watcher, err := config.Watch(a.cfgPath, a.queueConfig, a.log); err != nil {
		a.log.Warn("config live reload disabled", "err", err)
	} else {
		defer watcher.Close()
	}

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- engine.Serve(ctx, proc.Stdout(), engineHandler{a}, a.log)
	}()

	termEvents := make(chan tcell.Event, 16)
	go func() {
		defer close(termEvents)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case termEvents <- ev:
			case <-a.done:
				return
			}
		}
	}()
	defer screen.Interrupt()

	if err := a.handshake(screen); err != nil {
		return err
	}

	for {
		if a.dirty {
			a.paint(screen)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.done:
			return nil
		case err := <-serveDone:
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("app: engine exited: %w", err)
			}
			return nil
		case fn := <-a.msgs:
			fn()
		case cfg := <-a.cfgCh:
			a.applyConfig(cfg)
		case ev, ok := <-termEvents:
			if !ok {
				return nil
			}
			if err := a.handleTermEvent(ev); err != nil {
				return err
			}
		}
	}
}

// handshake announces the client and requests the initial view.
func (a *Application) handshake(screen *term.Screen) error {
	if err := a.conn.Notify("client_started", map[string]any{}); err != nil {
		return fmt.Errorf("app: handshake: %w", err)
	}

	params := map[string]any{}
	if a.opts.File != "" {
		params["file_path"] = a.opts.File
		a.view.SetFilename(a.opts.File)
	}
	id, err := a.conn.Request("new_view", params)
	if err != nil {
		return fmt.Errorf("app: new_view: %w", err)
	}
	a.newViewReq = id

	w, h := screen.SizePx()
	a.view.Resize(w, h)
	a.dirty = true
	return nil
}

func (a *Application) handleTermEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := term.ConvertResize(ev)
		a.view.Resize(w, h)
		a.translator.SyncViewport()
		a.dirty = true

	case *tcell.EventKey:
		kev, ok := term.ConvertKey(ev)
		if !ok {
			return nil
		}
		return a.handleKey(kev)

	case *tcell.EventMouse:
		if delta, mods, ok := term.ConvertWheel(ev); ok {
			a.translator.Wheel(delta, mods)
			return nil
		}
		if x, y, mods, ok := term.ConvertClick(ev); ok {
			line, col := a.pointerPos(x, y)
			if a.mouseDown {
				a.translator.Drag(line, col, mods)
			} else {
				a.mouseDown = true
				a.translator.Click(line, col, mods, 1)
			}
		} else if ev.Buttons() == tcell.ButtonNone {
			a.mouseDown = false
		}
	}
	return nil
}

// pointerPos resolves a window pixel position to a document line and
// byte offset. Clicks on invalid or missing lines land at offset 0.
func (a *Application) pointerPos(x, y float64) (int, int) {
	line := a.view.Viewport().YToLine(y)
	col := 0
	if l := a.view.Cache().GetLine(line); l != nil {
		cell := int(math.Round((x - render.LeftMargin) / term.CellWidth))
		col = term.NewMonoLayout(l.Text).OffsetForCol(cell)
	}
	return line, col
}

func (a *Application) paint(screen *term.Screen) {
	a.view.Render(screen, screen)
	screen.Show()
	a.dirty = false
}

// queueConfig hands a reloaded config to the event loop, replacing
// any still-unapplied one.
func (a *Application) queueConfig(cfg config.Config) {
	for {
		select {
		case a.cfgCh <- cfg:
			return
		case <-a.cfgCh:
		case <-a.done:
			return
		}
	}
}

// engineHandler forwards engine notifications onto the event loop.
// Payload bytes are copied because the reader reuses its buffer.
type engineHandler struct {
	a *Application
}

func (h engineHandler) Update(viewID string, update []byte) {
	raw := append([]byte(nil), update...)
	h.a.post(func() {
		if viewID != "" && viewID != h.a.view.ViewID() {
			return
		}
		if err := h.a.view.ApplyUpdate(raw); err != nil {
			return
		}
		h.a.translator.SyncViewport()
		h.a.dirty = true
	})
}

func (h engineHandler) ScrollTo(viewID string, line, col int) {
	h.a.post(func() {
		if viewID != "" && viewID != h.a.view.ViewID() {
			return
		}
		h.a.view.ScrollTo(line, col)
		h.a.translator.SyncViewport()
		h.a.dirty = true
	})
}

func (h engineHandler) DefStyle(raw []byte) {
	id := gjson.GetBytes(raw, "id").Int()
	h.a.post(func() {
		h.a.log.Debug("style defined", "id", id)
	})
}

func (h engineHandler) Response(id string, result []byte) {
	value := gjson.ParseBytes(result).String()
	h.a.post(func() {
		if id != h.a.newViewReq {
			h.a.log.Debug("dropping response", "id", id)
			return
		}
		h.a.view.SetViewID(value)
		h.a.log.Info("view ready", "view_id", value)
		h.a.translator.SyncViewport()
	})
}
