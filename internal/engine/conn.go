package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tidwall/sjson"
)

// Conn writes engine messages to a transport, one JSON object per
// line. It is safe for concurrent use; writes are serialized so the
// engine observes commands in emission order.
type Conn struct {
	mu  sync.Mutex
	w   io.Writer
	log *log.Logger
}

// ConnOption configures a Conn.
type ConnOption func(*Conn)

// WithLogger sets the connection logger.
func WithLogger(logger *log.Logger) ConnOption {
	return func(c *Conn) {
		c.log = logger
	}
}

// NewConn wraps a transport writer.
func NewConn(w io.Writer, opts ...ConnOption) *Conn {
	c := &Conn{w: w, log: log.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendEdit sends an edit command addressed to a view. Nil params
// encode as an empty argument list.
func (c *Conn) SendEdit(method string, params any, viewID string) error {
	if params == nil {
		params = []any{}
	}

	body, err := buildMessage("edit", nil)
	if err != nil {
		return err
	}
	if body, err = sjson.Set(body, "params.method", method); err != nil {
		return fmt.Errorf("engine: encode edit %q: %w", method, err)
	}
	if body, err = sjson.Set(body, "params.params", params); err != nil {
		return fmt.Errorf("engine: encode edit %q params: %w", method, err)
	}
	if body, err = sjson.Set(body, "params.view_id", viewID); err != nil {
		return fmt.Errorf("engine: encode edit %q view id: %w", method, err)
	}
	return c.writeLine(body)
}

// Notify sends a plain notification with no reply expected.
func (c *Conn) Notify(method string, params any) error {
	body, err := buildMessage(method, params)
	if err != nil {
		return err
	}
	return c.writeLine(body)
}

// Request sends a message carrying a fresh request id and returns the
// id so the caller can correlate the eventual response.
func (c *Conn) Request(method string, params any) (string, error) {
	body, err := buildMessage(method, params)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	if body, err = sjson.Set(body, "id", id); err != nil {
		return "", fmt.Errorf("engine: encode request id: %w", err)
	}
	if err := c.writeLine(body); err != nil {
		return "", err
	}
	return id, nil
}

func buildMessage(method string, params any) (string, error) {
	body, err := sjson.Set("{}", "method", method)
	if err != nil {
		return "", fmt.Errorf("engine: encode method %q: %w", method, err)
	}
	if params != nil {
		if body, err = sjson.Set(body, "params", params); err != nil {
			return "", fmt.Errorf("engine: encode %q params: %w", method, err)
		}
	}
	return body, nil
}

func (c *Conn) writeLine(body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := io.WriteString(c.w, body+"\n"); err != nil {
		c.log.Error("engine write failed", "err", err)
		return fmt.Errorf("engine: write: %w", err)
	}
	return nil
}
