package engine

import (
	"bufio"
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
)

// maxLineBytes bounds a single inbound message. Update patches for
// very wide documents can be large.
const maxLineBytes = 16 * 1024 * 1024

// Handler receives inbound engine notifications. All methods are
// called sequentially from the Serve goroutine; implementations
// forward to the UI event loop to preserve ordering.
type Handler interface {
	// Update delivers an update patch payload for a view. The raw
	// bytes are the update object itself.
	Update(viewID string, update []byte)

	// ScrollTo asks the view to reveal a document position.
	ScrollTo(viewID string, line, col int)

	// DefStyle announces a style definition. Raw is the full params
	// object.
	DefStyle(raw []byte)

	// Response delivers the result of an earlier Request, correlated
	// by id.
	Response(id string, result []byte)
}

// Serve reads newline-delimited JSON messages until EOF or context
// cancellation, routing notifications to the handler. Messages it
// cannot parse are logged and skipped; the view never reorders or
// drops parseable updates.
func Serve(ctx context.Context, r io.Reader, h Handler, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		dispatch(scanner.Bytes(), h, logger)
	}
	if err := scanner.Err(); err != nil {
		logger.Error("engine read failed", "err", err)
		return err
	}
	return nil
}

func dispatch(line []byte, h Handler, logger *log.Logger) {
	if !gjson.ValidBytes(line) {
		logger.Error("engine sent invalid JSON", "len", len(line))
		return
	}
	root := gjson.ParseBytes(line)
	method := root.Get("method").String()
	params := root.Get("params")

	switch method {
	case "update":
		viewID := params.Get("view_id").String()
		update := params.Get("update")
		if !update.Exists() {
			logger.Error("update notification without payload", "view_id", viewID)
			return
		}
		h.Update(viewID, []byte(update.Raw))

	case "scroll_to":
		h.ScrollTo(
			params.Get("view_id").String(),
			int(params.Get("line").Int()),
			int(params.Get("col").Int()),
		)

	case "def_style":
		h.DefStyle([]byte(params.Raw))

	case "":
		// Responses to requests carry an id and no method.
		id := root.Get("id")
		if !id.Exists() {
			logger.Error("engine sent message with no method or id")
			return
		}
		h.Response(id.String(), []byte(root.Get("result").Raw))

	default:
		logger.Debug("unhandled engine notification", "method", method)
	}
}
