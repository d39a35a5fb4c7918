package linecache

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// DecodeUpdate parses the JSON body of an engine update notification.
// Expected shape:
//
//	{"rev": 12, "height": 2, "ops": [
//	    {"op": "ins", "n": 2, "lines": [{"text": "hello", "cursors": [0]}]},
//	    ...
//	]}
//
// The rev and height fields are optional. Line records accept
// "cursor" as an alias for "cursors" for engine compatibility, and
// styles as a flat array of (offset, length, style-id) triples.
func DecodeUpdate(raw []byte) (Update, error) {
	root := gjson.ParseBytes(raw)
	var u Update

	if r := root.Get("rev"); r.Exists() {
		u.Rev = r.Uint()
	}
	if h := root.Get("height"); h.Exists() {
		u.Height = int(h.Int())
		u.HasHeight = true
	}

	ops := root.Get("ops")
	if !ops.IsArray() {
		return Update{}, fmt.Errorf("%w: missing ops array", ErrMalformedPatch)
	}

	var err error
	opIdx := 0
	ops.ForEach(func(_, opv gjson.Result) bool {
		var op Op
		op, err = decodeOp(opIdx, opv)
		if err != nil {
			return false
		}
		u.Ops = append(u.Ops, op)
		opIdx++
		return true
	})
	if err != nil {
		return Update{}, err
	}
	return u, nil
}

// ApplyJSON decodes and applies an update payload in one step.
func (c *Cache) ApplyJSON(raw []byte) error {
	u, err := DecodeUpdate(raw)
	if err != nil {
		return err
	}
	return c.ApplyUpdate(u)
}

func decodeOp(idx int, opv gjson.Result) (Op, error) {
	var op Op

	switch name := opv.Get("op").String(); name {
	case "copy":
		op.Kind = OpCopy
	case "skip":
		op.Kind = OpSkip
	case "invalidate":
		op.Kind = OpInvalidate
	case "ins":
		op.Kind = OpInsert
	case "update":
		op.Kind = OpUpdate
	default:
		return Op{}, fmt.Errorf("%w: op %d has unknown kind %q", ErrMalformedPatch, idx, name)
	}

	op.N = int(opv.Get("n").Int())

	if lines := opv.Get("lines"); lines.IsArray() {
		lines.ForEach(func(_, lv gjson.Result) bool {
			op.Lines = append(op.Lines, decodeLineSpec(lv))
			return true
		})
	}

	// An ins op without an explicit count inserts all supplied lines.
	if op.Kind == OpInsert && op.N == 0 {
		op.N = len(op.Lines)
	}
	return op, nil
}

func decodeLineSpec(lv gjson.Result) LineSpec {
	var spec LineSpec

	if t := lv.Get("text"); t.Exists() {
		spec.Text = t.String()
		spec.HasText = true
	}

	cursors := lv.Get("cursors")
	if !cursors.Exists() {
		cursors = lv.Get("cursor")
	}
	if cursors.IsArray() {
		spec.Cursors = make([]int, 0, len(cursors.Array()))
		cursors.ForEach(func(_, cv gjson.Result) bool {
			spec.Cursors = append(spec.Cursors, int(cv.Int()))
			return true
		})
	}

	if styles := lv.Get("styles"); styles.IsArray() {
		spec.Styles = decodeStyles(styles)
	}
	return spec
}

// decodeStyles unpacks a flat triple array into style spans.
// A trailing partial triple is dropped.
func decodeStyles(styles gjson.Result) []StyleSpan {
	flat := styles.Array()
	spans := make([]StyleSpan, 0, len(flat)/3)
	for i := 0; i+2 < len(flat); i += 3 {
		spans = append(spans, StyleSpan{
			Offset:  int(flat[i].Int()),
			Length:  int(flat[i+1].Int()),
			StyleID: int(flat[i+2].Int()),
		})
	}
	return spans
}
