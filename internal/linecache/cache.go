// Package linecache mirrors a window of document lines owned by the
// text engine, kept in sync by incremental update patches.
package linecache

import (
	"errors"
	"fmt"
	"sync"
)

// ErrMalformedPatch indicates an update patch that could not be applied.
// The cache is left unchanged when it is returned.
var ErrMalformedPatch = errors.New("linecache: malformed patch")

// StyleSpan is a styled region of a line.
type StyleSpan struct {
	// Offset is the byte offset of the span start within the line text.
	Offset int

	// Length is the span length in bytes.
	Length int

	// StyleID identifies the style definition for the span.
	StyleID int
}

// Line is a present cache slot.
type Line struct {
	// Text is the line content without a trailing newline.
	Text string

	// Cursors holds byte offsets of carets on this line.
	Cursors []int

	// Styles holds the style spans for this line.
	Styles []StyleSpan
}

// OpKind identifies a patch operation.
type OpKind uint8

const (
	// OpCopy takes the next N slots from the old cache unchanged.
	OpCopy OpKind = iota

	// OpSkip drops the next N slots from the old cache.
	OpSkip

	// OpInvalidate appends N invalid placeholders.
	OpInvalidate

	// OpInsert appends the supplied literal lines.
	OpInsert

	// OpUpdate takes N slots from the old cache, overlaying cursor and
	// style fields from the supplied records while keeping the text.
	OpUpdate
)

// String returns the wire name of the op kind.
func (k OpKind) String() string {
	switch k {
	case OpCopy:
		return "copy"
	case OpSkip:
		return "skip"
	case OpInvalidate:
		return "invalidate"
	case OpInsert:
		return "ins"
	case OpUpdate:
		return "update"
	default:
		return fmt.Sprintf("op(%d)", k)
	}
}

// LineSpec is a line record carried by an ins or update op.
// Nil Cursors or Styles mean the field was absent, which preserves
// the prior value during an update overlay.
type LineSpec struct {
	Text    string
	HasText bool
	Cursors []int
	Styles  []StyleSpan
}

// Op is a single patch operation.
type Op struct {
	Kind  OpKind
	N     int
	Lines []LineSpec
}

// Update is a decoded patch.
type Update struct {
	// Rev is the engine revision token, zero when absent.
	Rev uint64

	// Height is the declared line count after the patch; only
	// meaningful when HasHeight is set.
	Height int

	// HasHeight records whether the patch declared a height.
	HasHeight bool

	// Ops transforms the prior cache into the new one, in order.
	Ops []Op
}

// Stats holds cache counters.
type Stats struct {
	// Applies is the number of successfully applied patches.
	Applies uint64

	// Rejected is the number of patches rejected as malformed.
	Rejected uint64
}

// Cache is the local mirror of the engine's document lines.
// Slots are indexed by document line number; a nil slot is a
// placeholder the engine has not delivered yet.
type Cache struct {
	mu    sync.RWMutex
	slots []*Line
	rev   uint64
	stats Stats
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{}
}

// Height returns the total line count the engine claims for the
// document. It is authoritative even when many slots are invalid.
func (c *Cache) Height() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.slots)
}

// GetLine returns the slot at index n, or nil if the slot is invalid
// or out of range. The returned line must not be mutated.
func (c *Cache) GetLine(n int) *Line {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n < 0 || n >= len(c.slots) {
		return nil
	}
	return c.slots[n]
}

// Rev returns the revision token of the last applied patch.
func (c *Cache) Rev() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rev
}

// Stats returns cache counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Reset drops all slots. Used when the engine restarts a view.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots = nil
	c.rev = 0
}

// ApplyUpdate replaces the cache contents by applying the patch.
// On error the cache is left unchanged. The swap is atomic: observers
// never see a half-applied state.
func (c *Cache) ApplyUpdate(u Update) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fresh, err := applyOps(c.slots, u.Ops)
	if err != nil {
		c.stats.Rejected++
		return err
	}
	if u.HasHeight && len(fresh) != u.Height {
		c.stats.Rejected++
		return fmt.Errorf("%w: final length %d does not match declared height %d",
			ErrMalformedPatch, len(fresh), u.Height)
	}

	c.slots = fresh
	c.rev = u.Rev
	c.stats.Applies++
	return nil
}

// applyOps walks the ops over the old slots and builds the new slots.
// A moving index tracks the next unconsumed old slot; every copy,
// skip and update consumes in order, and the total consumed must
// equal the old length.
func applyOps(old []*Line, ops []Op) ([]*Line, error) {
	fresh := make([]*Line, 0, len(old))
	i := 0

	for opIdx, op := range ops {
		if op.N < 0 {
			return nil, fmt.Errorf("%w: op %d (%s) has negative count %d",
				ErrMalformedPatch, opIdx, op.Kind, op.N)
		}

		switch op.Kind {
		case OpCopy:
			if i+op.N > len(old) {
				return nil, overrunErr(opIdx, op, i, len(old))
			}
			fresh = append(fresh, old[i:i+op.N]...)
			i += op.N

		case OpSkip:
			if i+op.N > len(old) {
				return nil, overrunErr(opIdx, op, i, len(old))
			}
			i += op.N

		case OpInvalidate:
			for n := 0; n < op.N; n++ {
				fresh = append(fresh, nil)
			}

		case OpInsert:
			for li, spec := range op.Lines {
				if !spec.HasText {
					return nil, fmt.Errorf("%w: op %d (ins) line %d has no text",
						ErrMalformedPatch, opIdx, li)
				}
				fresh = append(fresh, &Line{
					Text:    spec.Text,
					Cursors: spec.Cursors,
					Styles:  spec.Styles,
				})
			}

		case OpUpdate:
			if len(op.Lines) != op.N {
				return nil, fmt.Errorf("%w: op %d (update) carries %d lines for count %d",
					ErrMalformedPatch, opIdx, len(op.Lines), op.N)
			}
			if i+op.N > len(old) {
				return nil, overrunErr(opIdx, op, i, len(old))
			}
			for n := 0; n < op.N; n++ {
				fresh = append(fresh, overlay(old[i+n], op.Lines[n]))
			}
			i += op.N

		default:
			return nil, fmt.Errorf("%w: op %d has unknown kind %q",
				ErrMalformedPatch, opIdx, op.Kind)
		}
	}

	if i != len(old) {
		return nil, fmt.Errorf("%w: consumed %d of %d old slots",
			ErrMalformedPatch, i, len(old))
	}
	return fresh, nil
}

// overlay merges an update record onto a carried slot. Present cursor
// and style fields replace the prior values; absent fields preserve
// them. Text is always carried from the old slot. An invalid slot
// stays invalid.
func overlay(old *Line, spec LineSpec) *Line {
	if old == nil {
		return nil
	}
	merged := &Line{
		Text:    old.Text,
		Cursors: old.Cursors,
		Styles:  old.Styles,
	}
	if spec.Cursors != nil {
		merged.Cursors = spec.Cursors
	}
	if spec.Styles != nil {
		merged.Styles = spec.Styles
	}
	return merged
}

func overrunErr(opIdx int, op Op, i, oldLen int) error {
	return fmt.Errorf("%w: op %d (%s) consumes %d past old length %d (at %d)",
		ErrMalformedPatch, opIdx, op.Kind, op.N, oldLen, i)
}
