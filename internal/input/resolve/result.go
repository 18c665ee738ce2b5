package resolve

import (
	"fmt"
	"strconv"

	"github.com/dshills/vtkeys/internal/input/keymap"
)

// Kind is the outcome of a resolution.
type Kind uint8

const (
	// Unhandled means no table entry matched.
	Unhandled Kind = iota
	// Action means an entry bound the event to an application action.
	Action
	// Bytes means an escape binding produced bytes for the terminal.
	Bytes
	// Selection means the event starts a forced selection.
	Selection
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Action:
		return "action"
	case Bytes:
		return "bytes"
	case Selection:
		return "selection"
	default:
		return "unhandled"
	}
}

// Result is the outcome of resolving one event.
type Result struct {
	// Kind says which of the fields below are meaningful.
	Kind Kind

	// Action and Arg are set for Action results.
	Action string
	Arg    keymap.Argument

	// Bytes holds the output of the winning escape binding. Each result
	// owns its slice.
	Bytes []byte

	// Variant is set for Selection results.
	Variant keymap.SelectionVariant

	// Table and Index identify the winning entry. Index is -1 when no
	// entry won.
	Table string
	Index int
}

// unhandled is the result for events no entry matched.
var unhandled = Result{Kind: Unhandled, Index: -1}

// IsHandled returns true for every kind except Unhandled.
func (r Result) IsHandled() bool {
	return r.Kind != Unhandled
}

// String returns a representation like `keys[4]: bytes "\x1b[1;2A"`.
func (r Result) String() string {
	switch r.Kind {
	case Action:
		return fmt.Sprintf("%s[%d]: action %s(%s)", r.Table, r.Index, r.Action, r.Arg)
	case Bytes:
		return fmt.Sprintf("%s[%d]: bytes %s", r.Table, r.Index, strconv.Quote(string(r.Bytes)))
	case Selection:
		return "selection " + r.Variant.String()
	default:
		return "unhandled"
	}
}
