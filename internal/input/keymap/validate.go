package keymap

import (
	"fmt"

	"github.com/dshills/vtkeys/internal/input/key"
	"github.com/dshills/vtkeys/internal/input/mouse"
)

// Reason describes a configuration defect found by the validation pass.
type Reason string

const (
	// ReasonShadowed marks an entry that an earlier Any-mask entry for the
	// same identifier wins over in at least one mode state.
	ReasonShadowed Reason = "shadowed by earlier Any-mask entry"

	// ReasonDuplicate marks an entry that repeats an earlier reachable entry.
	ReasonDuplicate Reason = "duplicate reachable entry"

	// ReasonOverridden marks an escape binding that a shortcut always wins over.
	ReasonOverridden Reason = "overridden by shortcut"

	// ReasonUnreachable marks a selection mask that includes the forced
	// selection modifier, which is removed before the lookup.
	ReasonUnreachable Reason = "selection mask includes forced selection modifier"
)

// Warning is a configuration defect reported by the validation pass.
// Defects never stop a table from being built or used.
type Warning struct {
	// Table names the table holding the conflicting entries.
	Table string
	// Indices are the positions of the conflicting entries, earliest first.
	// For the selection table they are SelectionVariant values.
	Indices []int
	// Reason describes the defect.
	Reason Reason
	// Related names an entry in another table involved in the defect,
	// like "shortcuts[6]". Empty for single-table defects.
	Related string
}

// String returns a representation like "keys[3 5]: duplicate reachable entry".
func (w Warning) String() string {
	s := fmt.Sprintf("%s%v: %s", w.Table, w.Indices, w.Reason)
	if w.Related != "" {
		s += " (" + w.Related + ")"
	}
	return s
}

// rule is the matching-relevant part of a table entry.
type rule struct {
	ident  int
	mask   key.Mask
	keypad Requirement
	cursor Requirement
	phase  mouse.Phase
}

// covers reports whether every event state accepted by o's mode and phase
// conditions is also accepted by r's.
func (r rule) covers(o rule) bool {
	return r.keypad.Covers(o.keypad) &&
		r.cursor.Covers(o.cursor) &&
		r.phase.Covers(o.phase)
}

// overlaps reports whether some event state is accepted by both r's and o's
// mode and phase conditions.
func (r rule) overlaps(o rule) bool {
	return r.keypad.Overlaps(o.keypad) &&
		r.cursor.Overlaps(o.cursor) &&
		r.phase.Overlaps(o.phase)
}

// validateRules reports, for each entry, the first earlier entry that makes
// it unreachable in some mode state. A concrete entry after an Any entry
// for the same identifier is shadowed whenever their conditions overlap.
func validateRules(table string, rules []rule) []Warning {
	var warnings []Warning
	for j, later := range rules {
		for i := 0; i < j; i++ {
			earlier := rules[i]
			if earlier.ident != later.ident {
				continue
			}
			var reason Reason
			switch {
			case earlier.mask == later.mask && earlier.covers(later):
				reason = ReasonDuplicate
			case earlier.mask.IsAny() && !later.mask.IsAny() && earlier.overlaps(later):
				reason = ReasonShadowed
			default:
				continue
			}
			warnings = append(warnings, Warning{
				Table:   table,
				Indices: []int{i, j},
				Reason:  reason,
			})
			break
		}
	}
	return warnings
}

// validateOverrides reports escape bindings that a shortcut wins over in
// every mode. Shortcuts are consulted first and carry no mode requirements,
// so a shortcut with the same key overrides an escape binding whose mask it
// accepts entirely.
func validateOverrides(shortcuts *ShortcutTable, keys *EscapeTable) []Warning {
	var warnings []Warning
	for j := 0; j < keys.Len(); j++ {
		esc := keys.At(j)
		for i := 0; i < shortcuts.Len(); i++ {
			sc := shortcuts.At(i)
			if sc.Key != esc.Key {
				continue
			}
			if sc.Mask.IsAny() || sc.Mask == esc.Mask {
				warnings = append(warnings, Warning{
					Table:   keys.Name(),
					Indices: []int{j},
					Reason:  ReasonOverridden,
					Related: fmt.Sprintf("%s[%d]", shortcuts.Name(), i),
				})
				break
			}
		}
	}
	return warnings
}

// Validate reports variants that share a mask. Only the lowest variant of
// such a group can ever be selected.
func (s SelectionMasks) Validate() []Warning {
	var warnings []Warning
	variants := s.Variants()
	for j, later := range variants {
		for _, earlier := range variants[:j] {
			if s.masks[earlier] == s.masks[later] {
				warnings = append(warnings, Warning{
					Table:   TableSelection,
					Indices: []int{int(earlier), int(later)},
					Reason:  ReasonDuplicate,
				})
				break
			}
		}
	}
	return warnings
}

// Unreachable reports variants whose mask includes the forced selection
// modifier. That modifier is removed from the held set before the lookup,
// so such a mask never matches.
func (s SelectionMasks) Unreachable(force key.Modifier) []Warning {
	force &= key.ModAll
	if force == key.ModNone {
		return nil
	}
	var warnings []Warning
	for _, v := range s.Variants() {
		if s.masks[v].Modifiers()&force != 0 {
			warnings = append(warnings, Warning{
				Table:   TableSelection,
				Indices: []int{int(v)},
				Reason:  ReasonUnreachable,
			})
		}
	}
	return warnings
}
