package resolve

import (
	"github.com/dshills/vtkeys/internal/input/key"
	"github.com/dshills/vtkeys/internal/input/keymap"
	"github.com/dshills/vtkeys/internal/input/mode"
	"github.com/dshills/vtkeys/internal/input/mouse"
)

// SelectionVariant returns the variant whose mask exactly equals held.
// Variants are tried in ascending order and only concrete masks take part.
// Without a match the result is SelectNormal.
func SelectionVariant(held key.Modifier, masks keymap.SelectionMasks) keymap.SelectionVariant {
	for _, v := range masks.Variants() {
		mask, _ := masks.Lookup(v)
		if mask.IsConcrete() && key.Matches(mask, held) {
			return v
		}
	}
	return keymap.SelectNormal
}

// SelectionVariantFor picks the variant for a selection started by ev. The
// forced selection modifier is removed from the held modifiers first, so
// forcing a selection does not change its shape.
func SelectionVariantFor(ev mouse.Event, ctx mode.Context, masks keymap.SelectionMasks) keymap.SelectionVariant {
	return SelectionVariant(ev.Modifiers&^ctx.ForceSelect, masks)
}
