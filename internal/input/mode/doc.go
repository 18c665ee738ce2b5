// Package mode provides the terminal mode context used during input
// resolution.
//
// The VT interpreter owns the terminal modes that change which bytes a key
// produces:
//   - Application keypad mode (DECKPAM/DECKPNM, DECNKM): keypad keys send
//     application sequences.
//   - Application cursor mode (DECCKM): arrow keys send SS3 sequences
//     instead of CSI sequences.
//
// A Context is a value snapshot of those flags together with the
// configured ignore mask and forced selection modifier. It is taken fresh
// for every resolution and never retained, so a mode change between two
// events is always observed.
//
//	flags := mode.NewFlags()
//	flags.ApplyPrivateMode(mode.DECCKM, true)
//	ctx := mode.Snapshot(flags, cfg.IgnoreMod, cfg.ForceMouseMod)
//	result := resolver.ResolveKey(ev, ctx)
//
// Flags is a concurrency-safe State implementation that an interpreter or
// a test can toggle and observe.
package mode
