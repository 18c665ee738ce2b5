package key

import "errors"

// Errors returned when parsing key and mask specifications.
var (
	// ErrUnknownKey indicates a key name that is not recognized.
	ErrUnknownKey = errors.New("unknown key")

	// ErrUnknownModifier indicates a modifier name that is not recognized.
	ErrUnknownModifier = errors.New("unknown modifier")
)
