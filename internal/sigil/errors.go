package sigil

import "errors"

// Domain errors for sigil composition.
var (
	// ErrInvalidParams indicates a parameter outside its valid range.
	ErrInvalidParams = errors.New("sigil: invalid render parameters")
)
