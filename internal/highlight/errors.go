package highlight

import "errors"

// ErrInvariantViolation means the language model no longer knows an entity
// that Check just found, usually because the buffer changed in between.
// It is the only matcher failure that is reported to the user; a missing
// match is an ordinary false from Check.
var ErrInvariantViolation = errors.New("language model out of sync")
