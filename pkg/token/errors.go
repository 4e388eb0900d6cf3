package token

import "errors"

// ErrGeneration indicates the system entropy source failed.
var ErrGeneration = errors.New("token.generation_failed")
