package pipeline

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel for every calling-convention violation
// this package detects: an invalid config, a missing explicit nonce in
// random-nonce mode, an unknown nonce mode, a key-derivation, sealing or
// framing failure in Encode, or, after the covenant gate has already
// accepted a header, a commitment chain that refuses to advance past it.
// It is always wrapped with a reason via
// invalidInput, never returned bare.
var ErrInvalidInput = errors.New("pipeline: invalid input")

func invalidInput(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}
