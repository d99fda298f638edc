// Package config carries the tunable surface of the transport: the
// Reed-Solomon parity count, the KDF mode, and the frame size. Nothing
// here affects acceptance semantics — only how much error-correction
// headroom and carrier bulk a deployment is willing to pay for.
package config

import (
	"errors"
	"fmt"

	"github.com/FractalFuryan/dual-chain-geophase/keyschedule"
)

// Config is a plain value. Default does not validate it; Validate does,
// and pipeline.Encode calls Validate on every call.
type Config struct {
	NSym      uint16           `json:"nsym"`
	KDFMode   keyschedule.Mode `json:"kdf_mode"`
	FrameSize int              `json:"frame_size"`
}

const (
	minNSym = 32
	maxNSym = 128

	// NonceFieldLen plus TagLen leave headroom the frame size must clear
	// on top of the caller's declared plaintext length and parity count.
	minFrameOverhead = 12 + 16
)

// Default returns the standard configuration: NSYM=64 (corrects up to 32
// byte errors per codeword), deterministic KDF mode, and a 512-byte frame.
func Default() Config {
	return Config{
		NSym:      64,
		KDFMode:   keyschedule.Deterministic,
		FrameSize: 512,
	}
}

// Validate rejects any configuration whose NSYM falls outside the
// supported 32..128 range, whose NSYM is odd, whose KDF mode is unknown,
// or whose frame size cannot hold even an empty plaintext's carrier.
func Validate(cfg Config) error {
	if cfg.NSym < minNSym || cfg.NSym > maxNSym {
		return fmt.Errorf("config: nsym must be in [%d,%d], got %d", minNSym, maxNSym, cfg.NSym)
	}
	if cfg.NSym%2 != 0 {
		return errors.New("config: nsym must be even")
	}
	switch cfg.KDFMode {
	case keyschedule.Deterministic, keyschedule.HKDFMode:
	default:
		return fmt.Errorf("config: unknown kdf_mode %v", cfg.KDFMode)
	}
	if cfg.FrameSize < minFrameOverhead+int(cfg.NSym) {
		return fmt.Errorf("config: frame_size %d too small for nsym=%d overhead", cfg.FrameSize, cfg.NSym)
	}
	return nil
}
