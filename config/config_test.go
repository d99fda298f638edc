package config

import (
	"testing"

	"github.com/FractalFuryan/dual-chain-geophase/keyschedule"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("Default() must be valid: %v", err)
	}
}

func TestValidateRejectsOutOfRangeNSym(t *testing.T) {
	cfg := Default()
	cfg.NSym = 16
	if err := Validate(cfg); err == nil {
		t.Fatalf("Validate must reject nsym below the minimum")
	}
	cfg.NSym = 256
	if err := Validate(cfg); err == nil {
		t.Fatalf("Validate must reject nsym above the maximum")
	}
}

func TestValidateRejectsOddNSym(t *testing.T) {
	cfg := Default()
	cfg.NSym = 65
	if err := Validate(cfg); err == nil {
		t.Fatalf("Validate must reject an odd nsym")
	}
}

func TestValidateRejectsUnknownKDFMode(t *testing.T) {
	cfg := Default()
	cfg.KDFMode = keyschedule.Mode(99)
	if err := Validate(cfg); err == nil {
		t.Fatalf("Validate must reject an unknown kdf_mode")
	}
}

func TestValidateRejectsTinyFrameSize(t *testing.T) {
	cfg := Default()
	cfg.FrameSize = 1
	if err := Validate(cfg); err == nil {
		t.Fatalf("Validate must reject a frame size too small for the overhead")
	}
}
