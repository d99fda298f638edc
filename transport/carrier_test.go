package transport

import (
	"bytes"
	"testing"

	"github.com/FractalFuryan/dual-chain-geophase/crypto"
)

func TestCarrierRoundTripClean(t *testing.T) {
	p := crypto.DevStdProvider{}
	var prev [32]byte
	prev[1] = 0x42
	var nonceField [NonceFieldLen]byte
	copy(nonceField[:], []byte("123456789012"))

	payload := []byte("ciphertext-and-tag-payload-bytes")
	nsym := 16
	frameSize := NonceFieldLen + len(payload) + nsym + 32

	carrier, err := Encode(p, prev, 5, nonceField, payload, nsym, frameSize)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(carrier) != frameSize {
		t.Fatalf("carrier length = %d, want %d", len(carrier), frameSize)
	}

	gotNonce, gotPayload := Decode(p, prev, 5, carrier, len(payload), nsym)
	if gotNonce != nonceField {
		t.Fatalf("decoded nonce field mismatch")
	}
	if !bytes.Equal(gotPayload, payload) {
		t.Fatalf("decoded payload = %q, want %q", gotPayload, payload)
	}
}

func TestCarrierTruncationYieldsWrongPayloadNeverPanics(t *testing.T) {
	p := crypto.DevStdProvider{}
	var prev [32]byte
	var nonceField [NonceFieldLen]byte
	payload := []byte("short payload")
	nsym := 8
	frameSize := NonceFieldLen + len(payload) + nsym

	carrier, err := Encode(p, prev, 1, nonceField, payload, nsym, frameSize)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	truncated := carrier[:len(carrier)-3]

	// Decode never rejects on its own — a carrier too short to hold the
	// codeword region is treated as a dummy all-zero codeword, and the
	// mismatch is left for the gate's AEAD check to catch downstream.
	_, got := Decode(p, prev, 1, truncated, len(payload), nsym)
	if bytes.Equal(got, payload) {
		t.Fatalf("expected a truncated carrier to decode to something other than the original payload")
	}
}

func TestCarrierCorrectsNoiseWithinRadius(t *testing.T) {
	p := crypto.DevStdProvider{}
	var prev [32]byte
	var nonceField [NonceFieldLen]byte
	payload := bytes.Repeat([]byte{0x77}, 40)
	nsym := 16 // corrects up to 8 byte errors
	frameSize := NonceFieldLen + len(payload) + nsym + 8

	carrier, err := Encode(p, prev, 2, nonceField, payload, nsym, frameSize)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	corrupt := append([]byte(nil), carrier...)
	// flip a handful of bytes within the codeword region
	for i, pos := range []int{NonceFieldLen, NonceFieldLen + 5, NonceFieldLen + 10} {
		corrupt[pos] ^= byte(0x01 + i)
	}

	_, got := Decode(p, prev, 2, corrupt, len(payload), nsym)
	if !bytes.Equal(got, payload) {
		t.Fatalf("corrected payload mismatch")
	}
}

func TestEncodeRejectsFrameTooSmall(t *testing.T) {
	p := crypto.DevStdProvider{}
	var prev [32]byte
	var nonceField [NonceFieldLen]byte
	payload := []byte("payload")
	if _, err := Encode(p, prev, 1, nonceField, payload, 8, 4); err == nil {
		t.Fatalf("Encode must reject a frame size smaller than the codeword")
	}
}
