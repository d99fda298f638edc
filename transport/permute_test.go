package transport

import (
	"bytes"
	"testing"

	"github.com/FractalFuryan/dual-chain-geophase/crypto"
)

func TestPermuteUnpermuteRoundTrip(t *testing.T) {
	p := crypto.DevStdProvider{}
	var prev [32]byte
	prev[0] = 9
	seed := PermuteSeed(p, prev, 3)

	data := []byte("the quick brown fox jumps over the lazy dog")
	permuted := Permute(p, seed, data)
	if bytes.Equal(permuted, data) {
		t.Fatalf("Permute should reorder bytes for non-trivial input")
	}
	back := Unpermute(p, seed, permuted)
	if !bytes.Equal(back, data) {
		t.Fatalf("Unpermute(Permute(data)) = %q, want %q", back, data)
	}
}

func TestPermuteSeedVariesWithT(t *testing.T) {
	p := crypto.DevStdProvider{}
	var prev [32]byte
	if PermuteSeed(p, prev, 1) == PermuteSeed(p, prev, 2) {
		t.Fatalf("PermuteSeed must depend on t")
	}
}

func TestPermuteIsDeterministic(t *testing.T) {
	p := crypto.DevStdProvider{}
	var prev [32]byte
	seed := PermuteSeed(p, prev, 7)
	data := []byte("deterministic payload bytes")
	a := Permute(p, seed, data)
	b := Permute(p, seed, data)
	if !bytes.Equal(a, b) {
		t.Fatalf("Permute must be a pure function of seed and data")
	}
}
