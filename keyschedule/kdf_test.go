package keyschedule

import (
	"testing"

	"github.com/FractalFuryan/dual-chain-geophase/crypto"
)

func TestDeriveKeyDeterministicIsPureFunction(t *testing.T) {
	p := crypto.DevStdProvider{}
	var master [32]byte
	copy(master[:], []byte("0123456789abcdef0123456789abcdef"))
	var prev [32]byte
	copy(prev[:], []byte("previous-commitment-hash-bytes!!"))

	k1, err := DeriveKey(p, Deterministic, master, 7, prev)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	k2, err := DeriveKey(p, Deterministic, master, 7, prev)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if k1 != k2 {
		t.Fatalf("Deterministic mode must be a pure function of its inputs")
	}

	k3, err := DeriveKey(p, Deterministic, master, 8, prev)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if k1 == k3 {
		t.Fatalf("different block index must yield a different key")
	}
}

func TestDeriveKeyModesDiffer(t *testing.T) {
	p := crypto.DevStdProvider{}
	var master [32]byte
	copy(master[:], []byte("master-secret-material-32-bytes"))
	var prev [32]byte

	det, err := DeriveKey(p, Deterministic, master, 1, prev)
	if err != nil {
		t.Fatalf("DeriveKey deterministic: %v", err)
	}
	hk, err := DeriveKey(p, HKDFMode, master, 1, prev)
	if err != nil {
		t.Fatalf("DeriveKey hkdf: %v", err)
	}
	if det == hk {
		t.Fatalf("Deterministic and HKDF modes must not coincide")
	}
}

func TestDeriveNonceDeterministicAndVariesWithT(t *testing.T) {
	p := crypto.DevStdProvider{}
	var key [32]byte
	copy(key[:], []byte("per-block-derived-key-32-bytes!"))

	n1 := DeriveNonce(p, key, 3)
	n2 := DeriveNonce(p, key, 3)
	if n1 != n2 {
		t.Fatalf("DeriveNonce must be deterministic")
	}
	n3 := DeriveNonce(p, key, 4)
	if n1 == n3 {
		t.Fatalf("different t must yield a different nonce")
	}
}
