// Package transport turns an AEAD ciphertext into the physical carrier
// format: Reed-Solomon parity, a keyed byte permutation, and deterministic
// padding out to a fixed frame size. Every step here is reversible and
// keyed only by public values (H_prev, t); nothing in this package ever
// sees the plaintext or the key K_t.
package transport

import (
	"encoding/binary"

	"github.com/FractalFuryan/dual-chain-geophase/crypto"
)

// hashStream is a counter-mode byte generator built on the provider's hash,
// used to drive the Fisher-Yates shuffle below.
type hashStream struct {
	p       crypto.Provider
	seed    [32]byte
	counter uint64
	buf     []byte
}

func newHashStream(p crypto.Provider, seed [32]byte) *hashStream {
	return &hashStream{p: p, seed: seed}
}

func (s *hashStream) nextByte() byte {
	if len(s.buf) == 0 {
		var cb [8]byte
		binary.BigEndian.PutUint64(cb[:], s.counter)
		s.counter++
		digest := crypto.TaggedHash(s.p, "", s.seed[:], cb[:])
		s.buf = digest[:]
	}
	b := s.buf[0]
	s.buf = s.buf[1:]
	return b
}

// permutationOf builds the permutation of [0,n) determined by seed via a
// keyed Fisher-Yates shuffle. The per-step modulus draw is not
// bias-corrected against 256; this is an interleaving step for carrier
// robustness, not a security boundary, so a small modulo bias is
// acceptable here.
func permutationOf(p crypto.Provider, seed [32]byte, n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	stream := newHashStream(p, seed)
	for i := n - 1; i > 0; i-- {
		j := int(stream.nextByte()) % (i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// PermuteSeed computes the keyed permutation seed H(TagPermute||H_prev||t_be)
// used for both Permute and Unpermute.
func PermuteSeed(p crypto.Provider, prevHash [32]byte, t uint64) [32]byte {
	var tb [8]byte
	binary.BigEndian.PutUint64(tb[:], t)
	return crypto.TaggedHash(p, crypto.TagPermute, prevHash[:], tb[:])
}

// Permute applies the keyed permutation to data, returning a new slice of
// the same length whose byte at position i is data[perm[i]].
func Permute(p crypto.Provider, seed [32]byte, data []byte) []byte {
	perm := permutationOf(p, seed, len(data))
	out := make([]byte, len(data))
	for i, srcIdx := range perm {
		out[i] = data[srcIdx]
	}
	return out
}

// Unpermute reverses Permute given the same seed and length.
func Unpermute(p crypto.Provider, seed [32]byte, data []byte) []byte {
	perm := permutationOf(p, seed, len(data))
	out := make([]byte, len(data))
	for i, srcIdx := range perm {
		out[srcIdx] = data[i]
	}
	return out
}
