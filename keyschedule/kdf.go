// Package keyschedule derives the per-block key K_t and nonce N_t from the
// master secret K*, the block index t, and the previous commitment hash
// H_{t-1}. Two derivation modes are supported; both are pure functions of
// their inputs, so a verifier with access to K* can always recompute K_t/N_t
// independently of anything carried on the wire.
package keyschedule

import (
	"encoding/binary"
	"errors"

	"github.com/FractalFuryan/dual-chain-geophase/crypto"
)

// Mode selects how K_t is derived from K* per block.
type Mode int

const (
	// Deterministic derives K_t := H(TagKDFDet || K* || t_be || H_prev).
	Deterministic Mode = iota
	// HKDFMode derives K_t via HKDF-Extract-then-Expand with
	// salt=H_prev, ikm=K*, info=TagKDFInfo||t_be.
	HKDFMode
)

func (m Mode) String() string {
	switch m {
	case Deterministic:
		return "deterministic"
	case HKDFMode:
		return "hkdf"
	default:
		return "unknown"
	}
}

func beUint64(t uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], t)
	return buf[:]
}

// DeriveKey computes K_t for block index t given the master secret and the
// previous commitment hash, under the given mode.
func DeriveKey(p crypto.Provider, mode Mode, masterSecret [32]byte, t uint64, prevHash [32]byte) ([32]byte, error) {
	switch mode {
	case Deterministic:
		return crypto.TaggedHash(p, crypto.TagKDFDet, masterSecret[:], beUint64(t), prevHash[:]), nil
	case HKDFMode:
		info := append([]byte(crypto.TagKDFInfo), beUint64(t)...)
		out, err := p.HKDF(prevHash[:], masterSecret[:], info, 32)
		if err != nil {
			return [32]byte{}, err
		}
		var key [32]byte
		copy(key[:], out)
		return key, nil
	default:
		return [32]byte{}, errors.New("keyschedule: unknown KDF mode")
	}
}

// DeriveNonce computes N_t := first 12 bytes of H(TagNonce || K_t || t_be).
// This is the "derived" nonce mode from the spec's data model; callers using
// random-nonce mode instead carry N_t explicitly on the wire and never call
// this function.
func DeriveNonce(p crypto.Provider, key [32]byte, t uint64) [12]byte {
	digest := crypto.TaggedHash(p, crypto.TagNonce, key[:], beUint64(t))
	var nonce [12]byte
	copy(nonce[:], digest[:12])
	return nonce
}
