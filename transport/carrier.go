package transport

import (
	"encoding/binary"
	"errors"

	"github.com/FractalFuryan/dual-chain-geophase/crypto"
)

// NonceFieldLen is the fixed width of the carrier's leading nonce field.
// In derived-nonce mode this field is deterministic padding, not a secret
// or a meaningful value; in random-nonce mode it carries N_t in the clear.
const NonceFieldLen = 12

// TagLen is the AEAD authentication tag length appended to every
// ciphertext.
const TagLen = 16

// padBytes generates n deterministic bytes from H(TagPad||prevHash||t_be),
// extended as needed by a counter-mode hash stream.
func padBytes(p crypto.Provider, prevHash [32]byte, t uint64, n int) []byte {
	var tb [8]byte
	binary.BigEndian.PutUint64(tb[:], t)
	seed := crypto.TaggedHash(p, crypto.TagPad, prevHash[:], tb[:])
	stream := newHashStream(p, seed)
	out := make([]byte, n)
	for i := range out {
		out[i] = stream.nextByte()
	}
	return out
}

// PlaceholderNonceField returns deterministic filler for the carrier's
// nonce field in derived-nonce mode, where the real N_t is never carried
// on the wire (a verifier recomputes it from K_t). It reuses the same
// deterministic pad derivation as the carrier's trailing padding.
func PlaceholderNonceField(p crypto.Provider, prevHash [32]byte, t uint64) [NonceFieldLen]byte {
	var out [NonceFieldLen]byte
	copy(out[:], padBytes(p, prevHash, t, NonceFieldLen))
	return out
}

// Encode builds the carrier for block t: RS-encode ciphertextAndTag with
// nsym parity bytes, apply the keyed permutation, prepend the nonce field,
// and pad out to frameSize. frameSize must be at least
// NonceFieldLen + len(ciphertextAndTag) + nsym.
func Encode(p crypto.Provider, prevHash [32]byte, t uint64, nonceField [NonceFieldLen]byte, ciphertextAndTag []byte, nsym int, frameSize int) ([]byte, error) {
	codeword, err := p.RSEncode(ciphertextAndTag, nsym)
	if err != nil {
		return nil, err
	}
	seed := PermuteSeed(p, prevHash, t)
	permuted := Permute(p, seed, codeword)

	total := NonceFieldLen + len(permuted)
	if frameSize < total {
		return nil, errors.New("transport: frameSize too small for nonce field + codeword")
	}
	carrier := make([]byte, frameSize)
	copy(carrier[:NonceFieldLen], nonceField[:])
	copy(carrier[NonceFieldLen:total], permuted)
	copy(carrier[total:], padBytes(p, prevHash, t, frameSize-total))
	return carrier, nil
}

// Decode extracts the ciphertext-and-tag payload from a carrier. dataLen
// is the expected length of ciphertextAndTag (L+TagLen); callers learn it
// from the public header before calling Decode. Decode never rejects: a
// carrier too short to hold the codeword region is treated as an
// all-zero codeword of the expected length, and a codeword RS cannot
// correct is passed through uncorrected. Either case is indistinguishable
// from tampering by the time it reaches the caller — acceptance is the
// gate's decision alone, not this package's.
func Decode(p crypto.Provider, prevHash [32]byte, t uint64, carrier []byte, dataLen int, nsym int) (nonceField [NonceFieldLen]byte, ciphertextAndTag []byte) {
	codewordLen := dataLen + nsym
	total := NonceFieldLen + codewordLen

	permuted := make([]byte, codewordLen)
	if len(carrier) >= total {
		copy(nonceField[:], carrier[:NonceFieldLen])
		copy(permuted, carrier[NonceFieldLen:total])
	}
	// carrier too short: nonceField and permuted stay at their zero value,
	// per the dummy-all-zero-buffer handling above.

	seed := PermuteSeed(p, prevHash, t)
	codeword := Unpermute(p, seed, permuted)

	data, rsOK := p.RSDecode(codeword, nsym)
	if !rsOK {
		data = codeword[:dataLen]
	}
	return nonceField, data
}
