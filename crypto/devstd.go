package crypto

import (
	"crypto/cipher"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// DevStdProvider is the pure-Go, software-only Provider backend. It is
// the default at every build-tag configuration except geophase_native
// (see provider_native.go) and is the only backend exercised by this
// repository's test suite.
type DevStdProvider struct{}

func (DevStdProvider) Hash(data []byte) [32]byte {
	return sha3.Sum256(data)
}

func (DevStdProvider) AEADEncrypt(key, nonce, plaintext, ad []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, errors.New("crypto: bad nonce length")
	}
	return aead.Seal(nil, nonce, plaintext, ad), nil
}

func (DevStdProvider) AEADDecrypt(key, nonce, ciphertextAndTag, ad []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, errors.New("crypto: bad nonce length")
	}
	return aead.Open(nil, nonce, ciphertextAndTag, ad)
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, errors.New("crypto: bad key length")
	}
	return chacha20poly1305.New(key)
}

func (DevStdProvider) HKDF(salt, ikm, info []byte, length int) ([]byte, error) {
	if length <= 0 {
		return nil, errors.New("crypto: HKDF length must be positive")
	}
	reader := hkdf.New(sha3.New256, ikm, salt, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (DevStdProvider) RSEncode(data []byte, nsym int) ([]byte, error) {
	return rsEncode(data, nsym)
}

func (DevStdProvider) RSDecode(codeword []byte, nsym int) ([]byte, bool) {
	return rsDecode(codeword, nsym)
}
