package keyschedule

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/FractalFuryan/dual-chain-geophase/crypto"
)

// KeystoreV1 is the on-disk format for a wrapped master secret. The master
// secret K* never touches disk in the clear; it is wrapped under an
// operator-supplied KEK using AES-256 Key Wrap (RFC 3394) and unwrapped only
// in memory, immediately before a pipeline operation needs it. The keystore
// plays no role in the covenant gate: it is purely an operational
// convenience for CLI callers.
type KeystoreV1 struct {
	Version     string `json:"version"` // "GPKSv1"
	WrapAlg     string `json:"wrap_alg"`
	KeyIDHex    string `json:"key_id_hex"`
	WrappedKHex string `json:"wrapped_k_hex"`
}

const keystoreVersion = "GPKSv1"
const keystoreWrapAlg = "AES-256-KW"

// WrapMasterSecret wraps master under kek (32 bytes) and returns a keystore
// record whose KeyIDHex lets a caller sanity-check they unwrapped the
// secret they expected, without ever storing the secret itself.
func WrapMasterSecret(p crypto.Provider, kek [32]byte, master [32]byte) (KeystoreV1, error) {
	wrapped, err := crypto.AESKeyWrapRFC3394(kek[:], master[:])
	if err != nil {
		return KeystoreV1{}, fmt.Errorf("keyschedule: wrap master secret: %w", err)
	}
	keyID := crypto.TaggedHash(p, crypto.TagKDFInfo, master[:])
	return KeystoreV1{
		Version:      keystoreVersion,
		WrapAlg:      keystoreWrapAlg,
		KeyIDHex:     hex.EncodeToString(keyID[:]),
		WrappedKHex: hex.EncodeToString(wrapped),
	}, nil
}

// UnwrapMasterSecret recovers the master secret from a keystore record and
// verifies it against the record's embedded key ID; a record with an empty
// key_id_hex is not checked.
func UnwrapMasterSecret(p crypto.Provider, kek [32]byte, ks KeystoreV1) ([32]byte, error) {
	var out [32]byte
	if ks.Version != keystoreVersion {
		return out, fmt.Errorf("keyschedule: unsupported keystore version %q", ks.Version)
	}
	if !strings.EqualFold(ks.WrapAlg, keystoreWrapAlg) {
		return out, fmt.Errorf("keyschedule: unsupported wrap_alg %q", ks.WrapAlg)
	}
	wrapped, err := hex.DecodeString(ks.WrappedKHex)
	if err != nil {
		return out, fmt.Errorf("keyschedule: wrapped_k_hex: %w", err)
	}
	plain, err := crypto.AESKeyUnwrapRFC3394(kek[:], wrapped)
	if err != nil {
		return out, fmt.Errorf("keyschedule: unwrap master secret: %w", err)
	}
	if len(plain) != 32 {
		return out, fmt.Errorf("keyschedule: unwrapped secret has length %d, want 32", len(plain))
	}
	copy(out[:], plain)

	keyID := crypto.TaggedHash(p, crypto.TagKDFInfo, out[:])
	if ks.KeyIDHex != "" && !strings.EqualFold(ks.KeyIDHex, hex.EncodeToString(keyID[:])) {
		return [32]byte{}, fmt.Errorf("keyschedule: keystore key_id mismatch: embedded=%s computed=%x", ks.KeyIDHex, keyID)
	}
	return out, nil
}

// LoadKeystoreFile reads and parses a keystore record from path.
func LoadKeystoreFile(path string) (KeystoreV1, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return KeystoreV1{}, err
	}
	var ks KeystoreV1
	if err := json.Unmarshal(raw, &ks); err != nil {
		return KeystoreV1{}, fmt.Errorf("keyschedule: parse keystore: %w", err)
	}
	return ks, nil
}

// SaveKeystoreFile writes ks to path as indented JSON, matching the
// teacher's operator-facing keystore file convention.
func SaveKeystoreFile(path string, ks KeystoreV1) error {
	b, err := json.MarshalIndent(ks, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o600)
}
