package main

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/FractalFuryan/dual-chain-geophase/canonical"
	"github.com/FractalFuryan/dual-chain-geophase/commitment"
	"github.com/FractalFuryan/dual-chain-geophase/config"
	"github.com/FractalFuryan/dual-chain-geophase/crypto"
	"github.com/FractalFuryan/dual-chain-geophase/pipeline"
	"github.com/FractalFuryan/dual-chain-geophase/transport"
)

// Scenario is one cross-implementation conformance vector: the literal
// inputs an encoder produced, plus the decoder outcome a conforming
// implementation must reproduce exactly.
type Scenario struct {
	ID          string `json:"id"`
	Description string `json:"description"`

	MasterSecretHex string `json:"master_secret_hex"`
	PlaintextHex    string `json:"plaintext_hex"`
	NSym            uint16 `json:"nsym"`

	EncodedHeaderHex  string `json:"encoded_header_hex"`
	EncodedCarrierHex string `json:"encoded_carrier_hex"`

	DecodeMasterSecretHex string `json:"decode_master_secret_hex"`
	DecodeHeaderHex       string `json:"decode_header_hex"`
	DecodeCarrierHex      string `json:"decode_carrier_hex"`

	ExpectAccepted  bool   `json:"expect_accepted"`
	ExpectPlaintext string `json:"expect_plaintext_hex,omitempty"`
}

func flipBytesAtStride(b []byte, start, count, stride int) []byte {
	out := append([]byte(nil), b...)
	for i := 0; i < count; i++ {
		idx := start + i*stride
		if idx >= len(out) {
			break
		}
		out[idx] ^= 0xaa
	}
	return out
}

func mustEncode(p crypto.Provider, masterSecret [32]byte, plaintext []byte, nsym uint16) (canonical.PublicHeader, []byte) {
	cfg := config.Default()
	cfg.NSym = nsym
	ctx := pipeline.BlockContext{
		Prev:         commitment.Genesis(p),
		MasterSecret: masterSecret,
		Config:       cfg,
		NonceMode:    pipeline.DerivedNonce,
	}
	res, err := pipeline.Encode(ctx, p, map[string][]byte{"v": {0x01}}, plaintext, nil)
	if err != nil {
		panic(err)
	}
	return res.Header, res.Carrier
}

// BuildScenarios reproduces the six concrete end-to-end scenarios: clean
// round trip, wrong key, altered block index, noise within the ECC
// radius, noise beyond it, and a truncated carrier.
func BuildScenarios(p crypto.Provider) []Scenario {
	var masterSecret [32]byte // all-zero, as in the scenario definitions
	plaintext := []byte("hello world")
	nsym := uint16(64)

	header, carrier := mustEncode(p, masterSecret, plaintext, nsym)
	headerBytes := header.Encode()

	var wrongKey [32]byte
	wrongKey[31] = 0x01

	alteredHeader := header
	alteredHeader.T = header.T + 1
	alteredHeaderBytes := alteredHeader.Encode()

	withinRadius := flipBytesAtStride(carrier, transport.NonceFieldLen, int(nsym)/2, 2)
	beyondRadius := flipBytesAtStride(carrier, transport.NonceFieldLen, 100, 1)
	codewordEnd := transport.NonceFieldLen + len(plaintext) + transport.TagLen + int(nsym)
	truncated := carrier[:codewordEnd-10]

	scenarios := []Scenario{
		{
			ID:                    "clean-round-trip",
			Description:           "plaintext \"hello world\", t=1, NSYM=64, deterministic KDF: decoder must Accept with the original plaintext",
			MasterSecretHex:       hex.EncodeToString(masterSecret[:]),
			PlaintextHex:          hex.EncodeToString(plaintext),
			NSym:                  nsym,
			EncodedHeaderHex:      hex.EncodeToString(headerBytes[:]),
			EncodedCarrierHex:     hex.EncodeToString(carrier),
			DecodeMasterSecretHex: hex.EncodeToString(masterSecret[:]),
			DecodeHeaderHex:       hex.EncodeToString(headerBytes[:]),
			DecodeCarrierHex:      hex.EncodeToString(carrier),
			ExpectAccepted:        true,
			ExpectPlaintext:       hex.EncodeToString(plaintext),
		},
		{
			ID:                    "wrong-key",
			Description:           "same carrier as clean-round-trip, decoder uses K*=0x00..01: must Reject",
			MasterSecretHex:       hex.EncodeToString(masterSecret[:]),
			PlaintextHex:          hex.EncodeToString(plaintext),
			NSym:                  nsym,
			EncodedHeaderHex:      hex.EncodeToString(headerBytes[:]),
			EncodedCarrierHex:     hex.EncodeToString(carrier),
			DecodeMasterSecretHex: hex.EncodeToString(wrongKey[:]),
			DecodeHeaderHex:       hex.EncodeToString(headerBytes[:]),
			DecodeCarrierHex:      hex.EncodeToString(carrier),
			ExpectAccepted:        false,
		},
		{
			ID:                    "altered-ad-t",
			Description:           "header's block index incremented before decode (AD mismatch): must Reject",
			MasterSecretHex:       hex.EncodeToString(masterSecret[:]),
			PlaintextHex:          hex.EncodeToString(plaintext),
			NSym:                  nsym,
			EncodedHeaderHex:      hex.EncodeToString(headerBytes[:]),
			EncodedCarrierHex:     hex.EncodeToString(carrier),
			DecodeMasterSecretHex: hex.EncodeToString(masterSecret[:]),
			DecodeHeaderHex:       hex.EncodeToString(alteredHeaderBytes[:]),
			DecodeCarrierHex:      hex.EncodeToString(carrier),
			ExpectAccepted:        false,
		},
		{
			ID:                    "noise-within-ecc-radius",
			Description:           "nsym/2 byte flips spread across the codeword region: must Accept with the original plaintext",
			MasterSecretHex:       hex.EncodeToString(masterSecret[:]),
			PlaintextHex:          hex.EncodeToString(plaintext),
			NSym:                  nsym,
			EncodedHeaderHex:      hex.EncodeToString(headerBytes[:]),
			EncodedCarrierHex:     hex.EncodeToString(carrier),
			DecodeMasterSecretHex: hex.EncodeToString(masterSecret[:]),
			DecodeHeaderHex:       hex.EncodeToString(headerBytes[:]),
			DecodeCarrierHex:      hex.EncodeToString(withinRadius),
			ExpectAccepted:        true,
			ExpectPlaintext:       hex.EncodeToString(plaintext),
		},
		{
			ID:                    "noise-beyond-ecc-radius",
			Description:           "100 consecutive byte flips from the start of the codeword region (all 91 codeword bytes, then 9 padding bytes): must Reject, never Accept with altered plaintext",
			MasterSecretHex:       hex.EncodeToString(masterSecret[:]),
			PlaintextHex:          hex.EncodeToString(plaintext),
			NSym:                  nsym,
			EncodedHeaderHex:      hex.EncodeToString(headerBytes[:]),
			EncodedCarrierHex:     hex.EncodeToString(carrier),
			DecodeMasterSecretHex: hex.EncodeToString(masterSecret[:]),
			DecodeHeaderHex:       hex.EncodeToString(headerBytes[:]),
			DecodeCarrierHex:      hex.EncodeToString(beyondRadius),
			ExpectAccepted:        false,
		},
		{
			ID:                    "truncated-carrier",
			Description:           "last 10 bytes of the codeword region dropped: must Reject",
			MasterSecretHex:       hex.EncodeToString(masterSecret[:]),
			PlaintextHex:          hex.EncodeToString(plaintext),
			NSym:                  nsym,
			EncodedHeaderHex:      hex.EncodeToString(headerBytes[:]),
			EncodedCarrierHex:     hex.EncodeToString(carrier),
			DecodeMasterSecretHex: hex.EncodeToString(masterSecret[:]),
			DecodeHeaderHex:       hex.EncodeToString(headerBytes[:]),
			DecodeCarrierHex:      hex.EncodeToString(truncated),
			ExpectAccepted:        false,
		},
	}
	return scenarios
}

func marshalScenarios(scenarios []Scenario) ([]byte, error) {
	return json.MarshalIndent(scenarios, "", "  ")
}

// writeScenarios marshals scenarios and writes them to path, creating any
// missing parent directories first.
func writeScenarios(path string, scenarios []Scenario) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := marshalScenarios(scenarios)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
