package main

import (
	"encoding/hex"

	"github.com/FractalFuryan/dual-chain-geophase/canonical"
)

// decodePublicHeader is a thin local wrapper so runtime.go reads
// uniformly alongside the other handle* helpers.
func decodePublicHeader(b []byte) (canonical.PublicHeader, error) {
	return canonical.DecodePublicHeader(b)
}

// handleCanonicalize exercises the canonical-state grammar directly:
// given state_fields_hex, it returns the canonical encoding's hex and is
// mainly used by cross-implementation conformance tooling to check byte
// agreement on the structured-state grammar.
func handleCanonicalize(req Request) Response {
	fields, err := stateFieldsBytes(req.StateFieldsHex)
	if err != nil {
		return errResp(err.Error())
	}
	state, err := canonical.NewState(fields)
	if err != nil {
		return errResp(err.Error())
	}
	enc := state.Encode()
	return Response{Ok: true, CanonicalHex: hex.EncodeToString(enc)}
}
