// Package pipeline wires the primitive, key-schedule, transport, and
// commitment packages into the two external entry points: Encode and
// Decode. It is the only package that sequences all four components
// together; keyschedule, transport, and commitment each depend only on
// crypto, not on one another.
package pipeline

import (
	"github.com/FractalFuryan/dual-chain-geophase/assocdata"
	"github.com/FractalFuryan/dual-chain-geophase/canonical"
	"github.com/FractalFuryan/dual-chain-geophase/commitment"
	"github.com/FractalFuryan/dual-chain-geophase/config"
	"github.com/FractalFuryan/dual-chain-geophase/crypto"
	"github.com/FractalFuryan/dual-chain-geophase/gate"
	"github.com/FractalFuryan/dual-chain-geophase/keyschedule"
	"github.com/FractalFuryan/dual-chain-geophase/transport"
)

// NonceMode selects whether N_t is derived from K_t or carried explicitly
// on the wire.
type NonceMode int

const (
	// DerivedNonce computes N_t from K_t and never carries it; the
	// carrier's nonce field holds deterministic filler instead.
	DerivedNonce NonceMode = iota
	// RandomNonce requires the caller to supply N_t explicitly to Encode,
	// and carries it in the clear in the carrier's nonce field.
	RandomNonce
)

// BlockContext is everything Encode/Decode need beyond the plaintext
// itself: the chain tip being extended, the master secret, the tunable
// configuration, and the nonce mode.
type BlockContext struct {
	Prev         commitment.ChainState
	MasterSecret [32]byte
	Config       config.Config
	NonceMode    NonceMode
}

// EncodeResult bundles everything Encode produces for block t.
type EncodeResult struct {
	Carrier []byte
	Header  canonical.PublicHeader
	Next    commitment.ChainState
	Witness [32]byte
}

// Encode seals plaintext into a carrier for block ctx.Prev.T+1. stateFields
// becomes the structured state D_t; its canonical encoding's digest is g_t.
// explicitNonce is required (and only used) in RandomNonce mode.
func Encode(ctx BlockContext, p crypto.Provider, stateFields map[string][]byte, plaintext []byte, explicitNonce *[transport.NonceFieldLen]byte) (EncodeResult, error) {
	if err := config.Validate(ctx.Config); err != nil {
		return EncodeResult{}, invalidInput(err.Error())
	}
	if ctx.NonceMode == RandomNonce && explicitNonce == nil {
		return EncodeResult{}, invalidInput("random-nonce mode requires an explicit nonce")
	}

	t := ctx.Prev.T + 1

	state, err := canonical.NewState(stateFields)
	if err != nil {
		return EncodeResult{}, invalidInput("structured state: " + err.Error())
	}
	stateDigest := p.Hash(state.Encode())

	key, err := keyschedule.DeriveKey(p, ctx.Config.KDFMode, ctx.MasterSecret, t, ctx.Prev.Hash)
	if err != nil {
		return EncodeResult{}, invalidInput("key derivation: " + err.Error())
	}

	var nonce [transport.NonceFieldLen]byte
	var nonceField [transport.NonceFieldLen]byte
	switch ctx.NonceMode {
	case DerivedNonce:
		nonce = keyschedule.DeriveNonce(p, key, t)
		nonceField = transport.PlaceholderNonceField(p, ctx.Prev.Hash, t)
	case RandomNonce:
		nonce = *explicitNonce
		nonceField = *explicitNonce
	default:
		return EncodeResult{}, invalidInput("unknown nonce mode")
	}

	header, ad := assocdata.Build(t, ctx.Prev.Hash, stateDigest, uint32(len(plaintext)), ctx.Config.NSym)

	ciphertextAndTag, err := p.AEADEncrypt(key[:], nonce[:], plaintext, ad)
	if err != nil {
		return EncodeResult{}, invalidInput("seal: " + err.Error())
	}

	carrier, err := transport.Encode(p, ctx.Prev.Hash, t, nonceField, ciphertextAndTag, int(ctx.Config.NSym), ctx.Config.FrameSize)
	if err != nil {
		return EncodeResult{}, invalidInput("carrier: " + err.Error())
	}

	next, _, witness, err := ctx.Prev.Advance(p, t, ciphertextAndTag, stateDigest, ad)
	if err != nil {
		return EncodeResult{}, invalidInput("commitment: " + err.Error())
	}

	return EncodeResult{Carrier: carrier, Header: header, Next: next, Witness: witness}, nil
}

// Decode attempts to recover the plaintext sealed in carrier for the block
// described by header. Key derivation, the permutation seed, and the
// associated data are all taken from header.T/header.PrevHash directly —
// the same fields the AEAD tag authenticates — never from ctx.Prev. A
// header whose t or prev_hash was altered in transit therefore does not
// fail a separate precondition check; it produces a different derived key
// or permutation seed than the sender used, and falls through to the
// gate's ordinary Reject like any other tampering (spec scenario: altered
// AD). transport.Decode never rejects either — a short carrier or an
// uncorrectable codeword still produces some ciphertextAndTag slice, and
// that slice is always run through gate.Verify; authentication failure is
// the only path to Reject anywhere in this function. ctx.Prev is consulted
// only afterward, to extend the caller's own commitment chain on Accept; a
// non-monotonic header accepted by the gate still reports Accept, paired
// with an error and an unchanged chain tip — the covenant gate and
// chain-layer monotonicity are independent checks.
func Decode(ctx BlockContext, p crypto.Provider, header canonical.PublicHeader, carrier []byte) (gate.VerifyResult, commitment.ChainState, error) {
	key, err := keyschedule.DeriveKey(p, ctx.Config.KDFMode, ctx.MasterSecret, header.T, header.PrevHash)
	if err != nil {
		return gate.VerifyResult{}, ctx.Prev, invalidInput("key derivation: " + err.Error())
	}

	ad := assocdata.AssociatedData(header)
	dataLen := int(header.L) + transport.TagLen

	nonceField, ciphertextAndTag := transport.Decode(p, header.PrevHash, header.T, carrier, dataLen, int(header.NSym))

	var nonce [transport.NonceFieldLen]byte
	switch ctx.NonceMode {
	case DerivedNonce:
		nonce = keyschedule.DeriveNonce(p, key, header.T)
	case RandomNonce:
		nonce = nonceField
	default:
		return gate.VerifyResult{}, ctx.Prev, invalidInput("unknown nonce mode")
	}

	result := gate.Verify(p, key[:], nonce[:], ciphertextAndTag, ad)
	if !result.Accepted() {
		return result, ctx.Prev, nil
	}

	next, _, _, err := ctx.Prev.Advance(p, header.T, ciphertextAndTag, header.StateDig, ad)
	if err != nil {
		return result, ctx.Prev, invalidInput("commitment: " + err.Error())
	}
	return result, next, nil
}
