// Package gate implements the covenant acceptance gate: the single place
// in the entire system that is allowed to construct an Accept result. Every
// other package, including pipeline, only ever receives a VerifyResult and
// inspects it through its exported methods — it can never synthesize one.
package gate

import "github.com/FractalFuryan/dual-chain-geophase/crypto"

// VerifyResult is the outcome of the covenant gate: either Accept, carrying
// the recovered plaintext, or Reject, carrying nothing. There is no third
// outcome and no partial acceptance.
type VerifyResult struct {
	accepted  bool
	plaintext []byte
}

// Accepted reports whether the gate accepted the block.
func (r VerifyResult) Accepted() bool {
	return r.accepted
}

// Plaintext returns the recovered plaintext and true if the result is
// Accept, or nil and false if it is Reject. Calling Plaintext on a Reject
// never returns a partial or best-guess value.
func (r VerifyResult) Plaintext() ([]byte, bool) {
	if !r.accepted {
		return nil, false
	}
	return r.plaintext, true
}

func accept(plaintext []byte) VerifyResult {
	return VerifyResult{accepted: true, plaintext: plaintext}
}

func reject() VerifyResult {
	return VerifyResult{}
}

// Verify is the covenant gate. It is the only function in this module that
// can produce an Accept VerifyResult, and it does so only when
// AEADDecrypt succeeds; any other outcome — a decryption failure, a
// tampered AD, a wrong key, a wrong nonce — is Reject, with no
// distinguishable signal exposed to the caller beyond that (see the error
// taxonomy: InvalidInput and Reject are the only two outcomes anywhere in
// this system).
func Verify(p crypto.Provider, key []byte, nonce []byte, ciphertextAndTag []byte, ad []byte) VerifyResult {
	plaintext, err := p.AEADDecrypt(key, nonce, ciphertextAndTag, ad)
	if err != nil {
		return reject()
	}
	return accept(plaintext)
}
