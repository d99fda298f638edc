// Package commitment maintains the hash-linked commitment chain over
// blocks: a strictly monotonic sequence of block indices each committing
// to the previous commitment hash, the ciphertext it sealed, and the
// structured-state digest it carried. It never inspects plaintext and
// never participates in acceptance — it is a public, append-only ledger of
// what was sent, not a judgment about whether it was valid.
package commitment

import (
	"fmt"

	"github.com/FractalFuryan/dual-chain-geophase/crypto"
)

// ChainState is the tip of a commitment chain: the block index and
// commitment hash that the next block must extend.
type ChainState struct {
	T    uint64
	Hash [32]byte
}

// Genesis returns the chain state before any block has been committed:
// T=0, Hash=H(TagGenesis). The first real block committed is t=1.
func Genesis(p crypto.Provider) ChainState {
	return ChainState{T: 0, Hash: crypto.TaggedHash(p, crypto.TagGenesis)}
}

// Advance extends the chain to block t, enforcing the strict monotonic
// invariant t == prev.T+1. It returns the new commitment hash
// H_t := H(H_prev || H(ciphertext) || stateDigest) and the availability
// witness A_t := H(H_prev || stateDigest || header), plus the new chain
// tip.
func (prev ChainState) Advance(p crypto.Provider, t uint64, ciphertext []byte, stateDigest [32]byte, header []byte) (ChainState, [32]byte, [32]byte, error) {
	if t != prev.T+1 {
		return ChainState{}, [32]byte{}, [32]byte{}, fmt.Errorf("commitment: block index %d does not extend tip %d (must equal %d)", t, prev.T, prev.T+1)
	}
	ctHash := p.Hash(ciphertext)
	commitHash := crypto.TaggedHash(p, crypto.TagCommitment, prev.Hash[:], ctHash[:], stateDigest[:])
	witness := crypto.TaggedHash(p, crypto.TagWitness, prev.Hash[:], stateDigest[:], header)
	return ChainState{T: t, Hash: commitHash}, commitHash, witness, nil
}

// Verify recomputes H_t and A_t from the claimed previous state and
// returns whether they match the given commitment hash and witness,
// without mutating anything. It is the read-only counterpart to Advance,
// used by verifiers that only want to check a published chain.
func (prev ChainState) Verify(p crypto.Provider, t uint64, ciphertext []byte, stateDigest [32]byte, header []byte, wantCommitHash, wantWitness [32]byte) bool {
	next, commitHash, witness, err := prev.Advance(p, t, ciphertext, stateDigest, header)
	if err != nil {
		return false
	}
	_ = next
	return commitHash == wantCommitHash && witness == wantWitness
}
