// Package assocdata builds the public header P_t and the associated data
// AD_t that the AEAD authenticates alongside each block's ciphertext. P_t
// is never secret and AD_t is never encrypted; binding them into the AEAD
// tag is what makes tampering with a block index, a previous-hash pointer,
// or a declared plaintext length detectable without decrypting anything.
package assocdata

import "github.com/FractalFuryan/dual-chain-geophase/canonical"

// Build constructs the public header for block t and returns it alongside
// its canonical byte encoding, which is used verbatim as the AEAD
// associated data AD_t. Keeping P_t and AD_t byte-identical means a
// decoder only ever needs to parse the header once.
func Build(t uint64, prevHash, stateDigest [32]byte, plaintextLen uint32, nsym uint16) (canonical.PublicHeader, []byte) {
	header := canonical.PublicHeader{
		Version:  canonical.HeaderVersion,
		T:        t,
		PrevHash: prevHash,
		StateDig: stateDigest,
		L:        plaintextLen,
		NSym:     nsym,
	}
	enc := header.Encode()
	return header, enc[:]
}

// AssociatedData returns the AEAD associated data for an already-built
// header. It is always exactly header.Encode() — AD_t and P_t are the same
// bytes by construction, so this exists only for call-site clarity.
func AssociatedData(header canonical.PublicHeader) []byte {
	enc := header.Encode()
	return enc[:]
}
