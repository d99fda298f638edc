package canonical

import (
	"encoding/binary"
	"errors"
)

// PublicHeaderSize is the fixed wire size of a PublicHeader: version(2) +
// t(8) + H_prev(32) + g_t(32) + L(4) + nsym(2).
const PublicHeaderSize = 2 + 8 + 32 + 32 + 4 + 2

// HeaderVersion is the only wire format version this implementation
// produces or accepts.
const HeaderVersion uint16 = 1

// PublicHeader is the public header P_t carried alongside each block's
// ciphertext. Every field is fixed-width and big-endian; there is no
// variable-length or optional field.
type PublicHeader struct {
	Version  uint16
	T        uint64
	PrevHash [32]byte
	StateDig [32]byte // g_t
	L        uint32   // plaintext length
	NSym     uint16   // Reed-Solomon parity byte count
}

// Encode writes the 80-byte fixed binary encoding of h.
func (h PublicHeader) Encode() [PublicHeaderSize]byte {
	var out [PublicHeaderSize]byte
	binary.BigEndian.PutUint16(out[0:2], h.Version)
	binary.BigEndian.PutUint64(out[2:10], h.T)
	copy(out[10:42], h.PrevHash[:])
	copy(out[42:74], h.StateDig[:])
	binary.BigEndian.PutUint32(out[74:78], h.L)
	binary.BigEndian.PutUint16(out[78:80], h.NSym)
	return out
}

// DecodePublicHeader parses the 80-byte fixed binary encoding produced by
// PublicHeader.Encode, rejecting any length other than exactly
// PublicHeaderSize and any unrecognized version.
func DecodePublicHeader(b []byte) (PublicHeader, error) {
	if len(b) != PublicHeaderSize {
		return PublicHeader{}, errors.New("canonical: public header must be exactly 80 bytes")
	}
	var h PublicHeader
	h.Version = binary.BigEndian.Uint16(b[0:2])
	if h.Version != HeaderVersion {
		return PublicHeader{}, errors.New("canonical: unsupported public header version")
	}
	h.T = binary.BigEndian.Uint64(b[2:10])
	copy(h.PrevHash[:], b[10:42])
	copy(h.StateDig[:], b[42:74])
	h.L = binary.BigEndian.Uint32(b[74:78])
	h.NSym = binary.BigEndian.Uint16(b[78:80])
	return h, nil
}
