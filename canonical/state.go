// Package canonical implements the bit-exact serialization grammar the
// rest of the system hashes and signs over. The grammar is deliberately
// simple and has no optional fields, no reflection, and no dependence on
// map iteration order, so any conforming implementation in any language
// produces byte-identical output for the same structured state.
package canonical

import (
	"encoding/binary"
	"errors"
	"sort"
)

// State is the structured state D_t: an ordered set of named byte-string
// fields. Construction from a map (see NewState) always sorts keys so the
// canonical encoding never depends on caller iteration order.
type State struct {
	keys   []string
	values [][]byte
}

// NewState builds a State from fields, sorting keys ascending by byte
// value. A map cannot hold duplicate keys, so the returned error is
// always nil.
func NewState(fields map[string][]byte) (State, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := State{keys: make([]string, len(keys)), values: make([][]byte, len(keys))}
	for i, k := range keys {
		s.keys[i] = k
		s.values[i] = fields[k]
	}
	return s, nil
}

// Fields returns the state's entries in canonical (sorted) order.
func (s State) Fields() (keys []string, values [][]byte) {
	return s.keys, s.values
}

// Encode writes the canonical byte representation:
//
//	count        uint32 BE
//	repeated count times:
//	  keylen     uint32 BE
//	  key        keylen bytes
//	  vallen     uint32 BE
//	  val        vallen bytes
//
// No padding, no trailing bytes, no whitespace.
func (s State) Encode() []byte {
	size := 4
	for i := range s.keys {
		size += 4 + len(s.keys[i]) + 4 + len(s.values[i])
	}
	out := make([]byte, size)
	binary.BigEndian.PutUint32(out[0:4], uint32(len(s.keys)))
	off := 4
	for i := range s.keys {
		k := s.keys[i]
		v := s.values[i]
		binary.BigEndian.PutUint32(out[off:off+4], uint32(len(k)))
		off += 4
		copy(out[off:off+len(k)], k)
		off += len(k)
		binary.BigEndian.PutUint32(out[off:off+4], uint32(len(v)))
		off += 4
		copy(out[off:off+len(v)], v)
		off += len(v)
	}
	return out
}

// DecodeState parses the canonical byte representation produced by
// State.Encode. It rejects trailing bytes, truncated fields, and
// out-of-order keys, so a decoded State always round-trips to the exact
// same Encode() output (property P8).
func DecodeState(b []byte) (State, error) {
	if len(b) < 4 {
		return State{}, errors.New("canonical: truncated state header")
	}
	count := binary.BigEndian.Uint32(b[0:4])
	off := 4

	keys := make([]string, 0, count)
	values := make([][]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		if off+4 > len(b) {
			return State{}, errors.New("canonical: truncated key length")
		}
		klen := int(binary.BigEndian.Uint32(b[off : off+4]))
		off += 4
		if klen < 0 || off+klen > len(b) {
			return State{}, errors.New("canonical: truncated key")
		}
		key := string(b[off : off+klen])
		off += klen

		if off+4 > len(b) {
			return State{}, errors.New("canonical: truncated value length")
		}
		vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
		off += 4
		if vlen < 0 || off+vlen > len(b) {
			return State{}, errors.New("canonical: truncated value")
		}
		val := make([]byte, vlen)
		copy(val, b[off:off+vlen])
		off += vlen

		if len(keys) > 0 && keys[len(keys)-1] >= key {
			return State{}, errors.New("canonical: keys not in strict ascending order")
		}
		keys = append(keys, key)
		values = append(values, val)
	}
	if off != len(b) {
		return State{}, errors.New("canonical: trailing bytes after last field")
	}
	return State{keys: keys, values: values}, nil
}
