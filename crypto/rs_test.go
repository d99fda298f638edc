package crypto

import (
	"bytes"
	"testing"
)

func TestRSRoundTripClean(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, 0123456789")
	nsym := 16
	codeword, err := rsEncode(data, nsym)
	if err != nil {
		t.Fatalf("rsEncode: %v", err)
	}
	if len(codeword) != len(data)+nsym {
		t.Fatalf("codeword length = %d, want %d", len(codeword), len(data)+nsym)
	}
	got, ok := rsDecode(codeword, nsym)
	if !ok {
		t.Fatalf("rsDecode failed on a clean codeword")
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("rsDecode returned %q, want %q", got, data)
	}
}

func TestRSCorrectsWithinRadius(t *testing.T) {
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i * 7)
	}
	nsym := 16 // corrects up to 8 byte errors
	codeword, err := rsEncode(data, nsym)
	if err != nil {
		t.Fatalf("rsEncode: %v", err)
	}

	corrupt := append([]byte(nil), codeword...)
	positions := []int{0, 5, 10, 20, 30, 40, 50, 63}
	for i, p := range positions {
		corrupt[p] ^= byte(0x55 + i)
	}

	got, ok := rsDecode(corrupt, nsym)
	if !ok {
		t.Fatalf("rsDecode failed to correct %d errors within nsym/2=%d", len(positions), nsym/2)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("rsDecode recovered wrong data after correction")
	}
}

func TestRSRejectsBeyondRadius(t *testing.T) {
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(255 - i)
	}
	nsym := 8 // corrects up to 4 byte errors
	codeword, err := rsEncode(data, nsym)
	if err != nil {
		t.Fatalf("rsEncode: %v", err)
	}

	corrupt := append([]byte(nil), codeword...)
	positions := []int{0, 4, 8, 12, 16, 20, 24}
	for i, p := range positions {
		corrupt[p] ^= byte(0xAA + i)
	}

	if _, ok := rsDecode(corrupt, nsym); ok {
		t.Fatalf("rsDecode must never return ok=true beyond nsym/2 correction radius")
	}
}

func TestRSRejectsBadParameters(t *testing.T) {
	if _, err := rsEncode([]byte("x"), 0); err == nil {
		t.Fatalf("rsEncode should reject nsym=0")
	}
	if _, err := rsEncode([]byte("x"), 3); err == nil {
		t.Fatalf("rsEncode should reject odd nsym")
	}
	if _, ok := rsDecode([]byte("short"), 16); ok {
		t.Fatalf("rsDecode should reject a codeword shorter than nsym")
	}
}

func TestRSNeverAcceptsTruncatedCodeword(t *testing.T) {
	data := []byte("availability witness payload")
	nsym := 16
	codeword, err := rsEncode(data, nsym)
	if err != nil {
		t.Fatalf("rsEncode: %v", err)
	}
	truncated := codeword[:len(codeword)-4]
	if _, ok := rsDecode(truncated, nsym); ok {
		t.Fatalf("rsDecode must not accept a truncated codeword")
	}
}

// FuzzRSRoundTrip checks that rsDecode never reports ok=true with data that
// does not match what was encoded, for a single corrupted byte at an
// arbitrary position across nsym choices, and that it never panics.
func FuzzRSRoundTrip(f *testing.F) {
	f.Add([]byte("seed payload one"), 8, 0, byte(0x01))
	f.Add([]byte(""), 4, 0, byte(0xff))
	f.Add([]byte{0x00, 0x01, 0x02, 0x03}, 32, 2, byte(0x10))

	f.Fuzz(func(t *testing.T, data []byte, nsymSeed int, flipPos int, flipVal byte) {
		if len(data) == 0 || len(data) > 200 {
			return
		}
		nsym := ((nsymSeed % 64) + 1) * 2
		if len(data)+nsym > 255 {
			return
		}

		codeword, err := rsEncode(data, nsym)
		if err != nil {
			return
		}

		corrupted := append([]byte(nil), codeword...)
		if len(corrupted) > 0 {
			pos := ((flipPos % len(corrupted)) + len(corrupted)) % len(corrupted)
			corrupted[pos] ^= flipVal
		}

		got, ok := rsDecode(corrupted, nsym)
		if ok && !bytes.Equal(got, data) {
			t.Fatalf("rsDecode returned ok=true with mismatched data for nsym=%d", nsym)
		}
	})
}
