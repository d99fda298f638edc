package assocdata

import (
	"bytes"
	"testing"

	"github.com/FractalFuryan/dual-chain-geophase/canonical"
)

func TestBuildMatchesAssociatedData(t *testing.T) {
	var prev, digest [32]byte
	prev[0] = 0xAB
	digest[0] = 0xCD

	header, ad := Build(5, prev, digest, 128, 64)
	if header.T != 5 || header.L != 128 || header.NSym != 64 {
		t.Fatalf("unexpected header: %+v", header)
	}
	if !bytes.Equal(ad, AssociatedData(header)) {
		t.Fatalf("AD_t must equal AssociatedData(P_t)")
	}

	decoded, err := canonical.DecodePublicHeader(ad)
	if err != nil {
		t.Fatalf("DecodePublicHeader: %v", err)
	}
	if decoded != header {
		t.Fatalf("decoded header does not match the one Build returned")
	}
}

func TestBuildDiffersByField(t *testing.T) {
	var prev, digest [32]byte
	_, ad1 := Build(1, prev, digest, 10, 8)
	_, ad2 := Build(2, prev, digest, 10, 8)
	if bytes.Equal(ad1, ad2) {
		t.Fatalf("AD_t must change when t changes")
	}
}
