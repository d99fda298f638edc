//go:build !geophase_native

package crypto

import "testing"

func TestLoadProviderDefaultsToDevStd(t *testing.T) {
	p, cleanup, err := LoadProvider()
	if err != nil {
		t.Fatalf("LoadProvider: %v", err)
	}
	defer cleanup()
	if _, ok := p.(DevStdProvider); !ok {
		t.Fatalf("LoadProvider() = %T, want DevStdProvider without the geophase_native build tag", p)
	}
}
