package keyschedule

import (
	"testing"

	"github.com/FractalFuryan/dual-chain-geophase/crypto"
)

func TestKeystoreWrapUnwrapRoundTrip(t *testing.T) {
	p := crypto.DevStdProvider{}
	var kek [32]byte
	copy(kek[:], []byte("operator-kek-32-bytes-long-key!"))
	var master [32]byte
	copy(master[:], []byte("block-chain-master-secret-K-star"))

	ks, err := WrapMasterSecret(p, kek, master)
	if err != nil {
		t.Fatalf("WrapMasterSecret: %v", err)
	}
	if ks.Version != keystoreVersion || ks.WrapAlg != keystoreWrapAlg {
		t.Fatalf("unexpected keystore header: %+v", ks)
	}

	got, err := UnwrapMasterSecret(p, kek, ks)
	if err != nil {
		t.Fatalf("UnwrapMasterSecret: %v", err)
	}
	if got != master {
		t.Fatalf("unwrapped secret does not match original")
	}
}

func TestKeystoreRejectsWrongKEK(t *testing.T) {
	p := crypto.DevStdProvider{}
	var kek [32]byte
	copy(kek[:], []byte("operator-kek-32-bytes-long-key!"))
	var wrongKek [32]byte
	copy(wrongKek[:], []byte("a-completely-different-kek-here"))
	var master [32]byte
	copy(master[:], []byte("block-chain-master-secret-K-star"))

	ks, err := WrapMasterSecret(p, kek, master)
	if err != nil {
		t.Fatalf("WrapMasterSecret: %v", err)
	}
	if _, err := UnwrapMasterSecret(p, wrongKek, ks); err == nil {
		t.Fatalf("UnwrapMasterSecret must fail under the wrong KEK")
	}
}

func TestKeystoreRejectsUnknownVersion(t *testing.T) {
	p := crypto.DevStdProvider{}
	var kek [32]byte
	ks := KeystoreV1{Version: "bogus", WrapAlg: keystoreWrapAlg}
	if _, err := UnwrapMasterSecret(p, kek, ks); err == nil {
		t.Fatalf("UnwrapMasterSecret must reject an unknown keystore version")
	}
}
