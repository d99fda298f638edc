//go:build geophase_native

package crypto

/*
#cgo linux LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdint.h>
#include <stdlib.h>

typedef int32_t (*gp_hash_fn)(const uint8_t*, size_t, uint8_t*);
typedef int32_t (*gp_aead_seal_fn)(const uint8_t*, const uint8_t*, const uint8_t*, size_t, const uint8_t*, size_t, uint8_t*);
typedef int32_t (*gp_aead_open_fn)(const uint8_t*, const uint8_t*, const uint8_t*, size_t, const uint8_t*, size_t, uint8_t*);

typedef struct {
	void* handle;
	gp_hash_fn hash;
	gp_aead_seal_fn aead_seal;
	gp_aead_open_fn aead_open;
} gp_native_provider_t;

static int gp_native_load(gp_native_provider_t* p, const char* path) {
	p->handle = dlopen(path, RTLD_LAZY);
	if (!p->handle) return -1;

	p->hash = (gp_hash_fn)dlsym(p->handle, "geophase_native_hash_sha3_256");
	p->aead_seal = (gp_aead_seal_fn)dlsym(p->handle, "geophase_native_aead_seal");
	p->aead_open = (gp_aead_open_fn)dlsym(p->handle, "geophase_native_aead_open");

	if (!p->hash || !p->aead_seal || !p->aead_open) {
		dlclose(p->handle);
		p->handle = NULL;
		return -2;
	}
	return 0;
}

static int32_t gp_native_hash_call(gp_native_provider_t* p, const uint8_t* input, size_t len, uint8_t* out) {
	if (!p || !p->hash) return -1;
	return p->hash(input, len, out);
}

static int32_t gp_native_aead_seal_call(gp_native_provider_t* p, const uint8_t* key, const uint8_t* nonce,
		const uint8_t* pt, size_t pt_len, const uint8_t* ad, size_t ad_len, uint8_t* out) {
	if (!p || !p->aead_seal) return -1;
	return p->aead_seal(key, nonce, pt, pt_len, ad, ad_len, out);
}

static int32_t gp_native_aead_open_call(gp_native_provider_t* p, const uint8_t* key, const uint8_t* nonce,
		const uint8_t* ct, size_t ct_len, const uint8_t* ad, size_t ad_len, uint8_t* out) {
	if (!p || !p->aead_open) return -1;
	return p->aead_open(key, nonce, ct, ct_len, ad, ad_len, out);
}

static void gp_native_close(gp_native_provider_t* p) {
	if (p->handle) {
		dlclose(p->handle);
		p->handle = NULL;
	}
}
*/
import "C"

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"unsafe"
)

// NativeProvider loads an accelerated hash/AEAD implementation from a local
// shim library selected via GEOPHASE_NATIVE_SHIM_PATH. HKDF and the
// Reed-Solomon codec have no meaningful hardware-acceleration path here, so
// NativeProvider delegates those two capabilities to the embedded
// DevStdProvider rather than duplicating them across the cgo boundary.
type NativeProvider struct {
	DevStdProvider
	p C.gp_native_provider_t
}

// LoadProvider loads the native backend named by GEOPHASE_NATIVE_SHIM_PATH.
// GEOPHASE_NATIVE_STRICT=1 refuses to start without that variable set;
// otherwise the pure-Go backend is used as a silent fallback.
func LoadProvider() (Provider, func(), error) {
	path, ok := os.LookupEnv("GEOPHASE_NATIVE_SHIM_PATH")
	strict := strings.EqualFold(os.Getenv("GEOPHASE_NATIVE_STRICT"), "1") ||
		strings.EqualFold(os.Getenv("GEOPHASE_NATIVE_STRICT"), "true")

	if !ok || path == "" {
		if strict {
			return nil, func() {}, errors.New("crypto: GEOPHASE_NATIVE_STRICT=1 requires GEOPHASE_NATIVE_SHIM_PATH")
		}
		return DevStdProvider{}, func() {}, nil
	}

	prov, err := loadNativeProvider(path)
	if err != nil {
		if strict {
			return nil, func() {}, err
		}
		return DevStdProvider{}, func() {}, nil
	}
	return prov, func() {}, nil
}

func loadNativeProvider(path string) (*NativeProvider, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	var p C.gp_native_provider_t
	rc := C.gp_native_load(&p, cpath)
	if rc != 0 {
		return nil, errors.New("crypto: failed to load native shim library")
	}

	prov := &NativeProvider{p: p}
	runtime.SetFinalizer(prov, func(x *NativeProvider) { C.gp_native_close(&x.p) })
	return prov, nil
}

func (n *NativeProvider) Hash(data []byte) [32]byte {
	var out [32]byte
	var inPtr *C.uint8_t
	if len(data) > 0 {
		inPtr = (*C.uint8_t)(unsafe.Pointer(&data[0]))
	}
	rc := C.gp_native_hash_call(&n.p, inPtr, C.size_t(len(data)), (*C.uint8_t)(unsafe.Pointer(&out[0])))
	if rc != 1 {
		panic(fmt.Sprintf("crypto: native shim hash error rc=%d", rc))
	}
	return out
}

func (n *NativeProvider) AEADEncrypt(key, nonce, plaintext, ad []byte) ([]byte, error) {
	if len(key) != 32 || len(nonce) != 12 {
		return nil, errors.New("crypto: bad key or nonce length")
	}
	out := make([]byte, len(plaintext)+16)
	var ptPtr, adPtr *C.uint8_t
	if len(plaintext) > 0 {
		ptPtr = (*C.uint8_t)(unsafe.Pointer(&plaintext[0]))
	}
	if len(ad) > 0 {
		adPtr = (*C.uint8_t)(unsafe.Pointer(&ad[0]))
	}
	rc := C.gp_native_aead_seal_call(&n.p,
		(*C.uint8_t)(unsafe.Pointer(&key[0])), (*C.uint8_t)(unsafe.Pointer(&nonce[0])),
		ptPtr, C.size_t(len(plaintext)), adPtr, C.size_t(len(ad)),
		(*C.uint8_t)(unsafe.Pointer(&out[0])))
	if rc != 1 {
		return nil, fmt.Errorf("crypto: native shim seal error rc=%d", rc)
	}
	return out, nil
}

func (n *NativeProvider) AEADDecrypt(key, nonce, ciphertextAndTag, ad []byte) ([]byte, error) {
	if len(key) != 32 || len(nonce) != 12 {
		return nil, errors.New("crypto: bad key or nonce length")
	}
	if len(ciphertextAndTag) < 16 {
		return nil, errors.New("crypto: ciphertext shorter than tag")
	}
	out := make([]byte, len(ciphertextAndTag)-16)
	var adPtr *C.uint8_t
	if len(ad) > 0 {
		adPtr = (*C.uint8_t)(unsafe.Pointer(&ad[0]))
	}
	var outPtr *C.uint8_t
	if len(out) > 0 {
		outPtr = (*C.uint8_t)(unsafe.Pointer(&out[0]))
	}
	rc := C.gp_native_aead_open_call(&n.p,
		(*C.uint8_t)(unsafe.Pointer(&key[0])), (*C.uint8_t)(unsafe.Pointer(&nonce[0])),
		(*C.uint8_t)(unsafe.Pointer(&ciphertextAndTag[0])), C.size_t(len(ciphertextAndTag)),
		adPtr, C.size_t(len(ad)), outPtr)
	if rc != 1 {
		return nil, errors.New("crypto: native shim authentication failed")
	}
	return out, nil
}
