package main

import "errors"

var (
	errUnknownKDFMode  = errors.New("unknown kdf_mode")
	errBadHexLength    = errors.New("expected 32 bytes of hex")
	errBadMasterSecret = errors.New("master_secret_hex must be 32 bytes")
	errBadPrevHash     = errors.New("prev_hash_hex must be 32 bytes")
	errBadPlaintext    = errors.New("bad plaintext_hex")
	errBadStateField   = errors.New("bad state field hex value")
	errBadNonce        = errors.New("nonce_hex must be 12 bytes")
	errBadHeader       = errors.New("bad header_hex")
	errBadCarrier      = errors.New("bad carrier_hex")
	errBadKEK          = errors.New("kek_hex must be 32 bytes")
)
