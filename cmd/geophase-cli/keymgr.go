package main

import (
	"encoding/hex"
	"encoding/json"

	"github.com/FractalFuryan/dual-chain-geophase/crypto"
	"github.com/FractalFuryan/dual-chain-geophase/keyschedule"
)

func decodeKEK(req Request) ([32]byte, error) {
	var kek [32]byte
	b, err := hex.DecodeString(req.KEKHex)
	if err != nil || len(b) != 32 {
		return kek, errBadKEK
	}
	copy(kek[:], b)
	return kek, nil
}

// handleKeymgrWrap wraps master_secret_hex under kek_hex and either
// writes the resulting keystore record to keystore_path or, if that
// field is empty, returns it inline as keystore_json.
func handleKeymgrWrap(p crypto.Provider, req Request) Response {
	kek, err := decodeKEK(req)
	if err != nil {
		return errResp(err.Error())
	}
	masterBytes, err := hex.DecodeString(req.MasterSecretHex)
	if err != nil || len(masterBytes) != 32 {
		return errResp(errBadMasterSecret.Error())
	}
	var master [32]byte
	copy(master[:], masterBytes)

	ks, err := keyschedule.WrapMasterSecret(p, kek, master)
	if err != nil {
		return errResp(err.Error())
	}
	if req.KeystorePath != "" {
		if err := keyschedule.SaveKeystoreFile(req.KeystorePath, ks); err != nil {
			return errResp(err.Error())
		}
		return Response{Ok: true}
	}
	raw, err := json.Marshal(ks)
	if err != nil {
		return errResp(err.Error())
	}
	return Response{Ok: true, KeystoreJSON: string(raw)}
}

// handleKeymgrUnwrap reads the keystore record at keystore_path,
// unwraps it under kek_hex, and returns the recovered master secret.
func handleKeymgrUnwrap(p crypto.Provider, req Request) Response {
	kek, err := decodeKEK(req)
	if err != nil {
		return errResp(err.Error())
	}
	if req.KeystorePath == "" {
		return errResp("keystore_path required")
	}
	ks, err := keyschedule.LoadKeystoreFile(req.KeystorePath)
	if err != nil {
		return errResp(err.Error())
	}
	master, err := keyschedule.UnwrapMasterSecret(p, kek, ks)
	if err != nil {
		return errResp(err.Error())
	}
	return Response{Ok: true, PlaintextHex: hex.EncodeToString(master[:])}
}
