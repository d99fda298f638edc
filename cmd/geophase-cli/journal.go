package main

import (
	"encoding/hex"

	"github.com/FractalFuryan/dual-chain-geophase/store"
)

// journalBlock opens the bbolt journal at path, records block t's
// commitment hash and carrier bytes, and closes it. A no-op if path is
// empty — journaling is opt-in per request.
func journalBlock(path string, t uint64, commitHash [32]byte, carrier []byte) error {
	if path == "" {
		return nil
	}
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.PutBlock(t, commitHash, carrier)
}

// handleJournalTip reports the highest block index recorded in the
// journal at store_path and its commitment hash.
func handleJournalTip(req Request) Response {
	if req.StorePath == "" {
		return errResp("store_path required")
	}
	db, err := store.Open(req.StorePath)
	if err != nil {
		return errResp(err.Error())
	}
	defer db.Close()

	t, hash, ok, err := db.Tip()
	if err != nil {
		return errResp(err.Error())
	}
	if !ok {
		return Response{Ok: true}
	}
	return Response{Ok: true, NextT: t, NextHash: hex.EncodeToString(hash[:])}
}
