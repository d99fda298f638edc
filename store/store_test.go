package store

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPutGetBlockRoundTrip(t *testing.T) {
	db := openTestDB(t)

	var hash [32]byte
	hash[0] = 0xab
	carrier := []byte("carrier bytes for block 1")

	if err := db.PutBlock(1, hash, carrier); err != nil {
		t.Fatalf("PutBlock: %v", err)
	}

	gotHash, gotCarrier, ok, err := db.GetBlock(1)
	if err != nil {
		t.Fatalf("GetBlock: %v", err)
	}
	if !ok {
		t.Fatalf("expected block 1 to be found")
	}
	if gotHash != hash {
		t.Fatalf("hash mismatch: got %x want %x", gotHash, hash)
	}
	if string(gotCarrier) != string(carrier) {
		t.Fatalf("carrier mismatch: got %q want %q", gotCarrier, carrier)
	}
}

func TestGetBlockMissingReturnsNotOK(t *testing.T) {
	db := openTestDB(t)
	_, _, ok, err := db.GetBlock(42)
	if err != nil {
		t.Fatalf("GetBlock: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for a block never written")
	}
}

func TestTipTracksLatestWrite(t *testing.T) {
	db := openTestDB(t)

	var h1, h2 [32]byte
	h1[0], h2[0] = 1, 2

	if err := db.PutBlock(1, h1, []byte("a")); err != nil {
		t.Fatalf("PutBlock 1: %v", err)
	}
	if err := db.PutBlock(2, h2, []byte("b")); err != nil {
		t.Fatalf("PutBlock 2: %v", err)
	}

	tipT, tipHash, ok, err := db.Tip()
	if err != nil {
		t.Fatalf("Tip: %v", err)
	}
	if !ok {
		t.Fatalf("expected a tip after two writes")
	}
	if tipT != 2 || tipHash != h2 {
		t.Fatalf("tip mismatch: got t=%d hash=%x", tipT, tipHash)
	}
}

func TestTipEmptyJournal(t *testing.T) {
	db := openTestDB(t)
	_, _, ok, err := db.Tip()
	if err != nil {
		t.Fatalf("Tip: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false on an empty journal")
	}
}

func TestReopenPreservesJournal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var hash [32]byte
	hash[0] = 0x77
	if err := db.PutBlock(5, hash, []byte("persisted")); err != nil {
		t.Fatalf("PutBlock: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = db2.Close() })

	gotHash, gotCarrier, ok, err := db2.GetBlock(5)
	if err != nil {
		t.Fatalf("GetBlock after reopen: %v", err)
	}
	if !ok || gotHash != hash || string(gotCarrier) != "persisted" {
		t.Fatalf("journal did not survive reopen: ok=%v hash=%x carrier=%q", ok, gotHash, gotCarrier)
	}
}
