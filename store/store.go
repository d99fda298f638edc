// Package store persists the commitment journal: for every block t this
// process has sent or accepted, the commitment hash H_t it produced and
// the carrier bytes that were sent over the wire. It keeps no opinion
// about acceptance — a rejected block is never written here.
package store

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketCarriers    = []byte("carrier_by_t")
	bucketCommitments = []byte("commitment_by_t")
	bucketMeta        = []byte("meta")

	metaKeyTip = []byte("tip")
)

// DB is a bbolt-backed journal keyed by block index t.
type DB struct {
	db *bolt.DB
}

// Open creates the journal file and its buckets if absent, and opens it
// for reads and writes. path is the full file path, not a directory.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("store: path required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
	}
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open bbolt: %w", err)
	}
	d := &DB{db: bdb}
	if err := d.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketCarriers, bucketCommitments, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}
	return d, nil
}

// Close releases the underlying file lock.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func beKey(t uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], t)
	return k[:]
}

// PutBlock records block t's commitment hash and carrier bytes, and
// advances the journal's recorded tip to t if t is above the current tip.
// An earlier entry at the same t is overwritten. Callers are expected to call
// this only after the commitment chain itself has already accepted t
// (see commitment.ChainState.Advance) — PutBlock does not re-derive or
// check the hash.
func (d *DB) PutBlock(t uint64, commitHash [32]byte, carrier []byte) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketCarriers).Put(beKey(t), carrier); err != nil {
			return err
		}
		if err := tx.Bucket(bucketCommitments).Put(beKey(t), commitHash[:]); err != nil {
			return err
		}
		meta := tx.Bucket(bucketMeta)
		if cur := meta.Get(metaKeyTip); len(cur) == 8 && binary.BigEndian.Uint64(cur) > t {
			return nil
		}
		return meta.Put(metaKeyTip, beKey(t))
	})
}

// GetBlock returns the commitment hash and carrier bytes recorded for
// block t, or ok=false if nothing was ever recorded at that index.
func (d *DB) GetBlock(t uint64) (commitHash [32]byte, carrier []byte, ok bool, err error) {
	err = d.db.View(func(tx *bolt.Tx) error {
		h := tx.Bucket(bucketCommitments).Get(beKey(t))
		if h == nil {
			return nil
		}
		if len(h) != 32 {
			return fmt.Errorf("store: corrupt commitment entry at t=%d", t)
		}
		copy(commitHash[:], h)
		c := tx.Bucket(bucketCarriers).Get(beKey(t))
		carrier = append([]byte(nil), c...)
		ok = true
		return nil
	})
	return
}

// Tip returns the highest block index recorded and its commitment hash,
// or ok=false if the journal is empty.
func (d *DB) Tip() (t uint64, hash [32]byte, ok bool, err error) {
	err = d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketMeta).Get(metaKeyTip)
		if v == nil {
			return nil
		}
		if len(v) != 8 {
			return fmt.Errorf("store: corrupt tip marker")
		}
		tipT := binary.BigEndian.Uint64(v)
		h := tx.Bucket(bucketCommitments).Get(beKey(tipT))
		if h == nil || len(h) != 32 {
			return fmt.Errorf("store: tip marker points at missing commitment t=%d", tipT)
		}
		t = tipT
		copy(hash[:], h)
		ok = true
		return nil
	})
	return
}
