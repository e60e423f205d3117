package cache

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/pkg/errno"
)

var bucketRanking = []byte("ranking")

// Bolt persists entries in a local BoltDB file; values are prefixed with
// their expiry as big-endian unix nanoseconds.
type Bolt struct {
	db  *bolt.DB
	now func() time.Time
}

func NewBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt cache: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRanking)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket %q: %w", bucketRanking, err)
	}
	return &Bolt{db: db, now: time.Now}, nil
}

func (b *Bolt) Get(_ context.Context, key string) ([]byte, error) {
	var (
		out     []byte
		expired bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketRanking).Get([]byte(key))
		if len(raw) < 8 {
			return errno.ErrCacheMiss
		}
		exp := int64(binary.BigEndian.Uint64(raw[:8]))
		if exp != 0 && b.now().UnixNano() >= exp {
			expired = true
			return errno.ErrCacheMiss
		}
		// raw is only valid inside the transaction.
		out = append([]byte(nil), raw[8:]...)
		return nil
	})
	if expired {
		_ = b.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketRanking).Delete([]byte(key))
		})
	}
	return out, err
}

func (b *Bolt) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	buf := make([]byte, 8+len(value))
	if ttl > 0 {
		binary.BigEndian.PutUint64(buf[:8], uint64(b.now().Add(ttl).UnixNano()))
	}
	copy(buf[8:], value)

	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRanking).Put([]byte(key), buf)
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
