package store

import (
	"context"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/serroba/url-shortener/internal/shortener"
)

var linksBucket = []byte("links")

// BoltStore keeps links in an embedded bolt database file.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(linksBucket)

		return err
	})
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Put runs in a read-write transaction; bolt allows one writer at a time.
func (b *BoltStore) Put(_ context.Context, link *shortener.ShortLink) error {
	payload, err := encodeLink(link)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(linksBucket)
		key := []byte(link.Code)

		if bucket.Get(key) != nil {
			return shortener.ErrDuplicateCode
		}

		return bucket.Put(key, payload)
	})
}

func (b *BoltStore) Get(_ context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	var data []byte

	err := b.db.View(func(tx *bolt.Tx) error {
		// Values are only valid inside the transaction.
		if v := tx.Bucket(linksBucket).Get([]byte(code)); v != nil {
			data = append([]byte(nil), v...)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, shortener.ErrNotFound
	}

	return decodeLink(code, data)
}

// Shutdown closes the database file.
func (b *BoltStore) Shutdown() error {
	return b.db.Close()
}

var _ shortener.Repository = (*BoltStore)(nil)
