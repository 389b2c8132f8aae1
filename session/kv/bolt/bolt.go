// Package bolt provides the remembered session scope, backed by a bbolt
// database so remember-me sessions survive a process restart.
package bolt

import (
	"fmt"

	"go.etcd.io/bbolt"

	apperrors "github.com/lifelinkhq/donor-portal/internal/errors"
	"github.com/lifelinkhq/donor-portal/session"
)

var bucketName = []byte("sessions")

// KV implements session.KV backed by a bbolt database.
type KV struct {
	db *bbolt.DB
}

var _ session.KV = (*KV)(nil)

// NewKV returns a KV backed by the given bbolt database.
func NewKV(db *bbolt.DB) *KV {
	return &KV{db: db}
}

// NewKVFromFile opens a bbolt database at the given path.
func NewKVFromFile(path string, options *bbolt.Options) (*KV, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	return NewKV(db), nil
}

// Close closes the underlying database.
func (r *KV) Close() error {
	return r.db.Close()
}

func (r *KV) Put(contextID string, data []byte) error {
	if contextID == "" {
		return fmt.Errorf("contextID is required")
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.Put([]byte(contextID), data)
	})
}

func (r *KV) Get(contextID string) ([]byte, error) {
	if contextID == "" {
		return nil, fmt.Errorf("contextID is required")
	}
	var data []byte
	err := r.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return fmt.Errorf("%s: %w", contextID, apperrors.ErrNotFound)
		}
		record := b.Get([]byte(contextID))
		if record == nil {
			return fmt.Errorf("%s: %w", contextID, apperrors.ErrNotFound)
		}
		data = make([]byte, len(record))
		copy(data, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *KV) Delete(contextID string) error {
	if contextID == "" {
		return fmt.Errorf("contextID is required")
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(contextID))
	})
}
