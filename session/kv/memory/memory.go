// Package memory provides the ephemeral session scope: an in-process map
// that does not survive a restart.
package memory

import (
	"fmt"
	"sync"

	apperrors "github.com/lifelinkhq/donor-portal/internal/errors"
	"github.com/lifelinkhq/donor-portal/session"
)

// KV is an in-memory implementation of session.KV.
type KV struct {
	mu      sync.RWMutex
	records map[string][]byte
}

var _ session.KV = (*KV)(nil)

// NewKV creates a new in-memory key-value store.
func NewKV() *KV {
	return &KV{records: make(map[string][]byte)}
}

// Put stores a record, copying the data to avoid external modification.
func (r *KV) Put(contextID string, data []byte) error {
	if contextID == "" {
		return fmt.Errorf("contextID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record := make([]byte, len(data))
	copy(record, data)
	r.records[contextID] = record
	return nil
}

// Get retrieves a record by context ID.
func (r *KV) Get(contextID string) ([]byte, error) {
	if contextID == "" {
		return nil, fmt.Errorf("contextID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[contextID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	data := make([]byte, len(record))
	copy(data, record)
	return data, nil
}

// Delete removes a record. Deleting a missing record is not an error.
func (r *KV) Delete(contextID string) error {
	if contextID == "" {
		return fmt.Errorf("contextID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, contextID)
	return nil
}
