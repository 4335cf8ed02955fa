package keys

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/logging"
)

// Manager hands out the installation key, creating it on first use.
type Manager struct {
	store SecureStore
	tag   string
	log   logging.Logger

	// mu serializes first use within this process; the store's
	// put-if-absent covers other processes.
	mu sync.Mutex
}

func NewManager(store SecureStore, log logging.Logger) *Manager {
	return &Manager{store: store, tag: common.KeyTag, log: log}
}

// Obtain returns a copy of the active key, creating and persisting one if
// the store has none. The caller owns the returned slice and should wipe it.
//
// Any store failure is reported as common.ErrKeyUnavailable.
func (m *Manager) Obtain(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, ok, err := m.store.Get(ctx, m.tag)
	if err != nil {
		return nil, fmt.Errorf("%w: read key store: %w", common.ErrKeyUnavailable, err)
	}
	if ok {
		return checkSize(key)
	}

	candidate := common.GenerateRandByteArray(common.KeySize)
	if candidate == nil {
		return nil, fmt.Errorf("%w: random source failed", common.ErrKeyUnavailable)
	}

	err = m.store.Put(ctx, m.tag, candidate)
	switch {
	case err == nil:
		m.log.Info(ctx, "created installation key", "tag", m.tag)
		return candidate, nil

	case errors.Is(err, ErrKeyExists):
		// Another writer got there first; its key is authoritative.
		common.WipeByteArray(candidate)
		m.log.Debug(ctx, "installation key created concurrently, using stored key", "tag", m.tag)

		key, ok, err := m.store.Get(ctx, m.tag)
		if err != nil {
			return nil, fmt.Errorf("%w: read key store: %w", common.ErrKeyUnavailable, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: key vanished after concurrent create", common.ErrKeyUnavailable)
		}
		return checkSize(key)

	default:
		common.WipeByteArray(candidate)
		return nil, fmt.Errorf("%w: write key store: %w", common.ErrKeyUnavailable, err)
	}
}

// WithKey obtains the key, passes it to fn and wipes it on every exit path.
// fn must not retain the slice.
func (m *Manager) WithKey(ctx context.Context, fn func(key []byte) error) error {
	key, err := m.Obtain(ctx)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	return fn(key)
}

func checkSize(key []byte) ([]byte, error) {
	if len(key) != common.KeySize {
		common.WipeByteArray(key)
		return nil, fmt.Errorf("%w: stored key has %d bytes, want %d",
			common.ErrKeyUnavailable, len(key), common.KeySize)
	}
	return key, nil
}
