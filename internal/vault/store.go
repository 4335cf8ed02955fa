// Package vault implements the credential store: the orchestrator that
// validates input, seals secrets through the cipher engine, persists records
// through the repository and keeps a decrypted, ordered view for the
// presentation layer.
package vault

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/models"
	"github.com/dmitrijs2005/gophvault/internal/repositories/credentials"
)

// ErrStaleView reports that a mutation was persisted but the reload that
// follows it failed. Retrying the mutation would apply it twice.
var ErrStaleView = errors.New("change saved but view not refreshed")

// Sealer encrypts and decrypts secrets. cryptox.Engine satisfies it.
type Sealer interface {
	Seal(ctx context.Context, plaintext string) ([]byte, error)
	Open(ctx context.Context, sealed []byte) (string, error)
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the record ID source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Store is safe for concurrent use; operations are serialized.
type Store struct {
	repo   credentials.Repository
	cipher Sealer
	log    logging.Logger

	now   func() time.Time
	newID func() string

	mu      sync.Mutex
	view    []models.Credential
	lastErr error
	busy    atomic.Bool
}

func NewStore(repo credentials.Repository, cipher Sealer, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		cipher: cipher,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// List reloads every record and returns the readable ones, most recently
// updated first. Records that fail to decrypt are left out.
func (s *Store) List(ctx context.Context) ([]models.Credential, error) {
	s.begin()
	defer s.end()

	err := s.reload(ctx)
	s.lastErr = err
	if err != nil {
		return nil, err
	}
	return slices.Clone(s.view), nil
}

// Reload refreshes the view from the repository.
func (s *Store) Reload(ctx context.Context) error {
	_, err := s.List(ctx)
	return err
}

// Credentials returns the view as of the last successful reload.
func (s *Store) Credentials() []models.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.view)
}

// Get looks id up in the current view.
func (s *Store) Get(id string) (models.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.view {
		if c.ID == id {
			return c, true
		}
	}
	return models.Credential{}, false
}

// LastError reports the error of the latest operation, nil if it succeeded.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Busy reports whether an operation is in flight.
func (s *Store) Busy() bool {
	return s.busy.Load()
}

// Create seals secret and stores a new record.
func (s *Store) Create(ctx context.Context, label, identifier, secret string) error {
	s.begin()
	defer s.end()

	s.lastErr = s.create(ctx, label, identifier, secret)
	return s.lastErr
}

func (s *Store) create(ctx context.Context, label, identifier, secret string) error {
	if err := validate(label, identifier, secret); err != nil {
		return err
	}

	sealed, err := s.cipher.Seal(ctx, secret)
	if err != nil {
		return fmt.Errorf("seal secret: %w", err)
	}

	now := s.now().UTC()
	rec := &models.Record{
		ID:               s.newID(),
		AccountLabel:     label,
		Identifier:       identifier,
		SecretCiphertext: sealed,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	s.log.Info(ctx, "credential created", "id", rec.ID)

	return s.reloadAfterWrite(ctx)
}

// Update replaces label, identifier and secret of the record with id.
// An unknown id is logged and ignored.
func (s *Store) Update(ctx context.Context, id, label, identifier, secret string) error {
	s.begin()
	defer s.end()

	s.lastErr = s.update(ctx, id, label, identifier, secret)
	return s.lastErr
}

func (s *Store) update(ctx context.Context, id, label, identifier, secret string) error {
	if err := validate(label, identifier, secret); err != nil {
		return err
	}

	records, err := s.repo.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	idx := slices.IndexFunc(records, func(r models.Record) bool { return r.ID == id })
	if idx < 0 {
		s.log.Warn(ctx, "update of unknown credential ignored", "id", id)
		return nil
	}

	sealed, err := s.cipher.Seal(ctx, secret)
	if err != nil {
		return fmt.Errorf("seal secret: %w", err)
	}

	rec := records[idx]
	rec.AccountLabel = label
	rec.Identifier = identifier
	rec.SecretCiphertext = sealed
	rec.UpdatedAt = laterThan(s.now().UTC(), rec.UpdatedAt)

	err = s.repo.Update(ctx, &rec)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		s.log.Warn(ctx, "credential vanished before update", "id", id)
		return s.reload(ctx)
	case err != nil:
		return fmt.Errorf("update credential: %w", err)
	default:
		s.log.Info(ctx, "credential updated", "id", id)
	}

	return s.reloadAfterWrite(ctx)
}

// Delete removes the record with id. An unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.begin()
	defer s.end()

	s.lastErr = s.delete(ctx, id)
	return s.lastErr
}

func (s *Store) delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		s.log.Warn(ctx, "delete of unknown credential ignored", "id", id)
		return s.reload(ctx)
	case err != nil:
		return fmt.Errorf("delete credential: %w", err)
	default:
		s.log.Info(ctx, "credential deleted", "id", id)
	}

	return s.reloadAfterWrite(ctx)
}

// reload replaces the view with the decrypted repository contents.
// Must be called with s.mu held.
func (s *Store) reload(ctx context.Context) error {
	records, err := s.repo.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}

	view := make([]models.Credential, 0, len(records))
	for _, r := range records {
		secret, err := s.cipher.Open(ctx, r.SecretCiphertext)
		if err != nil {
			s.log.Warn(ctx, "skipping unreadable credential", "id", r.ID, "error", err)
			continue
		}
		view = append(view, models.Credential{
			ID:           r.ID,
			AccountLabel: r.AccountLabel,
			Identifier:   r.Identifier,
			Secret:       secret,
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    r.UpdatedAt,
		})
	}

	slices.SortStableFunc(view, func(a, b models.Credential) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	s.view = view
	return nil
}

// reloadAfterWrite is reload for the end of a mutation; a failure is
// marked with ErrStaleView.
func (s *Store) reloadAfterWrite(ctx context.Context) error {
	if err := s.reload(ctx); err != nil {
		s.log.Warn(ctx, "reload after write failed", "error", err)
		return fmt.Errorf("%w: %w", ErrStaleView, err)
	}
	return nil
}

// laterThan returns t, or prev plus one nanosecond when the clock has not
// moved past prev.
func laterThan(t, prev time.Time) time.Time {
	if !t.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return t
}

func (s *Store) begin() {
	s.mu.Lock()
	s.busy.Store(true)
}

func (s *Store) end() {
	s.busy.Store(false)
	s.mu.Unlock()
}

func validate(label, identifier, secret string) error {
	switch {
	case label == "":
		return fmt.Errorf("%w: account label cannot be empty", common.ErrorValidation)
	case identifier == "":
		return fmt.Errorf("%w: username/email cannot be empty", common.ErrorValidation)
	case secret == "":
		return fmt.Errorf("%w: password cannot be empty", common.ErrorValidation)
	}
	return nil
}
