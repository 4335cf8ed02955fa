package unlock

import (
	"bytes"
	"context"
	"crypto/subtle"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/repositories/metadata"
)

// Metadata keys holding the enrolled passphrase material.
const (
	SaltKey     = "auth_salt"
	VerifierKey = "auth_verifier"
	SaltSize    = 32

	DefaultMaxAttempts = 3
)

// PromptFunc asks the user for a secret, usually without echo. The caller
// wipes the returned slice.
type PromptFunc func(label string) ([]byte, error)

// PassphraseGate protects the vault with a master passphrase. The first
// successful Authenticate enrolls one; later calls verify against the stored
// salt and verifier.
type PassphraseGate struct {
	db          *sql.DB
	dialect     dbx.Dialect
	prompt      PromptFunc
	maxAttempts int
	log         logging.Logger
}

func NewPassphraseGate(db *sql.DB, dialect dbx.Dialect, prompt PromptFunc, maxAttempts int, log logging.Logger) *PassphraseGate {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &PassphraseGate{
		db:          db,
		dialect:     dialect,
		prompt:      prompt,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Enrolled reports whether a passphrase has been set up.
func (g *PassphraseGate) Enrolled(ctx context.Context) (bool, error) {
	salt, verifier, err := g.load(ctx)
	if err != nil {
		return false, err
	}
	return salt != nil && verifier != nil, nil
}

func (g *PassphraseGate) Authenticate(ctx context.Context) Outcome {
	salt, verifier, err := g.load(ctx)
	if err != nil {
		g.log.Error(ctx, "failed to load auth metadata", "error", err)
		return Denied("auth metadata unavailable")
	}

	switch {
	case salt == nil && verifier == nil:
		return g.enroll(ctx)
	case salt == nil || verifier == nil:
		g.log.Error(ctx, "auth metadata is incomplete")
		return Denied("auth metadata is incomplete")
	default:
		return g.verify(ctx, salt, verifier)
	}
}

func (g *PassphraseGate) verify(ctx context.Context, salt, verifier []byte) Outcome {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		pw, err := g.prompt("Master passphrase")
		if err != nil {
			return Denied(fmt.Sprintf("read passphrase: %v", err))
		}

		key := cryptox.DeriveMasterKey(pw, salt)
		candidate := cryptox.MakeVerifier(key)
		common.WipeByteArray(pw)
		common.WipeByteArray(key)

		if subtle.ConstantTimeCompare(verifier, candidate) == 1 {
			g.log.Debug(ctx, "passphrase accepted", "attempt", attempt)
			return Granted()
		}
		g.log.Warn(ctx, "wrong passphrase", "attempt", attempt, "max", g.maxAttempts)
	}
	return Denied("too many failed attempts")
}

func (g *PassphraseGate) enroll(ctx context.Context) Outcome {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		pw, err := g.prompt("New master passphrase")
		if err != nil {
			return Denied(fmt.Sprintf("read passphrase: %v", err))
		}
		if len(pw) == 0 {
			g.log.Warn(ctx, "empty passphrase rejected")
			continue
		}

		again, err := g.prompt("Repeat master passphrase")
		if err != nil {
			common.WipeByteArray(pw)
			return Denied(fmt.Sprintf("read passphrase: %v", err))
		}
		same := bytes.Equal(pw, again)
		common.WipeByteArray(again)
		if !same {
			common.WipeByteArray(pw)
			g.log.Warn(ctx, "passphrases do not match", "attempt", attempt)
			continue
		}

		err = g.save(ctx, pw)
		common.WipeByteArray(pw)
		if err != nil {
			g.log.Error(ctx, "failed to save auth metadata", "error", err)
			return Denied("could not save passphrase")
		}
		g.log.Info(ctx, "master passphrase enrolled")
		return Granted()
	}
	return Denied("passphrase enrollment failed")
}

// save stores a fresh salt and the verifier in one transaction.
func (g *PassphraseGate) save(ctx context.Context, pw []byte) error {
	salt := common.GenerateRandByteArray(SaltSize)
	if salt == nil {
		return fmt.Errorf("failed to generate salt")
	}
	key := cryptox.DeriveMasterKey(pw, salt)
	defer common.WipeByteArray(key)
	verifier := cryptox.MakeVerifier(key)

	return dbx.WithTx(ctx, g.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.New(tx, g.dialect)
		if err := repo.Set(ctx, SaltKey, salt); err != nil {
			return err
		}
		return repo.Set(ctx, VerifierKey, verifier)
	})
}

func (g *PassphraseGate) load(ctx context.Context) (salt, verifier []byte, err error) {
	repo := metadata.New(g.db, g.dialect)
	if salt, err = repo.Get(ctx, SaltKey); err != nil {
		return nil, nil, err
	}
	if verifier, err = repo.Get(ctx, VerifierKey); err != nil {
		return nil, nil, err
	}
	return salt, verifier, nil
}
