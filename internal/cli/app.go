package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophvault/internal/config"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/keys"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/storage"
	"github.com/dmitrijs2005/gophvault/internal/unlock"
	"github.com/dmitrijs2005/gophvault/internal/vault"
)

type App struct {
	config *config.Config
	db     *storage.DB
	keys   keys.SecureStore
	gate   unlock.Gate
	vault  *vault.Store
	log    logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the database and prepares the unlock gate. The vault itself
// is built by Unlock.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	a := newApp(cfg, db, keys.NewFileStore(cfg.KeyStoreDir), nil, os.Stdin, os.Stdout, log)

	switch cfg.AuthMode {
	case config.AuthNone:
		a.gate = unlock.AllowAll()
	default:
		a.gate = unlock.NewPassphraseGate(db.SQL, db.Dialect, a.promptSecret, cfg.MaxAuthAttempts, log.With("component", "unlock"))
	}
	return a, nil
}

func newApp(cfg *config.Config, db *storage.DB, store keys.SecureStore, gate unlock.Gate, in io.Reader, out io.Writer, log logging.Logger) *App {
	return &App{
		config: cfg,
		db:     db,
		keys:   store,
		gate:   gate,
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Unlock runs the gate and, when access is granted, builds and loads the
// credential store.
func (a *App) Unlock(ctx context.Context) error {
	if err := unlock.Require(ctx, a.gate); err != nil {
		return err
	}

	manager := keys.NewManager(a.keys, a.log.With("component", "keys"))
	engine := cryptox.NewEngine(manager)
	a.vault = vault.NewStore(a.db.Credentials, engine, a.log.With("component", "vault"))

	return a.vault.Reload(ctx)
}

// Run unlocks the vault and serves the REPL until exit or end of input.
// The database is closed on return.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	if err := a.Unlock(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome to GophVault (%d credentials, type 'help' for commands)\n", len(a.vault.Credentials()))
	runREPL(ctx, a, a.reader, a.out)
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
