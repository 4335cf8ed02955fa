package credentials

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/models"
)

// SQLRepository implements Repository using a DBTX.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

// NewSQLiteRepository returns a repository for a SQLite handle.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, dialect: dbx.SQLite}
}

// NewPostgresRepository returns a repository for a PostgreSQL handle.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, dialect: dbx.Postgres}
}

// New returns a repository for the given dialect.
func New(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) q(query string) string {
	return dbx.Rebind(r.dialect, query)
}

// FetchAll lists all records ordered by updated_at, newest first.
func (r *SQLRepository) FetchAll(ctx context.Context) ([]models.Record, error) {
	query := `SELECT id, account_label, identifier, secret_ciphertext, created_at, updated_at
		FROM credentials
		ORDER BY updated_at DESC, created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select credentials: %w", err)
	}
	defer rows.Close()

	var result []models.Record
	for rows.Next() {
		var (
			rec                models.Record
			created, updated int64
		)
		if err := rows.Scan(&rec.ID, &rec.AccountLabel, &rec.Identifier, &rec.SecretCiphertext, &created, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		rec.CreatedAt = fromNanos(created)
		rec.UpdatedAt = fromNanos(updated)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credentials: %w", err)
	}
	return result, nil
}

// Insert adds a new row.
func (r *SQLRepository) Insert(ctx context.Context, rec *models.Record) error {
	query := `INSERT INTO credentials (id, account_label, identifier, secret_ciphertext, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.q(query),
		rec.ID, rec.AccountLabel, rec.Identifier, rec.SecretCiphertext,
		rec.CreatedAt.UnixNano(), rec.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert credential: %w", err)
	}
	return nil
}

// Update rewrites label, identifier, ciphertext and updated_at. created_at
// is never touched. It expects exactly one row to be affected.
func (r *SQLRepository) Update(ctx context.Context, rec *models.Record) error {
	query := `UPDATE credentials
		SET account_label = ?, identifier = ?, secret_ciphertext = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, r.q(query),
		rec.AccountLabel, rec.Identifier, rec.SecretCiphertext, rec.UpdatedAt.UnixNano(), rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update credential: %w", err)
	}
	return expectOneRow(res.RowsAffected())
}

// Delete removes the row with id. It expects exactly one row to be affected.
func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.q(`DELETE FROM credentials WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return expectOneRow(res.RowsAffected())
}

func expectOneRow(ra int64, err error) error {
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	switch ra {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
