package credentials

import (
	"context"

	"github.com/dmitrijs2005/gophvault/internal/models"
)

// Repository stores credential records. Writes must be visible to a
// subsequent FetchAll.
type Repository interface {
	// FetchAll returns every record, most recently updated first.
	FetchAll(ctx context.Context) ([]models.Record, error)

	// Insert stores a new record.
	Insert(ctx context.Context, rec *models.Record) error

	// Update replaces the mutable fields of an existing record.
	// It returns common.ErrorNotFound when no record has rec.ID.
	Update(ctx context.Context, rec *models.Record) error

	// Delete removes a record. It returns common.ErrorNotFound when absent.
	Delete(ctx context.Context, id string) error
}
