// Package credentials provides the persistence layer for credential records.
//
// # Overview
//
// Repository is the four-operation contract the vault relies on: FetchAll,
// Insert, Update and Delete. SQLRepository implements it over a dbx.DBTX
// (either *sql.DB or *sql.Tx) for two dialects:
//
//   - NewSQLiteRepository: modernc.org/sqlite, "?" placeholders
//   - NewPostgresRepository: pgx stdlib driver, "$n" placeholders
//
// # Data Model
//
// Rows hold the account label, the identifier and the sealed secret
// (nonce || ciphertext || tag). Timestamps are stored as Unix nanoseconds so
// ordering and round-trips are exact on both engines. The repository never
// sees plaintext secrets.
//
// # Typical Usage
//
//	repo := credentials.NewSQLiteRepository(db)
//	_ = repo.Insert(ctx, rec)
//	all, _ := repo.FetchAll(ctx)
//	_ = repo.Update(ctx, rec)
//	_ = repo.Delete(ctx, rec.ID)
package credentials
