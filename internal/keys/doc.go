// Package keys manages the single symmetric encryption key of a vault
// installation.
//
// # Lifecycle
//
// The key is absent on first run. The first cryptographic operation makes
// Manager generate 32 random bytes and persist them in a SecureStore; every
// later operation reads the same key back. The key is never regenerated,
// rotated or cached in memory beyond a single WithKey call.
//
// # Stores
//
//   - FileStore: one file per tag in a 0700 directory, published atomically
//   - MemoryStore: process-local, for tests
//
// Both implement put-if-absent: a second Put for the same tag fails with
// ErrKeyExists, which is how concurrent first use converges on one key.
package keys
