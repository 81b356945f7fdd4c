// internal/core/ports/blob_store.go
package ports

import "context"

// BlobStore is the durable key-value contract the ledger persists through.
// Adapters store each record as one named JSON blob and replace it
// wholesale on save.
type BlobStore interface {
	// Load reads the record stored under key into dest, which must be a
	// non-nil pointer. A missing key, unreadable payload, or payload of
	// the wrong shape is absorbed by the adapter (logged, dest left
	// untouched) and reported as false. Load never returns an error.
	Load(ctx context.Context, key string, dest any) bool

	// Save serializes value and replaces the record under key. Adapters
	// log failures; the returned error is advisory only and must never
	// abort the mutation that triggered the save.
	Save(ctx context.Context, key string, value any) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
