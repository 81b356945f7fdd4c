// internal/adapters/storage/s3_test.go
package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dukahub/duka-be/internal/adapters/storage"
)

func TestSnapshotKey(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "backups/shop-20260314-092653.json", storage.SnapshotKey(ts))
}

func TestSnapshotKey_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	local := time.Date(2026, 3, 14, 12, 26, 53, 0, loc)

	assert.Equal(t, "backups/shop-20260314-092653.json", storage.SnapshotKey(local))
}
