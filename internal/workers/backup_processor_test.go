// internal/workers/backup_processor_test.go
package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-be/internal/core/ports"
	"github.com/dukahub/duka-be/internal/core/services"
	"github.com/dukahub/duka-be/internal/workers"
	"github.com/dukahub/duka-be/test/helpers"
)

// fakeStorage records uploads in memory.
type fakeStorage struct {
	objects   map[string][]byte
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, key string, data io.Reader, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	payload, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	f.objects[key] = payload
	return key, nil
}

func (f *fakeStorage) Download(_ context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (f *fakeStorage) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func TestBackupSnapshot_UploadsFullState(t *testing.T) {
	ctx := context.Background()
	ledger := services.NewLedger(ctx, helpers.NewMemStore(), helpers.TestLogger())
	ledger.RecordSale(ctx, helpers.Sale("s1", "seed-001", 2, 120, 240))

	st := newFakeStorage()
	p := workers.NewBackupProcessor(ledger, st, helpers.TestLogger())

	task, err := workers.NewSnapshotBackupTask()
	require.NoError(t, err)
	require.NoError(t, p.BackupSnapshot(ctx, task))

	keys, err := st.List(ctx, "backups/")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Regexp(t, `^backups/shop-\d{8}-\d{6}\.json$`, keys[0])

	var snap ports.Snapshot
	require.NoError(t, json.Unmarshal(st.objects[keys[0]], &snap))
	require.Len(t, snap.Sales, 1)
	assert.Equal(t, "s1", snap.Sales[0].ID)
	assert.NotEmpty(t, snap.Products)
}

func TestBackupSnapshot_UploadErrorPropagates(t *testing.T) {
	ctx := context.Background()
	ledger := services.NewLedger(ctx, helpers.NewMemStore(), helpers.TestLogger())

	st := newFakeStorage()
	st.uploadErr = errors.New("bucket unavailable")
	p := workers.NewBackupProcessor(ledger, st, helpers.TestLogger())

	task, err := workers.NewSnapshotBackupTask()
	require.NoError(t, err)
	assert.Error(t, p.BackupSnapshot(ctx, task))
}
