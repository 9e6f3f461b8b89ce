package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/match-intake/api/internal/intake/domain"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRecordStore_HeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "matches.csv")
	store, err := New(path, nil)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err), "file is created lazily")

	ctx := context.Background()
	require.NoError(t, store.Append(ctx, domain.Record{FirstName: "Ann", Personality: "Calm|Funny"}))
	require.NoError(t, store.Append(ctx, domain.Record{FirstName: "Bo", Notes: "likes, commas\nand lines"}))

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.Header(), rows[0])
	assert.Equal(t, "Ann", rows[1][0])
	assert.Equal(t, "Calm|Funny", rows[1][6])
	assert.Equal(t, "likes, commas\nand lines", rows[2][13])
}

func TestRecordStore_ReopenKeepsSingleHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.csv")
	ctx := context.Background()

	first, err := New(path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Append(ctx, domain.Record{FirstName: "Ann"}))

	second, err := New(path, nil)
	require.NoError(t, err)
	require.NoError(t, second.Append(ctx, domain.Record{FirstName: "Bo"}))

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "First Name", rows[0][0])
	assert.Equal(t, "Bo", rows[2][0])
}

func TestRecordStore_ConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.csv")
	store, err := New(path, nil)
	require.NoError(t, err)

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			record := domain.Record{
				FirstName: fmt.Sprintf("user-%02d", i),
				Notes:     fmt.Sprintf("line one\nline two, \"quoted\" %d", i),
				CreatedAt: "2026-01-01T00:00:00.000Z",
			}
			assert.NoError(t, store.Append(context.Background(), record))
		}(i)
	}
	wg.Wait()

	rows := readRows(t, path)
	require.Len(t, rows, n+1)
	assert.Equal(t, domain.Header(), rows[0])

	seen := make(map[string]struct{}, n)
	for _, row := range rows[1:] {
		require.Len(t, row, len(domain.Columns))
		assert.NotEqual(t, "First Name", row[0])
		seen[row[0]] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestRecordStore_AppendFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.csv")
	store, err := New(path, nil)
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(path, 0o755))

	err = store.Append(context.Background(), domain.Record{FirstName: "Ann"})

	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, store.Location(), storeErr.Location)
}

func TestNew_UnusableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := New(filepath.Join(blocker, "matches.csv"), nil)

	assert.Error(t, err)
}

func TestRecordStore_LocationIsCleaned(t *testing.T) {
	dir := t.TempDir()

	store, err := New(dir+"/tmp/../matches.csv", nil)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(store.Location()))
	assert.Equal(t, filepath.Join(dir, "matches.csv"), store.Location())
}

// faultyFile writes through to a real file but can fail mid-write or on sync.
type faultyFile struct {
	*os.File
	failWrite bool
	failSync  bool
}

func (f *faultyFile) Write(p []byte) (int, error) {
	if f.failWrite {
		n, _ := f.File.Write(p[:len(p)/2])
		return n, errors.New("no space left on device")
	}
	return f.File.Write(p)
}

func (f *faultyFile) Sync() error {
	if f.failSync {
		return errors.New("input/output error")
	}
	return f.File.Sync()
}

func TestRecordStore_RollsBackFailedAppend(t *testing.T) {
	tests := []struct {
		name      string
		failWrite bool
		failSync  bool
	}{
		{name: "short write", failWrite: true},
		{name: "sync failure", failSync: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "matches.csv")
			store, err := New(path, nil)
			require.NoError(t, err)
			ctx := context.Background()
			require.NoError(t, store.Append(ctx, domain.Record{FirstName: "Ann"}))

			before, err := os.Stat(path)
			require.NoError(t, err)

			store.open = func(p string) (appendFile, error) {
				f, err := os.OpenFile(p, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
				if err != nil {
					return nil, err
				}
				return &faultyFile{File: f, failWrite: tt.failWrite, failSync: tt.failSync}, nil
			}

			err = store.Append(ctx, domain.Record{FirstName: "Bo", Notes: "a fairly long note to split"})
			var storeErr *domain.StoreError
			require.ErrorAs(t, err, &storeErr)

			after, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, before.Size(), after.Size())

			store.open = openAppend
			require.NoError(t, store.Append(ctx, domain.Record{FirstName: "Cy"}))

			rows := readRows(t, path)
			require.Len(t, rows, 3)
			assert.Equal(t, "Ann", rows[1][0])
			assert.Equal(t, "Cy", rows[2][0])
		})
	}
}
