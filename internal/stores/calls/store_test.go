package calls_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	calls_store "github.com/ethanbaker/calldash/internal/stores/calls"
	"github.com/ethanbaker/calldash/pkg/calls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// storeFactories lists every backend that can run without external services
func storeFactories(t *testing.T) map[string]func() calls.StoreInterface {
	return map[string]func() calls.StoreInterface{
		"memory": func() calls.StoreInterface {
			return calls_store.NewInMemoryStore()
		},
		"file": func() calls.StoreInterface {
			store, err := calls_store.NewFileStore(filepath.Join(t.TempDir(), "calls.json"))
			require.NoError(t, err)
			return store
		},
		"gorm": func() calls.StoreInterface {
			db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "calls.db")), &gorm.Config{
				Logger: logger.Default.LogMode(logger.Silent),
			})
			require.NoError(t, err)

			store, err := calls_store.NewStoreWithDB(db)
			require.NoError(t, err)
			t.Cleanup(func() { store.Close() })
			return store
		},
	}
}

func sampleCall(id string, ts time.Time) *calls.Call {
	return &calls.Call{
		ID:           id,
		UserName:     "Jane Doe",
		PhoneNumber:  "+15551234567",
		Prompt:       "Confirm appointment",
		PromptOrigin: calls.ManualPrompt,
		Status:       calls.StatusInProgress,
		Timestamp:    ts,
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 2, 14, 8, 30, 0, 0, time.UTC)

	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("empty", func(t *testing.T) {
				store := newStore()

				list, err := store.ListAll(ctx)
				require.NoError(t, err)
				assert.Empty(t, list)

				got, err := store.GetByID(ctx, "call-missing")
				require.NoError(t, err)
				assert.Nil(t, got)
			})

			t.Run("round trip", func(t *testing.T) {
				store := newStore()
				want := sampleCall("call-1", base.Add(123*time.Millisecond))
				want.PromptOrigin = calls.GeneratedPrompt

				require.NoError(t, store.Save(ctx, want))

				got, err := store.GetByID(ctx, "call-1")
				require.NoError(t, err)
				assert.Equal(t, want, got)
			})

			t.Run("newest first with stable ties", func(t *testing.T) {
				store := newStore()
				require.NoError(t, store.Save(ctx, sampleCall("oldest", base)))
				require.NoError(t, store.Save(ctx, sampleCall("tie-1", base.Add(time.Hour))))
				require.NoError(t, store.Save(ctx, sampleCall("newest", base.Add(2*time.Hour))))
				require.NoError(t, store.Save(ctx, sampleCall("tie-2", base.Add(time.Hour))))

				list, err := store.ListAll(ctx)
				require.NoError(t, err)

				var ids []string
				for _, c := range list {
					ids = append(ids, c.ID)
				}
				assert.Equal(t, []string{"newest", "tie-1", "tie-2", "oldest"}, ids)
			})

			t.Run("duplicate id rejected", func(t *testing.T) {
				store := newStore()
				require.NoError(t, store.Save(ctx, sampleCall("call-1", base)))

				err := store.Save(ctx, sampleCall("call-1", base.Add(time.Minute)))
				var persistErr *calls.PersistenceError
				assert.ErrorAs(t, err, &persistErr)

				list, err := store.ListAll(ctx)
				require.NoError(t, err)
				assert.Len(t, list, 1)
			})

			t.Run("update status", func(t *testing.T) {
				store := newStore()
				require.NoError(t, store.Save(ctx, sampleCall("call-1", base)))
				require.NoError(t, store.Save(ctx, sampleCall("call-2", base)))

				require.NoError(t, store.UpdateStatus(ctx, "call-1", calls.StatusCompleted))
				require.NoError(t, store.UpdateStatus(ctx, "call-1", calls.StatusCompleted))

				got, err := store.GetByID(ctx, "call-1")
				require.NoError(t, err)
				assert.Equal(t, calls.StatusCompleted, got.Status)

				other, err := store.GetByID(ctx, "call-2")
				require.NoError(t, err)
				assert.Equal(t, calls.StatusInProgress, other.Status)
			})

			t.Run("terminal status is kept", func(t *testing.T) {
				store := newStore()
				require.NoError(t, store.Save(ctx, sampleCall("call-1", base)))
				require.NoError(t, store.UpdateStatus(ctx, "call-1", calls.StatusCompleted))

				var persistErr *calls.PersistenceError
				assert.ErrorAs(t, store.UpdateStatus(ctx, "call-1", calls.StatusInProgress), &persistErr)
				assert.ErrorAs(t, store.UpdateStatus(ctx, "call-1", calls.StatusFailed), &persistErr)
				assert.NoError(t, store.UpdateStatus(ctx, "call-1", calls.StatusCompleted))

				got, err := store.GetByID(ctx, "call-1")
				require.NoError(t, err)
				assert.Equal(t, calls.StatusCompleted, got.Status)
			})

			t.Run("update unknown id is a no-op", func(t *testing.T) {
				store := newStore()
				require.NoError(t, store.Save(ctx, sampleCall("call-1", base)))

				assert.NoError(t, store.UpdateStatus(ctx, "call-missing", calls.StatusFailed))

				list, err := store.ListAll(ctx)
				require.NoError(t, err)
				require.Len(t, list, 1)
				assert.Equal(t, calls.StatusInProgress, list[0].Status)
			})

			t.Run("update rejects unknown status", func(t *testing.T) {
				store := newStore()
				require.NoError(t, store.Save(ctx, sampleCall("call-1", base)))

				err := store.UpdateStatus(ctx, "call-1", "ringing")
				var persistErr *calls.PersistenceError
				assert.ErrorAs(t, err, &persistErr)
			})

			t.Run("returned records are copies", func(t *testing.T) {
				store := newStore()
				require.NoError(t, store.Save(ctx, sampleCall("call-1", base)))

				got, err := store.GetByID(ctx, "call-1")
				require.NoError(t, err)
				got.Status = calls.StatusFailed

				again, err := store.GetByID(ctx, "call-1")
				require.NoError(t, err)
				assert.Equal(t, calls.StatusInProgress, again.Status)
			})
		})
	}
}

func TestFileStoreCorruptData(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		contents string
	}{
		{"malformed json", `[{"id": "call-1",`},
		{"not an array", `{"id": "call-1"}`},
		{"unknown status", `[{"id":"call-1","userName":"A","phoneNumber":"+1","prompt":"p","status":"ringing","timestamp":"2026-01-01T00:00:00Z"}]`},
		{"bad timestamp", `[{"id":"call-1","userName":"A","phoneNumber":"+1","prompt":"p","status":"completed","timestamp":"yesterday"}]`},
		{"missing id", `[{"userName":"A","phoneNumber":"+1","prompt":"p","status":"completed","timestamp":"2026-01-01T00:00:00Z"}]`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "calls.json")
			require.NoError(t, os.WriteFile(path, []byte(test.contents), 0o644))

			store, err := calls_store.NewFileStore(path)
			require.NoError(t, err)

			var persistErr *calls.PersistenceError

			_, err = store.ListAll(ctx)
			assert.ErrorAs(t, err, &persistErr)

			_, err = store.GetByID(ctx, "call-1")
			assert.ErrorAs(t, err, &persistErr)

			err = store.Save(ctx, sampleCall("call-2", time.Now()))
			assert.ErrorAs(t, err, &persistErr)

			err = store.UpdateStatus(ctx, "call-1", calls.StatusCompleted)
			assert.ErrorAs(t, err, &persistErr)

			// Corrupt contents are left untouched for inspection
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, test.contents, string(data))
		})
	}
}

func TestFileStoreLegacyRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "calls.json")
	contents := `[
  {"id":"call-1700000000000","userName":"Sam","phoneNumber":"+15550001111","prompt":"Follow up","status":"in_progress","timestamp":"2025-11-14T22:13:20.000Z","promptGenerationType":"auto"},
  {"id":"call-1700000000001","userName":"Ana","phoneNumber":"+15550002222","prompt":"Survey","status":"completed","timestamp":"2025-11-14T22:13:21.000Z"}
]`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	store, err := calls_store.NewFileStore(path)
	require.NoError(t, err)

	list, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "call-1700000000001", list[0].ID)
	assert.Equal(t, calls.PromptOrigin(""), list[0].PromptOrigin)
	assert.Equal(t, calls.GeneratedPrompt, list[1].PromptOrigin)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "calls.json")
	ts := time.Date(2026, 7, 1, 15, 0, 0, 0, time.UTC)

	first, err := calls_store.NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, sampleCall("call-1", ts)))
	require.NoError(t, first.UpdateStatus(ctx, "call-1", calls.StatusFailed))

	second, err := calls_store.NewFileStore(path)
	require.NoError(t, err)

	got, err := second.GetByID(ctx, "call-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, calls.StatusFailed, got.Status)
	assert.True(t, ts.Equal(got.Timestamp))
}

func TestNewFileStoreEmptyPath(t *testing.T) {
	_, err := calls_store.NewFileStore("")
	assert.Error(t, err)
}
