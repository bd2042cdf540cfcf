package testfixtures

import (
	"context"
	"testing"

	"github.com/example/room-booking/internal/persistence/sqlite"
)

// NewSQLiteHarness opens a migrated in-memory SQLite store that is closed when
// the test finishes.
func NewSQLiteHarness(tb testing.TB) *sqlite.Store {
	tb.Helper()

	store, err := sqlite.Open(context.Background(), sqlite.InMemoryConfig(), nil)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}
	tb.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
