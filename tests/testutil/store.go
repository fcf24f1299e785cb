package testutil

import (
	"testing"

	"github.com/hnguyen/codeassist/internal/history"
)

// NewTestStore creates an in-memory suggestion history store with all
// migrations applied. It automatically closes the store when the test
// completes.
func NewTestStore(t *testing.T) *history.SQLiteStore {
	t.Helper()

	s, err := history.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
