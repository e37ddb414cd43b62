package store

import (
	"testing"

	"voicebot-server/internal/observability"
)

// SetupTestDB creates a Store backed by an in-memory SQLite database.
func SetupTestDB(t *testing.T) Store {
	t.Helper()

	logger := observability.NewLogger()
	s, err := New(":memory:", logger)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}
