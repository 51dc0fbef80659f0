package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRegistrationsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_events_and_registrations.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no events migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS event_registrations",
		"REFERENCES events(id) ON DELETE CASCADE",
		"REFERENCES users(id) ON DELETE CASCADE",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_event_registrations_event_user",
		"CHECK (capacity IS NULL OR capacity >= 0)",
		"DROP TABLE IF EXISTS event_registrations",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
