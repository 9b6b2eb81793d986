package repository

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		t.Fatalf("Glob() unexpected error: %v", err)
	}

	want := []string{
		"migrations/000001_create_users.down.sql",
		"migrations/000001_create_users.up.sql",
		"migrations/000002_create_watchlist_entries.down.sql",
		"migrations/000002_create_watchlist_entries.up.sql",
	}
	if len(names) != len(want) {
		t.Fatalf("embedded migrations = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("migration[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestUsersMigrationUsesInsensitiveCollation(t *testing.T) {
	data, err := fs.ReadFile(migrationsFS, "migrations/000001_create_users.up.sql")
	if err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}

	sql := string(data)
	for _, want := range []string{
		"utf8mb4_0900_ai_ci",
		"UNIQUE KEY uq_users_name",
		"UNIQUE KEY uq_users_email",
		"ascii_bin",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("users migration missing %q", want)
		}
	}
}
