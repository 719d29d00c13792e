package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/houseedge?sslmode=disable")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.SessionTTLHours != 24 {
		t.Fatalf("SessionTTLHours = %d, want 24", cfg.SessionTTLHours)
	}
	if cfg.StartingBalanceCents != 0 {
		t.Fatalf("StartingBalanceCents = %d, want 0", cfg.StartingBalanceCents)
	}
}

func TestLoadServerRequiresPostgresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")

	_, err := LoadServer()
	if err == nil {
		t.Fatal("LoadServer() expected error, got nil")
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/houseedge?sslmode=disable")
	t.Setenv("SESSION_TTL_HOURS", "48")
	t.Setenv("STARTING_BALANCE_CENTS", "100000")
	t.Setenv("OWNER_USERNAME", "house")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.SessionTTLHours != 48 {
		t.Fatalf("SessionTTLHours = %d, want 48", cfg.SessionTTLHours)
	}
	if cfg.StartingBalanceCents != 100000 {
		t.Fatalf("StartingBalanceCents = %d, want 100000", cfg.StartingBalanceCents)
	}
	if cfg.OwnerUsername != "house" {
		t.Fatalf("OwnerUsername = %q, want house", cfg.OwnerUsername)
	}
}
