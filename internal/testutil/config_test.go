package testutil

import (
	"errors"
	"net/url"
	"testing"
)

func TestDefaultTestDBConfig(t *testing.T) {
	t.Run("defaults to local test database port 55432", func(t *testing.T) {
		for _, k := range []string{"TEST_DB_HOST", "TEST_DB_PORT", "TEST_DB_USER", "TEST_DB_PASSWORD", "TEST_DB_NAME", "DB_SSL_MODE"} {
			t.Setenv(k, "")
		}

		cfg := DefaultTestDBConfig()
		want := TestDBConfig{Host: "localhost", Port: "55432", User: "app", Password: "passwd", DBName: "authapi_test", SSLMode: "disable"}
		if cfg != want {
			t.Errorf("DefaultTestDBConfig() = %+v, want %+v", cfg, want)
		}
	})

	t.Run("respects TEST_DB_PORT environment variable", func(t *testing.T) {
		t.Setenv("TEST_DB_HOST", "postgres")
		t.Setenv("TEST_DB_PORT", "5432")

		cfg := DefaultTestDBConfig()
		if cfg.Host != "postgres" || cfg.Port != "5432" {
			t.Errorf("expected postgres:5432, got %s:%s", cfg.Host, cfg.Port)
		}
	})
}

func TestTestDBConfigDSN(t *testing.T) {
	cfg := TestDBConfig{Host: "db", Port: "5432", User: "u", Password: "p@ss", DBName: "x", SSLMode: "disable"}

	u, err := url.Parse(cfg.DSN())
	if err != nil {
		t.Fatalf("DSN() not parseable: %v", err)
	}
	if pw, _ := u.User.Password(); pw != "p@ss" {
		t.Errorf("password = %q", pw)
	}
	if u.Host != "db:5432" || u.Path != "/x" || u.Query().Get("sslmode") != "disable" {
		t.Errorf("unexpected DSN %q", cfg.DSN())
	}
}

func TestRunConcurrent(t *testing.T) {
	errBoom := errors.New("boom")
	errs := RunConcurrent(
		func() error { return nil },
		func() error { return errBoom },
	)
	if len(errs) != 2 || errs[0] != nil || !errors.Is(errs[1], errBoom) {
		t.Errorf("RunConcurrent() = %v", errs)
	}
}
