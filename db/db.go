package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Open connects to the database named by url and runs migrations.
// postgres:// and postgresql:// use pgx; sqlite://, file: and *.db paths use SQLite.
func Open(ctx context.Context, url string) (Store, error) {
	var (
		store Store
		err   error
	)

	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		store, err = NewPostgres(ctx, url)
	case strings.HasPrefix(url, "sqlite://"):
		store, err = NewSQLite(strings.TrimPrefix(url, "sqlite://"))
	case strings.HasPrefix(url, "file:"), strings.HasSuffix(url, ".db"):
		store, err = NewSQLite(url)
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme: %q", url)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("Connected to database", "driver", driverName(store))
	return store, nil
}

func driverName(s Store) string {
	switch s.(type) {
	case *PostgresStore:
		return "postgres"
	case *SQLiteStore:
		return "sqlite"
	default:
		return "unknown"
	}
}
