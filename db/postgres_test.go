package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	pg := store.(*PostgresStore)
	_, err = pg.pool.Exec(ctx, "DELETE FROM desserts")
	require.NoError(t, err)
	t.Cleanup(func() {
		pg.pool.Exec(context.Background(), "DELETE FROM desserts")
	})

	runStoreSuite(t, store)
}
