package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/agenda/internal/database"
	"github.com/jask/agenda/internal/database/repository"
)

func TestMaintenanceResetSQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewContactRepo(db)
	for _, name := range []string{"Ana", "Bo"} {
		_, err := repo.Create(ctx, repository.Contact{Name: name, Phone: "1", Email: name + "@x.com"})
		require.NoError(t, err)
	}

	m := &MaintenanceService{DB: db}
	require.NoError(t, m.Reset(ctx))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestMaintenanceResetMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := repository.NewMemoryContactRepo(repository.Contact{Name: "Ana", Phone: "1", Email: "a@x.com"})
	m := &MaintenanceService{Store: store}
	require.NoError(t, m.Reset(ctx))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	require.Error(t, (&MaintenanceService{}).Reset(ctx))
}
