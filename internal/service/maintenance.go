package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/agenda/internal/database"
)

// Wiper is a store that can drop every contact at once.
type Wiper interface {
	DeleteAll(ctx context.Context) error
}

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	// DB is set for the sqlite driver; Store is used otherwise.
	DB    *sql.DB
	Store Wiper
}

// Reset wipes all contacts. It keeps the schema intact.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		if s.Store == nil {
			return fmt.Errorf("maintenance: store not configured")
		}
		return s.Store.DeleteAll(ctx)
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM contacts"); err != nil {
			return fmt.Errorf("reset contacts: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
