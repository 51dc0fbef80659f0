package migrate

import (
	"context"
	"fmt"

	"github.com/blu-networking/blu-backend/pkg/config"
	"github.com/blu-networking/blu-backend/pkg/db"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/logger"
)

// MaybeRunDev executes migrations automatically when the app is running in dev mode and
// the feature flag is enabled. Postgres goes through goose; sqlite databases use the
// gorm schema since the SQL migrations rely on Postgres types.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	meta := map[string]any{"env": cfg.App.Env, "dir": DefaultDir}
	ctx = logg.WithFields(ctx, meta)

	if cfg.DB.IsSQLite() {
		logg.Info(ctx, "running gorm auto-migration (sqlite dev database)")
		return AutoMigrateSQLite(client)
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	logg.Info(ctx, "running Goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}

// AutoMigrateSQLite builds the full schema with gorm. Only intended for sqlite
// dev/test databases.
func AutoMigrateSQLite(client *db.Client) error {
	return client.DB().AutoMigrate(
		&models.Chapter{},
		&models.User{},
		&models.Event{},
		&models.EventRegistration{},
		&models.Lead{},
		&models.UserGoal{},
		&models.MemberSpotlight{},
		&models.MemberMessage{},
		&models.BoardMeetingMinutes{},
	)
}
