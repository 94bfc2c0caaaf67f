package database

import (
	"context"
	"embed"
	"io/fs"

	"github.com/deppfellow/hbnb-api/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// VersionTable records the applied schema version.
const VersionTable = "hbnb_schema_version"

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the HBnB schema up to the latest embedded migration. It is
// a no-op on an up-to-date database.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, DSN(cfg.Database))
	if err != nil {
		return errors.Wrap(err, "connecting for migrations")
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, VersionTable)
	if err != nil {
		return errors.Wrap(err, "constructing migrator")
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "opening embedded migrations")
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return errors.Wrap(err, "loading migrations")
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return errors.Wrap(err, "reading schema version")
	}
	to := int32(len(m.Migrations))

	log := logger.With().
		Str("table", VersionTable).
		Int32("from", from).
		Int32("to", to).
		Logger()

	if from == to {
		log.Info().Msg("database schema up to date")
		return nil
	}

	if err := m.Migrate(ctx); err != nil {
		return errors.Wrapf(err, "migrating schema from version %d", from)
	}

	log.Info().Msg("migrated database schema")
	return nil
}
