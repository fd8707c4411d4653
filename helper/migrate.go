package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"todoapp/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

// Action names a migration direction accepted by the migrate command.
type Action string

const (
	ActionUp     Action = "up"
	ActionStepUp Action = "step-up"
	ActionDown   Action = "down"
	ActionDrop   Action = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action")

type step struct {
	run  func(*migrate.Migrate) error
	done string
}

var steps = map[Action]step{
	ActionUp:     {run: (*migrate.Migrate).Up, done: "applied"},
	ActionStepUp: {run: func(m *migrate.Migrate) error { return m.Steps(1) }, done: "applied one step"},
	ActionDown:   {run: func(m *migrate.Migrate) error { return m.Steps(-1) }, done: "rolled back one step"},
	ActionDrop:   {run: (*migrate.Migrate).Down, done: "rolled back"},
}

func newMigrate(config *config.Config) (*migrate.Migrate, error) {
	pg := config.DB.Postgres
	database := pg.URL(pg.Write, url.Values{"x-migrations-table": {pg.MigrationTable}})

	mig, err := migrate.New("file://"+pg.MigrationPath, database)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Run applies action to the write database. Having nothing to migrate is not
// an error.
func Run(config *config.Config, action Action) error {
	step, ok := steps[action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	mig, err := newMigrate(config)
	if err != nil {
		return err
	}

	defer func() {
		if err := errors.Join(mig.Close()); err != nil {
			log.Warn().Err(err).Msg("Failed to close migrate instance")
		}
	}()

	log.Info().Str("action", string(action)).Msg("Running database migrations")

	if err := step.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", action, err)
	}

	log.Info().Str("action", string(action)).Msg("Database migrations " + step.done)

	return nil
}

func Up(config *config.Config) error {
	return Run(config, ActionUp)
}
