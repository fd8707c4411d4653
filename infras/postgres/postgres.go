package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"time"
	"todoapp/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

var (
	ErrConnectionFailed = errors.New("could not connect to database")
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New opens the read and write pools. The returned cleanup closes both.
func New(config *config.Config) (*Connection, func(), error) {
	write, err := CreatePostgresWriteConn(*config)
	if err != nil {
		return nil, nil, err
	}

	read, err := CreatePostgresReadConn(*config)
	if err != nil {
		_ = write.Close()

		return nil, nil, err
	}

	conn := &Connection{
		Read:  read,
		Write: write,
	}

	return conn, conn.Close, nil
}

func (c *Connection) Close() {
	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Str("name", name).Msg("Failed closing database connection")
		}
	}
}

// Ping checks both pools.
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("write database unreachable: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("read database unreachable: %w", err)
	}

	return nil
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) (*sqlx.DB, error) {
	pg := config.DB.Postgres

	return CreatePostgresConnection("write", pg.URL(pg.Write, nil), pg.MaxRetry, pg.RetryWaitTime)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) (*sqlx.DB, error) {
	pg := config.DB.Postgres

	return CreatePostgresConnection("read", pg.URL(pg.Read, nil), pg.MaxRetry, pg.RetryWaitTime)
}

// CreatePostgresConnection connects with retries, waiting waitTime seconds between attempts.
func CreatePostgresConnection(name, descriptor string, maxRetry, waitTime int) (*sqlx.DB, error) {
	var lastErr error

	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil, fmt.Errorf("%w (%s): %w", ErrConnectionFailed, name, lastErr)
}
