package config

import (
	"fmt"
	"maps"
	"net"
	"net/url"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const envFile = ".env"

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"10"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"todoapp"`
		Timezone string `envconfig:"TIMEZONE" default:"UTC"`
		CORS     struct {
			Enable           bool     `envconfig:"ENABLE"`
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS" default:"Accept,Content-Type,X-Request-ID"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS" default:"300"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"100"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
		Swagger bool `envconfig:"SWAGGER"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST" default:"localhost"`
				Port     string `envconfig:"PORT" default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"600"`
	} `envconfig:"CACHE"`

	DB struct {
		Postgres Postgres `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable   bool     `envconfig:"ENABLE"`
		Brokers  []string `envconfig:"BROKERS"`
		Username string   `envconfig:"USERNAME"`
		Password string   `envconfig:"PASSWORD"`
		Topic    string   `envconfig:"TOPIC"           default:"todoapp.events"`
		Timeout  int      `envconfig:"TIMEOUT_SECONDS" default:"5"`
	} `envconfig:"KAFKA"`

	Client struct {
		BaseURL         string `envconfig:"BASE_URL"        default:"http://localhost:8080"`
		TimeoutSeconds  int    `envconfig:"TIMEOUT_SECONDS" default:"10"`
		PreferencesFile string `envconfig:"PREFERENCES_FILE"`
		LogFile         string `envconfig:"LOG_FILE"`
	} `envconfig:"CLIENT"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

// Postgres holds the pool settings shared by the read and write nodes.
type Postgres struct {
	MaxRetry       int    `envconfig:"MAX_RETRY"       default:"3"`
	RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME" default:"2"`
	MigrationTable string `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
	MigrationPath  string `envconfig:"MIGRATION_PATH"  default:"migrations/postgres"`
	AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
	// Prefix is prepended to both database names.
	Prefix string       `envconfig:"PREFIX"`
	Read   PostgresNode `envconfig:"READ"`
	Write  PostgresNode `envconfig:"WRITE"`
}

type PostgresNode struct {
	Host     string `envconfig:"HOST"     default:"localhost"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"     default:"todoapp"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

// URL builds a postgres connection URL for node. Credentials are escaped and
// extra is merged into the query string.
func (p Postgres) URL(node PostgresNode, extra url.Values) string {
	query := url.Values{}

	sslMode := node.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	query.Set("sslmode", sslMode)

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	maps.Copy(query, extra)

	descriptor := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     p.Prefix + node.Name,
		RawQuery: query.Encode(),
	}

	return descriptor.String()
}

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Init loads the configuration once. A missing .env file is not an error,
// the process environment is read either way.
func Init() error {
	once.Do(func() {
		loadErr = load(&conf)
	})

	return loadErr
}

func load(into *Config) error {
	if err := godotenv.Load(envFile); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded, reading process environment only")
	} else {
		log.Info().Msg("Loaded variables from .env file into environment")
	}

	if err := envconfig.Process("", into); err != nil {
		return fmt.Errorf("failed to process environment variables: %w", err)
	}

	log.Info().Msg("Service configuration initialized successfully")

	return nil
}

func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	return &conf
}
