package options

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"
)

const (
	DriverPostgres = "postgres"
	// DriverSQLite3 is the cgo driver (mattn/go-sqlite3).
	DriverSQLite3 = "sqlite3"
	// DriverSQLite is the pure Go driver (modernc.org/sqlite).
	DriverSQLite = "sqlite"
)

// DatabaseOptions configures the relational store.
type DatabaseOptions struct {
	Driver          string        `json:"driver"            mapstructure:"driver"`
	Host            string        `json:"host"              mapstructure:"host"`
	Port            int           `json:"port"              mapstructure:"port"`
	Username        string        `json:"username"          mapstructure:"username"`
	Password        string        `json:"-"                 mapstructure:"password"`
	Database        string        `json:"database"          mapstructure:"database"`
	SSLMode         string        `json:"ssl-mode"          mapstructure:"ssl-mode"`
	Path            string        `json:"path"              mapstructure:"path"`
	PoolSize        int           `json:"pool-size"         mapstructure:"pool-size"`
	MaxOverflow     int           `json:"max-overflow"      mapstructure:"max-overflow"`
	ConnMaxLifetime time.Duration `json:"conn-max-lifetime" mapstructure:"conn-max-lifetime"`
}

// NewDatabaseOptions reads the POSTGRES_* and DB_* environment for defaults.
func NewDatabaseOptions() *DatabaseOptions {
	return &DatabaseOptions{
		Driver:          DriverPostgres,
		Host:            envOr("POSTGRES_HOST", "localhost"),
		Port:            envIntOr("POSTGRES_PORT", 5432),
		Username:        envOr("POSTGRES_USER", "postgres"),
		Password:        envOr("POSTGRES_PASSWORD", "postgres"),
		Database:        envOr("POSTGRES_DB", "pokedex"),
		SSLMode:         "disable",
		Path:            "data/pokedex.db",
		PoolSize:        envIntOr("DB_POOL_SIZE", 20),
		MaxOverflow:     envIntOr("DB_MAX_OVERFLOW", 10),
		ConnMaxLifetime: 30 * time.Minute,
	}
}

func (o *DatabaseOptions) Validate() []error {
	var errs []error
	switch o.Driver {
	case DriverPostgres:
		if o.Host == "" || o.Database == "" {
			errs = append(errs, fmt.Errorf("database host and name are required for driver %q", o.Driver))
		}
	case DriverSQLite3, DriverSQLite:
		if o.Path == "" {
			errs = append(errs, fmt.Errorf("database path is required for driver %q", o.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", o.Driver))
	}
	if o.PoolSize <= 0 {
		errs = append(errs, fmt.Errorf("database pool-size must be positive, got %d", o.PoolSize))
	}
	if o.MaxOverflow < 0 {
		errs = append(errs, fmt.Errorf("database max-overflow must not be negative, got %d", o.MaxOverflow))
	}
	return errs
}

// DSN returns the data source name for the configured driver.
func (o *DatabaseOptions) DSN() string {
	switch o.Driver {
	case DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(o.Username, o.Password),
			Host:     fmt.Sprintf("%s:%d", o.Host, o.Port),
			Path:     o.Database,
			RawQuery: "sslmode=" + o.SSLMode,
		}
		return u.String()
	case DriverSQLite3:
		return "file:" + o.Path + "?_foreign_keys=on&_busy_timeout=5000"
	default:
		return "file:" + o.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
}

// MaxOpenConns is the pool size plus the allowed overflow.
func (o *DatabaseOptions) MaxOpenConns() int {
	return o.PoolSize + o.MaxOverflow
}

func (o *DatabaseOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Driver, "database.driver", o.Driver, "Database driver: postgres, sqlite3 (cgo) or sqlite (pure Go).")
	fs.StringVar(&o.Host, "database.host", o.Host, "PostgreSQL host.")
	fs.IntVar(&o.Port, "database.port", o.Port, "PostgreSQL port.")
	fs.StringVar(&o.Username, "database.username", o.Username, "PostgreSQL user.")
	fs.StringVar(&o.Password, "database.password", o.Password, "PostgreSQL password.")
	fs.StringVar(&o.Database, "database.database", o.Database, "PostgreSQL database name.")
	fs.StringVar(&o.SSLMode, "database.ssl-mode", o.SSLMode, "PostgreSQL sslmode.")
	fs.StringVar(&o.Path, "database.path", o.Path, "SQLite database file.")
	fs.IntVar(&o.PoolSize, "database.pool-size", o.PoolSize, "Idle connections kept in the pool.")
	fs.IntVar(&o.MaxOverflow, "database.max-overflow", o.MaxOverflow, "Connections allowed beyond pool-size.")
	fs.DurationVar(&o.ConnMaxLifetime, "database.conn-max-lifetime", o.ConnMaxLifetime, "Maximum lifetime of a pooled connection.")
}
