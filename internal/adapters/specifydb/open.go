// Package specifydb implements ports.TaxonStore on the taxon table of a
// Specify database over database/sql.
package specifydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "github.com/mattn/go-sqlite3"

	"specifytools/internal/application"
	"specifytools/internal/config"
)

// database/sql driver names per config driver
var driverNames = map[string]string{
	config.DriverMySQL:    "mysql",
	config.DriverPostgres: "pgx",
	config.DriverSQLite:   "sqlite3",
}

const (
	defaultMySQLPort    = 3306
	defaultPostgresPort = 5432
)

// MySQL server error numbers
const (
	mysqlAccessDenied   = 1045
	mysqlDBAccessDenied = 1044
	mysqlUnknownDB      = 1049
)

// PostgreSQL SQLSTATE codes
const (
	pgInvalidPassword      = "28P01"
	pgInvalidAuthorization = "28000"
	pgInvalidCatalog       = "3D000"
)

var sqlOpen = sql.Open

// Open connects to the database described by cfg and pings it.
// Connection failures come back as *application.ConnectionError.
func Open(ctx context.Context, cfg *config.Database, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &application.ValidationError{Field: "database", Message: err.Error()}
	}
	driver, ok := driverNames[cfg.Driver]
	if !ok {
		return nil, &application.ValidationError{Field: "driver", Message: fmt.Sprintf("unsupported driver %q", cfg.Driver)}
	}

	if cfg.Driver == config.DriverSQLite && cfg.DSN == "" {
		if _, err := os.Stat(cfg.Database); err != nil {
			return nil, &application.ConnectionError{Database: cfg.Database, Reason: application.ReasonMissingDatabase, Err: err}
		}
	}

	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, classify(cfg.Database, err)
	}
	// One connection for the whole run
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, classify(cfg.Database, err)
	}

	s := &Store{
		db:       db,
		driver:   cfg.Driver,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DSN builds the driver specific connection string. cfg.DSN wins when set.
func DSN(cfg *config.Database) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}

	switch cfg.Driver {
	case config.DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = hostPort(cfg.Host, cfg.Port, defaultMySQLPort)
		mc.DBName = cfg.Database
		return mc.FormatDSN(), nil
	case config.DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			Host:     hostPort(cfg.Host, cfg.Port, defaultPostgresPort),
			Path:     "/" + cfg.Database,
			RawQuery: "sslmode=disable",
		}
		if cfg.User != "" {
			u.User = url.UserPassword(cfg.User, cfg.Password)
		}
		return u.String(), nil
	case config.DriverSQLite:
		return "file:" + cfg.Database + "?_busy_timeout=5000", nil
	}
	return "", fmt.Errorf("unsupported driver %q", cfg.Driver)
}

func hostPort(host string, port, fallback int) string {
	if host == "" {
		host = config.DefaultHost
	}
	if port == 0 {
		port = fallback
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// classify maps driver errors onto connection failure reasons
func classify(database string, err error) *application.ConnectionError {
	reason := application.ReasonUnreachable

	var myErr *mysql.MySQLError
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &myErr):
		switch myErr.Number {
		case mysqlAccessDenied, mysqlDBAccessDenied:
			reason = application.ReasonAuth
		case mysqlUnknownDB:
			reason = application.ReasonMissingDatabase
		}
	case errors.As(err, &pgErr):
		switch pgErr.Code {
		case pgInvalidPassword, pgInvalidAuthorization:
			reason = application.ReasonAuth
		case pgInvalidCatalog:
			reason = application.ReasonMissingDatabase
		}
	}

	return &application.ConnectionError{Database: database, Reason: reason, Err: err}
}
