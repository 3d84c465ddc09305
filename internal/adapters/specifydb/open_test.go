package specifydb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specifytools/internal/application"
	"specifytools/internal/config"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Database
		want string
	}{
		{
			name: "mysql defaults port",
			cfg:  config.Database{Driver: config.DriverMySQL, Database: "specify", User: "root", Password: "pw", Host: "db.local"},
			want: "root:pw@tcp(db.local:3306)/specify",
		},
		{
			name: "mysql explicit port",
			cfg:  config.Database{Driver: config.DriverMySQL, Database: "specify", User: "root", Password: "pw", Host: "127.0.0.1", Port: 3307},
			want: "root:pw@tcp(127.0.0.1:3307)/specify",
		},
		{
			name: "postgres escapes password",
			cfg:  config.Database{Driver: config.DriverPostgres, Database: "specify", User: "sp", Password: "p@ss", Host: "pg"},
			want: "postgres://sp:p%40ss@pg:5432/specify?sslmode=disable",
		},
		{
			name: "sqlite",
			cfg:  config.Database{Driver: config.DriverSQLite, Database: "/tmp/specify.db"},
			want: "file:/tmp/specify.db?_busy_timeout=5000",
		},
		{
			name: "explicit dsn wins",
			cfg:  config.Database{Driver: config.DriverMySQL, DSN: "u:p@unix(/run/mysqld.sock)/specify"},
			want: "u:p@unix(/run/mysqld.sock)/specify",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DSN(&tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want application.ConnectionReason
	}{
		{"mysql access denied", &mysql.MySQLError{Number: 1045, Message: "Access denied"}, application.ReasonAuth},
		{"mysql unknown database", &mysql.MySQLError{Number: 1049, Message: "Unknown database"}, application.ReasonMissingDatabase},
		{"postgres bad password", &pgconn.PgError{Code: "28P01"}, application.ReasonAuth},
		{"postgres missing database", &pgconn.PgError{Code: "3D000"}, application.ReasonMissingDatabase},
		{"network", errors.New("dial tcp: connection refused"), application.ReasonUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify("specify", tt.err)
			assert.Equal(t, tt.want, err.Reason)
			assert.ErrorIs(t, err, application.ErrConnection)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestClassify_Messages(t *testing.T) {
	auth := classify("specify", &mysql.MySQLError{Number: 1045})
	missing := classify("specify", &mysql.MySQLError{Number: 1049})

	assert.Equal(t, "Invalid username or password", auth.Error())
	assert.Equal(t, "Database specify does not exist", missing.Error())
}

func TestOpen_SQLiteMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	_, err := Open(context.Background(), &config.Database{Driver: config.DriverSQLite, Database: path})

	var connErr *application.ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, application.ReasonMissingDatabase, connErr.Reason)
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Database{Driver: "oracle", Database: "x"})
	assert.ErrorIs(t, err, application.ErrInvalidOperation)
}
