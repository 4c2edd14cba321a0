package dbconfig

import (
	_ "github.com/lib/pq"
)

// DBConfig loads dynamic runtime inventory (chains, RPC endpoints) from
// Postgres. Static file configuration remains the default; the database is
// the source of truth for operator-managed endpoint rotation.
type DBConfig struct {
	dbConnStr string
}

// NewDBConfig creates a new DBConfig instance with the provided connection string.
//
// Parameters:
// - connStr: the database connection string.
//
// Returns:
// - *DBConfig: a pointer to the newly created DBConfig instance.
// - error: an error if the creation of the DBConfig instance fails.
func NewDBConfig(connStr string) (*DBConfig, error) {
	if connStr == "" {
		return nil, ErrDatabaseConnect
	}
	return &DBConfig{
		dbConnStr: connStr,
	}, nil
}
