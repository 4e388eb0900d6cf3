package pg

import "errors"

var (
	ErrParseConfig           = errors.New("pg: failed to parse connection config")
	ErrConnectionFailed      = errors.New("pg: failed to open connection")
	ErrHealthcheckFailed     = errors.New("pg: healthcheck failed")
	ErrMigrationFailed       = errors.New("pg: failed to apply migrations")
	ErrMigrationsPathMissing = errors.New("pg: migrations path not provided")
)
