// SPDX-License-Identifier: MPL-2.0

package sqlsupply

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"supplyloader/pkg/datamodel"
)

// maxBindVars bounds the placeholders in one statement. It sits below the
// smallest driver limit (SQLite's 32766).
const maxBindVars = 32_000

var (
	// ErrNoConnection is returned when an operation gets a nil container or
	// an empty connection string.
	ErrNoConnection = errors.New("no connection string")
	// ErrNoCollection is returned when an entity is not bound to a named
	// collection.
	ErrNoCollection = errors.New("entity has no collection")
	// ErrNoEntities is returned by LoadSamples for an empty batch.
	ErrNoEntities = errors.New("no entities to load")
)

type (
	// OpenFunc opens a database handle. It matches sql.Open.
	OpenFunc func(driverName, dataSourceName string) (*sql.DB, error)

	// Option configures a Collector or Loader beyond datamodel.Options.
	Option func(*settings)

	settings struct {
		open OpenFunc
		seed uint64
	}

	store struct {
		dialect Dialect
		open    OpenFunc
		logger  *slog.Logger
	}
)

// WithOpenFunc replaces sql.Open.
func WithOpenFunc(fn OpenFunc) Option {
	return func(s *settings) {
		if fn != nil {
			s.open = fn
		}
	}
}

// WithSeed fixes the seed of the sample value generator.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

func newSettings(opts []Option) settings {
	s := settings{open: sql.Open, seed: uint64(time.Now().UnixNano())}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// connect opens and pings the container's database. Callers close the handle.
func (s *store) connect(ctx context.Context, container *datamodel.DataContainer) (*sql.DB, error) {
	dsn := container.String()
	if dsn == "" {
		return nil, ErrNoConnection
	}
	db, err := s.open(s.dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", s.dialect.Name, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to %s database: %w", s.dialect.Name, err)
	}
	return db, nil
}

func closeDB(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Warn("closing database handle", "error", err)
	}
}

