// SPDX-License-Identifier: MPL-2.0

package datamodel

import (
	"context"
	"errors"
	"log/slog"
)

// ErrMixedCollections is returned by loaders when a sample batch spans more
// than one collection.
var ErrMixedCollections = errors.New("sample batch spans more than one collection")

type (
	// SchemaIntrospector reads the live schema of a data store.
	SchemaIntrospector interface {
		GetSchema(ctx context.Context, container *DataContainer) (SchemaSnapshot, error)
	}

	// SampleReader reads existing values of an entity.
	SampleReader interface {
		CollectSample(ctx context.Context, entity *DataEntity, maxSamples int64) ([]string, error)
	}

	// Collector is the schema-introspecting half of a plugin pair.
	Collector interface {
		SchemaIntrospector
		SampleReader
	}

	// Loader is the data-seeding half of a plugin pair. LoadSamples
	// receives entities that all share one collection.
	Loader interface {
		InitializeDatabase(ctx context.Context, container *DataContainer) error
		LoadUnitTestData(ctx context.Context, container *DataContainer) error
		LoadSamples(ctx context.Context, entities []*DataEntity, count int64) error
	}

	// Options are handed to plugin factories that accept them.
	Options struct {
		// BatchSize is the number of rows written per statement.
		BatchSize int
		// RateLimit caps written rows per second; zero means unlimited.
		RateLimit float64
		// Logger receives plugin diagnostics. Nil means slog.Default().
		Logger *slog.Logger
	}
)

// DefaultBatchSize is used when Options.BatchSize is not positive.
const DefaultBatchSize = 500

// WithDefaults returns a copy of o with zero fields filled in.
func (o Options) WithDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.RateLimit < 0 {
		o.RateLimit = 0
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
