// SPDX-License-Identifier: MPL-2.0

package mongosupply

import (
	"context"
	"fmt"
	"time"

	"supplyloader/internal/fixture"
	"supplyloader/internal/samplegen"
	"supplyloader/pkg/datamodel"
)

// Option configures a Loader beyond datamodel.Options.
type Option func(*Loader)

// WithSeed fixes the seed of the sample value generator.
func WithSeed(seed uint64) Option {
	return func(l *Loader) {
		l.gen = samplegen.New(seed)
	}
}

// Loader creates the fixture collections and inserts fixture and sample
// documents.
type Loader struct {
	store
	batchSize int
	rateLimit float64
	gen       *samplegen.Generator
}

// NewLoader creates a MongoDB loader.
func NewLoader(opts datamodel.Options, extra ...Option) *Loader {
	opts = opts.WithDefaults()
	l := &Loader{
		store:     store{logger: opts.Logger.With("dialect", "mongodb", "role", "loader")},
		batchSize: opts.BatchSize,
		rateLimit: opts.RateLimit,
		gen:       samplegen.New(uint64(time.Now().UnixNano())),
	}
	for _, opt := range extra {
		opt(l)
	}
	return l
}

// InitializeDatabase drops and recreates every fixture collection.
func (l *Loader) InitializeDatabase(ctx context.Context, container *datamodel.DataContainer) error {
	db, release, err := l.connect(ctx, container)
	if err != nil {
		return err
	}
	defer release()

	for _, t := range fixture.UnitTestTables() {
		if err := db.Collection(t.Name).Drop(ctx); err != nil {
			return fmt.Errorf("drop collection %s: %w", t.Name, err)
		}
		if err := db.CreateCollection(ctx, t.Name); err != nil {
			return fmt.Errorf("create collection %s: %w", t.Name, err)
		}
		l.logger.Debug("fixture collection created", "collection", t.Name)
	}
	return nil
}

// LoadUnitTestData inserts the fixture rows as documents.
func (l *Loader) LoadUnitTestData(ctx context.Context, container *datamodel.DataContainer) error {
	db, release, err := l.connect(ctx, container)
	if err != nil {
		return err
	}
	defer release()

	for _, t := range fixture.UnitTestTables() {
		fields := t.ColumnNames()
		docs := make([]any, len(t.Rows))
		for i, row := range t.Rows {
			docs[i] = document(fields, row)
		}
		if _, err := db.Collection(t.Name).InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("load fixture collection %s: %w", t.Name, err)
		}
		l.logger.Debug("fixture documents loaded", "collection", t.Name, "documents", len(docs))
	}
	return nil
}

// LoadSamples inserts count generated documents into the collection shared
// by entities. MongoDB creates the collection on first insert.
func (l *Loader) LoadSamples(ctx context.Context, entities []*datamodel.DataEntity, count int64) error {
	if len(entities) == 0 {
		return ErrNoEntities
	}
	if !datamodel.SameCollection(entities) {
		return datamodel.ErrMixedCollections
	}
	name := entities[0].CollectionName()
	if name == "" {
		return ErrNoCollection
	}
	if count <= 0 {
		return nil
	}

	fields := make([]string, len(entities))
	for i, e := range entities {
		fields[i] = e.Name
	}

	db, release, err := l.connect(ctx, entities[0].Container)
	if err != nil {
		return err
	}
	defer release()

	coll := db.Collection(name)
	var written int64
	return samplegen.Batches(ctx, count, l.batchSize, l.rateLimit, func(n int) error {
		docs := make([]any, n)
		for i := range docs {
			docs[i] = document(fields, l.gen.Row(entities))
		}
		if _, err := coll.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("load samples into %s: %w", name, err)
		}
		written += int64(n)
		l.logger.Debug("sample batch loaded", "collection", name, "documents", n, "total", written)
		return nil
	})
}

