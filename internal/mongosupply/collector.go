// SPDX-License-Identifier: MPL-2.0

package mongosupply

import (
	"context"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"supplyloader/pkg/datamodel"
)

// DefaultSchemaSampleSize is the number of documents read per collection to
// infer its fields.
const DefaultSchemaSampleSize = 100

// Collector infers collection fields from sampled documents.
type Collector struct {
	store
	sampleSize int64
}

// NewCollector creates a MongoDB collector.
func NewCollector(opts datamodel.Options) *Collector {
	opts = opts.WithDefaults()
	return &Collector{
		store:      store{logger: opts.Logger.With("dialect", "mongodb", "role", "collector")},
		sampleSize: DefaultSchemaSampleSize,
	}
}

// GetSchema lists collections in name order and reports the union of
// top-level fields found in the first sampled documents of each.
func (c *Collector) GetSchema(ctx context.Context, container *datamodel.DataContainer) (datamodel.SchemaSnapshot, error) {
	db, release, err := c.connect(ctx, container)
	if err != nil {
		return datamodel.SchemaSnapshot{}, err
	}
	defer release()

	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return datamodel.SchemaSnapshot{}, fmt.Errorf("list collections: %w", err)
	}
	slices.Sort(names)

	snap := datamodel.SchemaSnapshot{}
	for _, name := range names {
		cursor, err := db.Collection(name).Find(ctx, bson.D{}, options.Find().SetLimit(c.sampleSize))
		if err != nil {
			return datamodel.SchemaSnapshot{}, fmt.Errorf("sample collection %s: %w", name, err)
		}
		fields := newFieldSet()
		for cursor.Next(ctx) {
			var doc bson.D
			if err := cursor.Decode(&doc); err != nil {
				_ = cursor.Close(ctx)
				return datamodel.SchemaSnapshot{}, fmt.Errorf("decode document of %s: %w", name, err)
			}
			fields.add(doc)
		}
		err = cursor.Err()
		_ = cursor.Close(ctx)
		if err != nil {
			return datamodel.SchemaSnapshot{}, fmt.Errorf("read collection %s: %w", name, err)
		}

		coll := datamodel.NewDataCollection(container, name)
		snap.Collections = append(snap.Collections, coll)
		for _, field := range fields.names {
			native := fields.types[field]
			snap.Entities = append(snap.Entities,
				datamodel.NewDataEntity(field, NativeDataType(native), native, container, coll))
		}
	}
	c.logger.Debug("schema introspected", "collections", len(snap.Collections), "entities", len(snap.Entities))
	return snap, nil
}

// CollectSample reads up to maxSamples non-null values of the entity's field.
func (c *Collector) CollectSample(ctx context.Context, entity *datamodel.DataEntity, maxSamples int64) ([]string, error) {
	if maxSamples <= 0 {
		return nil, nil
	}
	name := entity.CollectionName()
	if name == "" {
		return nil, fmt.Errorf("collect sample of %q: %w", entity.Name, ErrNoCollection)
	}
	db, release, err := c.connect(ctx, entity.Container)
	if err != nil {
		return nil, err
	}
	defer release()

	filter := bson.D{{Key: entity.Name, Value: bson.D{{Key: "$ne", Value: nil}}}}
	projection := bson.D{{Key: entity.Name, Value: 1}}
	if entity.Name != "_id" {
		projection = append(projection, bson.E{Key: "_id", Value: 0})
	}
	cursor, err := db.Collection(name).Find(ctx, filter,
		options.Find().SetLimit(maxSamples).SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("collect sample of %s.%s: %w", name, entity.Name, err)
	}
	defer cursor.Close(ctx)

	var samples []string
	for cursor.Next(ctx) {
		var doc bson.D
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode sample of %s.%s: %w", name, entity.Name, err)
		}
		for _, e := range doc {
			if e.Key == entity.Name {
				samples = append(samples, formatValue(e.Value))
			}
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("read samples of %s.%s: %w", name, entity.Name, err)
	}
	return samples, nil
}
