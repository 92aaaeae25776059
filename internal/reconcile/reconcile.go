// SPDX-License-Identifier: MPL-2.0

package reconcile

import (
	"errors"
	"fmt"

	"supplyloader/pkg/datamodel"
)

var (
	// ErrSchemaMismatch is the sentinel error wrapped by SchemaMismatchError.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrNoEntities is returned when no entities are requested.
	ErrNoEntities = errors.New("no entities requested")
)

// SchemaMismatchError is returned when a requested entity is absent from an
// existing collection. It wraps ErrSchemaMismatch for errors.Is() compatibility.
type SchemaMismatchError struct {
	Collection string
	Entity     string
}

// Error implements the error interface for SchemaMismatchError.
func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("collection %s exists, but data entity %s is missing", e.Collection, e.Entity)
}

// Unwrap returns ErrSchemaMismatch for errors.Is() compatibility.
func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }

// Reconcile returns one descriptor per requested entity, in request order.
//
// If snapshot has no collection named collectionName, a new collection bound
// to container is synthesized together with one entity per spec, typed from
// the spec's hint. Otherwise each spec must name an entity of that collection
// in snapshot; the snapshot's descriptors are returned unchanged and hints
// are ignored. The first unmatched name yields a *SchemaMismatchError and no
// descriptors.
func Reconcile(
	container *datamodel.DataContainer,
	collectionName string,
	requested []datamodel.EntitySpec,
	snapshot datamodel.SchemaSnapshot,
) ([]*datamodel.DataEntity, error) {
	if len(requested) == 0 {
		return nil, ErrNoEntities
	}

	if _, exists := snapshot.FindCollection(collectionName); !exists {
		return synthesize(container, collectionName, requested), nil
	}

	// Validate everything before building the result so a mismatch never
	// leaks a partial batch.
	for _, spec := range requested {
		if _, ok := snapshot.FindEntity(collectionName, spec.Name); !ok {
			return nil, &SchemaMismatchError{Collection: collectionName, Entity: spec.Name}
		}
	}

	entities := make([]*datamodel.DataEntity, 0, len(requested))
	for _, spec := range requested {
		e, _ := snapshot.FindEntity(collectionName, spec.Name)
		entities = append(entities, e)
	}
	return entities, nil
}

// ReconcileEntity is the single-entity form of Reconcile.
func ReconcileEntity(
	container *datamodel.DataContainer,
	collectionName string,
	spec datamodel.EntitySpec,
	snapshot datamodel.SchemaSnapshot,
) (*datamodel.DataEntity, error) {
	entities, err := Reconcile(container, collectionName, []datamodel.EntitySpec{spec}, snapshot)
	if err != nil {
		return nil, err
	}
	return entities[0], nil
}

func synthesize(container *datamodel.DataContainer, collectionName string, requested []datamodel.EntitySpec) []*datamodel.DataEntity {
	collection := datamodel.NewDataCollection(container, collectionName)
	entities := make([]*datamodel.DataEntity, 0, len(requested))
	for _, spec := range requested {
		entities = append(entities, datamodel.NewDataEntity(
			spec.Name, spec.DataType(), spec.TypeLabel(), container, collection,
		))
	}
	return entities
}
