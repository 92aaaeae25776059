// SPDX-License-Identifier: MPL-2.0

package datamodel

type (
	// DataContainer is a connection descriptor. Its identity is the
	// connection string; the harness assumes no further structure.
	DataContainer struct {
		ConnectionString string
	}

	// DataCollection is a named grouping of entities within a container
	// (a table, a Mongo collection, an index).
	DataCollection struct {
		Container *DataContainer
		Name      string
	}

	// DataEntity is a named attribute of exactly one collection.
	DataEntity struct {
		Name string
		// DataType is the declared type.
		DataType DataType
		// DbDataType is the raw type label: the store's native type for
		// introspected entities, or the original hint for synthesized ones.
		DbDataType string
		Container  *DataContainer
		Collection *DataCollection
	}

	// SchemaSnapshot is the (collections, entities) pair returned by a
	// collector's introspection call. Consumers must not mutate it.
	SchemaSnapshot struct {
		Collections []*DataCollection
		Entities    []*DataEntity
	}
)

// NewDataContainer returns a container for the given connection string.
func NewDataContainer(connectionString string) *DataContainer {
	return &DataContainer{ConnectionString: connectionString}
}

// NewDataCollection returns a collection bound to container.
func NewDataCollection(container *DataContainer, name string) *DataCollection {
	return &DataCollection{Container: container, Name: name}
}

// NewDataEntity returns an entity bound to collection and container.
func NewDataEntity(name string, dataType DataType, dbDataType string, container *DataContainer, collection *DataCollection) *DataEntity {
	return &DataEntity{
		Name:       name,
		DataType:   dataType,
		DbDataType: dbDataType,
		Container:  container,
		Collection: collection,
	}
}

// String returns the connection string.
func (c *DataContainer) String() string {
	if c == nil {
		return ""
	}
	return c.ConnectionString
}

// CollectionName returns the name of the owning collection, or "" when the
// entity is detached.
func (e *DataEntity) CollectionName() string {
	if e == nil || e.Collection == nil {
		return ""
	}
	return e.Collection.Name
}

// FindCollection returns the first collection named name.
func (s SchemaSnapshot) FindCollection(name string) (*DataCollection, bool) {
	for _, c := range s.Collections {
		if c != nil && c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// FindEntity returns the first entity whose collection is named collection
// and whose own name is name.
func (s SchemaSnapshot) FindEntity(collection, name string) (*DataEntity, bool) {
	for _, e := range s.Entities {
		if e != nil && e.Name == name && e.CollectionName() == collection {
			return e, true
		}
	}
	return nil, false
}

// SameCollection reports whether every entity in the batch shares one
// collection. An empty batch is trivially consistent.
func SameCollection(entities []*DataEntity) bool {
	if len(entities) == 0 {
		return true
	}
	first := entities[0].CollectionName()
	for _, e := range entities[1:] {
		if e.CollectionName() != first {
			return false
		}
	}
	return true
}
