// SPDX-License-Identifier: MPL-2.0

// Package fixture defines the unit-test data set built-in loaders create with
// -init and fill with -xunit. The definition is dialect neutral; each loader
// maps column types to its own storage.
package fixture

import (
	"time"

	"supplyloader/pkg/datamodel"
)

type (
	// Column is a named, typed fixture column.
	Column struct {
		Name string
		Type datamodel.DataType
	}

	// Table is a fixture collection with its rows. Row values are string,
	// int64, bool, float64 or time.Time, matching the column types.
	Table struct {
		Name    string
		Columns []Column
		Rows    [][]any
	}
)

// ColumnNames returns the column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Entities describes the table as data entities of container.
func (t Table) Entities(container *datamodel.DataContainer) []*datamodel.DataEntity {
	collection := datamodel.NewDataCollection(container, t.Name)
	entities := make([]*datamodel.DataEntity, len(t.Columns))
	for i, c := range t.Columns {
		entities[i] = datamodel.NewDataEntity(c.Name, c.Type, c.Type.String(), container, collection)
	}
	return entities
}

// UnitTestTables returns a fresh copy of the fixture data set. Every
// DataType except Unknown appears in at least one column.
func UnitTestTables() []Table {
	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 9, 30, 0, 0, time.UTC) }

	return []Table{
		{
			Name: "test_field_types",
			Columns: []Column{
				{Name: "id", Type: datamodel.Int},
				{Name: "name", Type: datamodel.String},
				{Name: "active", Type: datamodel.Boolean},
				{Name: "score", Type: datamodel.Double},
				{Name: "created", Type: datamodel.DateTime},
			},
			Rows: [][]any{
				{int64(1), "alpha", true, 12.5, day(time.January, 15)},
				{int64(2), "beta", false, 0.25, day(time.February, 29)},
				{int64(3), "gamma", true, -3.75, day(time.March, 31)},
			},
		},
		{
			Name: "test_emails",
			Columns: []Column{
				{Name: "id", Type: datamodel.Int},
				{Name: "email", Type: datamodel.String},
			},
			Rows: [][]any{
				{int64(1), "alice@example.com"},
				{int64(2), "bob@example.org"},
				{int64(3), "carol@example.net"},
				{int64(4), "dave@example.com"},
			},
		},
		{
			Name: "test_nulls",
			Columns: []Column{
				{Name: "id", Type: datamodel.Int},
				{Name: "maybe_text", Type: datamodel.String},
				{Name: "maybe_number", Type: datamodel.Int},
			},
			Rows: [][]any{
				{int64(1), "present", int64(10)},
				{int64(2), nil, int64(20)},
				{int64(3), "present", nil},
			},
		},
	}
}
