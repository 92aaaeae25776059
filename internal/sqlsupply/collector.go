// SPDX-License-Identifier: MPL-2.0

package sqlsupply

import (
	"context"
	"database/sql"
	"fmt"

	"supplyloader/internal/samplegen"
	"supplyloader/pkg/datamodel"
)

// Collector introspects tables and columns of a SQL database.
type Collector struct {
	store
}

// NewCollector creates a collector for dialect d.
func NewCollector(d Dialect, opts datamodel.Options, extra ...Option) *Collector {
	opts = opts.WithDefaults()
	s := newSettings(extra)
	return &Collector{store: store{
		dialect: d,
		open:    s.open,
		logger:  opts.Logger.With("dialect", d.Name, "role", "collector"),
	}}
}

// GetSchema returns one collection per table and one entity per column.
func (c *Collector) GetSchema(ctx context.Context, container *datamodel.DataContainer) (datamodel.SchemaSnapshot, error) {
	db, err := c.connect(ctx, container)
	if err != nil {
		return datamodel.SchemaSnapshot{}, err
	}
	defer closeDB(db, c.logger)

	var cols []columnInfo
	if c.dialect.ColumnsQuery == "" {
		cols, err = sqliteColumns(ctx, db)
	} else {
		cols, err = infoSchemaColumns(ctx, db, c.dialect.ColumnsQuery)
	}
	if err != nil {
		return datamodel.SchemaSnapshot{}, fmt.Errorf("introspect %s schema: %w", c.dialect.Name, err)
	}

	snap := datamodel.SchemaSnapshot{}
	byName := make(map[string]*datamodel.DataCollection)
	for _, col := range cols {
		coll, ok := byName[col.table]
		if !ok {
			coll = datamodel.NewDataCollection(container, col.table)
			byName[col.table] = coll
			snap.Collections = append(snap.Collections, coll)
		}
		snap.Entities = append(snap.Entities,
			datamodel.NewDataEntity(col.name, NativeDataType(col.native), col.native, container, coll))
	}
	c.logger.Debug("schema introspected", "collections", len(snap.Collections), "entities", len(snap.Entities))
	return snap, nil
}

// CollectSample reads up to maxSamples non-null values of entity.
func (c *Collector) CollectSample(ctx context.Context, entity *datamodel.DataEntity, maxSamples int64) ([]string, error) {
	if maxSamples <= 0 {
		return nil, nil
	}
	table := entity.CollectionName()
	if table == "" {
		return nil, fmt.Errorf("collect sample of %q: %w", entity.Name, ErrNoCollection)
	}
	db, err := c.connect(ctx, entity.Container)
	if err != nil {
		return nil, err
	}
	defer closeDB(db, c.logger)

	rows, err := db.QueryContext(ctx, c.dialect.SelectColumn(table, entity.Name, maxSamples))
	if err != nil {
		return nil, fmt.Errorf("collect sample of %s.%s: %w", table, entity.Name, err)
	}
	defer rows.Close()

	var samples []string
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan sample of %s.%s: %w", table, entity.Name, err)
		}
		samples = append(samples, samplegen.Format(v))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read samples of %s.%s: %w", table, entity.Name, err)
	}
	return samples, nil
}

type columnInfo struct {
	table  string
	name   string
	native string
}

func infoSchemaColumns(ctx context.Context, db *sql.DB, query string) ([]columnInfo, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []columnInfo
	for rows.Next() {
		var ci columnInfo
		if err := rows.Scan(&ci.table, &ci.name, &ci.native); err != nil {
			return nil, err
		}
		cols = append(cols, ci)
	}
	return cols, rows.Err()
}

func sqliteColumns(ctx context.Context, db *sql.DB) ([]columnInfo, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, err
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	var cols []columnInfo
	for _, table := range tables {
		tc, err := sqliteTableColumns(ctx, db, table)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", table, err)
		}
		cols = append(cols, tc...)
	}
	return cols, nil
}

func sqliteTableColumns(ctx context.Context, db *sql.DB, table string) ([]columnInfo, error) {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+SQLite.Quote(table)+")")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []columnInfo
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, columnInfo{table: table, name: name, native: colType})
	}
	return cols, rows.Err()
}
