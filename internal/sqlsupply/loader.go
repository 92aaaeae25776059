// SPDX-License-Identifier: MPL-2.0

package sqlsupply

import (
	"context"
	"database/sql"
	"fmt"

	"supplyloader/internal/fixture"
	"supplyloader/internal/samplegen"
	"supplyloader/pkg/datamodel"
)

// Loader creates the fixture tables and writes fixture and sample rows.
type Loader struct {
	store
	batchSize int
	rateLimit float64
	gen       *samplegen.Generator
}

// NewLoader creates a loader for dialect d.
func NewLoader(d Dialect, opts datamodel.Options, extra ...Option) *Loader {
	opts = opts.WithDefaults()
	s := newSettings(extra)
	return &Loader{
		store: store{
			dialect: d,
			open:    s.open,
			logger:  opts.Logger.With("dialect", d.Name, "role", "loader"),
		},
		batchSize: opts.BatchSize,
		rateLimit: opts.RateLimit,
		gen:       samplegen.New(s.seed),
	}
}

// InitializeDatabase drops and recreates every fixture table.
func (l *Loader) InitializeDatabase(ctx context.Context, container *datamodel.DataContainer) error {
	db, err := l.connect(ctx, container)
	if err != nil {
		return err
	}
	defer closeDB(db, l.logger)

	for _, t := range fixture.UnitTestTables() {
		if _, err := db.ExecContext(ctx, l.dialect.DropTable(t.Name)); err != nil {
			return fmt.Errorf("drop table %s: %w", t.Name, err)
		}
		if _, err := db.ExecContext(ctx, l.dialect.CreateTable(t.Name, t.ColumnNames(), columnTypes(t), false)); err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}
		l.logger.Debug("fixture table created", "table", t.Name)
	}
	return nil
}

// LoadUnitTestData inserts the fixture rows in one transaction.
func (l *Loader) LoadUnitTestData(ctx context.Context, container *datamodel.DataContainer) error {
	db, err := l.connect(ctx, container)
	if err != nil {
		return err
	}
	defer closeDB(db, l.logger)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	for _, t := range fixture.UnitTestTables() {
		if err := l.insertRows(ctx, tx, t.Name, t.ColumnNames(), t.Rows); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("load fixture table %s: %w", t.Name, err)
		}
		l.logger.Debug("fixture rows loaded", "table", t.Name, "rows", len(t.Rows))
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fixture data: %w", err)
	}
	return nil
}

// LoadSamples writes count generated rows into the collection shared by
// entities, creating the table when it does not exist. Writes are batched
// and, with a positive rate limit, throttled to that many rows per second.
func (l *Loader) LoadSamples(ctx context.Context, entities []*datamodel.DataEntity, count int64) error {
	if len(entities) == 0 {
		return ErrNoEntities
	}
	if !datamodel.SameCollection(entities) {
		return datamodel.ErrMixedCollections
	}
	table := entities[0].CollectionName()
	if table == "" {
		return ErrNoCollection
	}
	if count <= 0 {
		return nil
	}

	columns := make([]string, len(entities))
	types := make([]datamodel.DataType, len(entities))
	for i, e := range entities {
		columns[i] = e.Name
		types[i] = e.DataType
	}

	db, err := l.connect(ctx, entities[0].Container)
	if err != nil {
		return err
	}
	defer closeDB(db, l.logger)

	if _, err := db.ExecContext(ctx, l.dialect.CreateTable(table, columns, types, true)); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	var written int64
	err = samplegen.Batches(ctx, count, l.rowsPerStatement(len(columns)), l.rateLimit, func(n int) error {
		rows := make([][]any, n)
		for i := range rows {
			rows[i] = l.gen.Row(entities)
		}
		if err := l.insertRows(ctx, tx, table, columns, rows); err != nil {
			return fmt.Errorf("load samples into %s: %w", table, err)
		}
		written += int64(n)
		l.logger.Debug("sample batch loaded", "table", table, "rows", n, "total", written)
		return nil
	})
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit samples: %w", err)
	}
	return nil
}

func (l *Loader) insertRows(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	batch := l.rowsPerStatement(len(columns))
	for start := 0; start < len(rows); start += batch {
		chunk := rows[start:min(start+batch, len(rows))]
		args := make([]any, 0, len(chunk)*len(columns))
		for _, r := range chunk {
			args = append(args, r...)
		}
		if _, err := tx.ExecContext(ctx, l.dialect.Insert(table, columns, len(chunk)), args...); err != nil {
			return err
		}
	}
	return nil
}

// rowsPerStatement caps the batch size so one statement stays under the
// driver's bind variable limit.
func (l *Loader) rowsPerStatement(columns int) int {
	if columns == 0 {
		return l.batchSize
	}
	return max(1, min(l.batchSize, maxBindVars/columns))
}

func columnTypes(t fixture.Table) []datamodel.DataType {
	types := make([]datamodel.DataType, len(t.Columns))
	for i, c := range t.Columns {
		types[i] = c.Type
	}
	return types
}
