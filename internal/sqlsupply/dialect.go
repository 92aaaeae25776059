// SPDX-License-Identifier: MPL-2.0

package sqlsupply

import (
	"fmt"
	"strconv"
	"strings"

	"supplyloader/pkg/datamodel"
)

type (
	// Dialect describes one SQL flavor.
	Dialect struct {
		// Name is the short dialect name used in logs and errors.
		Name string
		// Driver is the database/sql driver name.
		Driver string
		// ColumnTypes maps each DataType to the column type used when creating
		// tables. Unknown maps to the String column type when absent.
		ColumnTypes map[datamodel.DataType]string
		// ColumnsQuery lists (table, column, native type) for the current
		// schema ordered by table and column position. Empty means the
		// dialect introspects through SQLite's catalog instead.
		ColumnsQuery string

		quoteChar        byte
		numberedBindVars bool
	}
)

// Quote quotes an identifier, doubling embedded quote characters.
func (d Dialect) Quote(ident string) string {
	q := string(d.quoteChar)
	return q + strings.ReplaceAll(ident, q, q+q) + q
}

// Placeholder returns the bind variable for the 1-based argument position n.
func (d Dialect) Placeholder(n int) string {
	if d.numberedBindVars {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// ColumnType returns the column type for dt.
func (d Dialect) ColumnType(dt datamodel.DataType) string {
	if t, ok := d.ColumnTypes[dt]; ok {
		return t
	}
	return d.ColumnTypes[datamodel.String]
}

// CreateTable renders a CREATE TABLE statement. With ifNotExists set an
// existing table is left alone.
func (d Dialect) CreateTable(table string, columns []string, types []datamodel.DataType, ifNotExists bool) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = d.Quote(c) + " " + d.ColumnType(types[i])
	}
	guard := ""
	if ifNotExists {
		guard = "IF NOT EXISTS "
	}
	return fmt.Sprintf("CREATE TABLE %s%s (%s)", guard, d.Quote(table), strings.Join(defs, ", "))
}

// DropTable renders a DROP TABLE IF EXISTS statement.
func (d Dialect) DropTable(table string) string {
	return "DROP TABLE IF EXISTS " + d.Quote(table)
}

// Insert renders a multi-row INSERT for rows rows of len(columns) values.
func (d Dialect) Insert(table string, columns []string, rows int) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.Quote(c)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ", d.Quote(table), strings.Join(quoted, ", "))
	n := 1
	for r := range rows {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for c := range columns {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(d.Placeholder(n))
			n++
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

// SelectColumn renders a query reading non-null values of one column. A
// positive limit caps the rows read.
func (d Dialect) SelectColumn(table, column string, limit int64) string {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s IS NOT NULL",
		d.Quote(column), d.Quote(table), d.Quote(column))
	if limit > 0 {
		q += " LIMIT " + strconv.FormatInt(limit, 10)
	}
	return q
}

// DialectByName returns the dialect called name (sqlite, postgres, mysql).
func DialectByName(name string) (Dialect, bool) {
	switch strings.ToLower(name) {
	case SQLite.Name:
		return SQLite, true
	case Postgres.Name:
		return Postgres, true
	case MySQL.Name:
		return MySQL, true
	default:
		return Dialect{}, false
	}
}

// NativeDataType maps a native column type to a DataType. Matching is by
// keyword so sized and qualified types ("varchar(20)", "timestamp with time
// zone", "tinyint(1)") are recognized.
func NativeDataType(native string) datamodel.DataType {
	t := strings.ToLower(strings.TrimSpace(native))
	switch {
	case t == "":
		return datamodel.Unknown
	case strings.HasPrefix(t, "bool"), t == "bit", t == "bit(1)", t == "tinyint(1)":
		return datamodel.Boolean
	case strings.Contains(t, "date"), strings.Contains(t, "time"):
		return datamodel.DateTime
	case strings.Contains(t, "int"), t == "serial", t == "bigserial":
		return datamodel.Int
	case strings.Contains(t, "char"), strings.Contains(t, "text"), strings.Contains(t, "clob"),
		t == "uuid", t == "json", t == "jsonb", strings.HasPrefix(t, "enum"), t == "string":
		return datamodel.String
	case strings.Contains(t, "real"), strings.Contains(t, "floa"), strings.Contains(t, "doub"),
		strings.HasPrefix(t, "numeric"), strings.HasPrefix(t, "decimal"), t == "money":
		return datamodel.Double
	default:
		return datamodel.Unknown
	}
}
