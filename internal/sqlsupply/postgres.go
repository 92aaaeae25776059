// SPDX-License-Identifier: MPL-2.0

package sqlsupply

import (
	"supplyloader/pkg/datamodel"

	_ "github.com/lib/pq"
)

// Postgres is the dialect for github.com/lib/pq. Connection strings are
// "postgres://" URLs or "host=... dbname=..." keyword strings.
var Postgres = Dialect{
	Name:   "postgres",
	Driver: "postgres",
	ColumnTypes: map[datamodel.DataType]string{
		datamodel.String:   "TEXT",
		datamodel.Int:      "BIGINT",
		datamodel.Boolean:  "BOOLEAN",
		datamodel.Double:   "DOUBLE PRECISION",
		datamodel.DateTime: "TIMESTAMP",
	},
	ColumnsQuery: `SELECT table_name, column_name, data_type FROM information_schema.columns
WHERE table_schema = current_schema() ORDER BY table_name, ordinal_position`,
	quoteChar:        '"',
	numberedBindVars: true,
}
