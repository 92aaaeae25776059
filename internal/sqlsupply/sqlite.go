// SPDX-License-Identifier: MPL-2.0

package sqlsupply

import (
	"supplyloader/pkg/datamodel"

	_ "modernc.org/sqlite"
)

// SQLite is the dialect for modernc.org/sqlite. Connection strings are file
// paths or file: URIs.
var SQLite = Dialect{
	Name:   "sqlite",
	Driver: "sqlite",
	ColumnTypes: map[datamodel.DataType]string{
		datamodel.String:   "TEXT",
		datamodel.Int:      "INTEGER",
		datamodel.Boolean:  "BOOLEAN",
		datamodel.Double:   "REAL",
		datamodel.DateTime: "DATETIME",
	},
	quoteChar: '"',
}
