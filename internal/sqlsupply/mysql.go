// SPDX-License-Identifier: MPL-2.0

package sqlsupply

import (
	"supplyloader/pkg/datamodel"

	_ "github.com/go-sql-driver/mysql"
)

// MySQL is the dialect for github.com/go-sql-driver/mysql. Connection strings
// are DSNs such as "user:pass@tcp(host:3306)/db?parseTime=true".
var MySQL = Dialect{
	Name:   "mysql",
	Driver: "mysql",
	ColumnTypes: map[datamodel.DataType]string{
		datamodel.String:   "TEXT",
		datamodel.Int:      "BIGINT",
		datamodel.Boolean:  "BOOLEAN",
		datamodel.Double:   "DOUBLE",
		datamodel.DateTime: "DATETIME",
	},
	ColumnsQuery: `SELECT table_name, column_name, column_type FROM information_schema.columns
WHERE table_schema = DATABASE() ORDER BY table_name, ordinal_position`,
	quoteChar: '`',
}
