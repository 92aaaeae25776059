// SPDX-License-Identifier: MPL-2.0

package sqlsupply

import (
	"testing"

	"supplyloader/pkg/datamodel"
)

func TestDialect_Quote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dialect Dialect
		ident   string
		want    string
	}{
		{name: "sqlite", dialect: SQLite, ident: "orders", want: `"orders"`},
		{name: "postgres embedded quote", dialect: Postgres, ident: `we"ird`, want: `"we""ird"`},
		{name: "mysql backtick", dialect: MySQL, ident: "order", want: "`order`"},
		{name: "mysql embedded backtick", dialect: MySQL, ident: "a`b", want: "`a``b`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.dialect.Quote(tt.ident); got != tt.want {
				t.Errorf("Quote(%q) = %s, want %s", tt.ident, got, tt.want)
			}
		})
	}
}

func TestDialect_Insert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dialect Dialect
		rows    int
		want    string
	}{
		{
			name:    "sqlite two rows",
			dialect: SQLite,
			rows:    2,
			want:    `INSERT INTO "t" ("a", "b") VALUES (?, ?), (?, ?)`,
		},
		{
			name:    "postgres numbered",
			dialect: Postgres,
			rows:    2,
			want:    `INSERT INTO "t" ("a", "b") VALUES ($1, $2), ($3, $4)`,
		},
		{
			name:    "mysql one row",
			dialect: MySQL,
			rows:    1,
			want:    "INSERT INTO `t` (`a`, `b`) VALUES (?, ?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.dialect.Insert("t", []string{"a", "b"}, tt.rows); got != tt.want {
				t.Errorf("Insert() = %s\nwant      %s", got, tt.want)
			}
		})
	}
}

func TestDialect_CreateTable(t *testing.T) {
	t.Parallel()

	types := []datamodel.DataType{datamodel.Int, datamodel.Double, datamodel.Unknown}
	cols := []string{"id", "total", "blob"}

	got := Postgres.CreateTable("orders", cols, types, true)
	want := `CREATE TABLE IF NOT EXISTS "orders" ("id" BIGINT, "total" DOUBLE PRECISION, "blob" TEXT)`
	if got != want {
		t.Errorf("CreateTable() = %s\nwant            %s", got, want)
	}

	got = MySQL.CreateTable("orders", cols[:1], types[:1], false)
	if want := "CREATE TABLE `orders` (`id` BIGINT)"; got != want {
		t.Errorf("CreateTable() = %s, want %s", got, want)
	}
}

func TestDialect_SelectColumn(t *testing.T) {
	t.Parallel()

	if got, want := SQLite.SelectColumn("t", "c", 5), `SELECT "c" FROM "t" WHERE "c" IS NOT NULL LIMIT 5`; got != want {
		t.Errorf("SelectColumn() = %s, want %s", got, want)
	}
	if got, want := MySQL.SelectColumn("t", "c", 0), "SELECT `c` FROM `t` WHERE `c` IS NOT NULL"; got != want {
		t.Errorf("SelectColumn() = %s, want %s", got, want)
	}
}

func TestDialectByName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"sqlite", "Postgres", "MYSQL"} {
		if _, ok := DialectByName(name); !ok {
			t.Errorf("DialectByName(%q) not found", name)
		}
	}
	if _, ok := DialectByName("oracle"); ok {
		t.Error("DialectByName(oracle) should not be found")
	}
}

func TestNativeDataType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		native string
		want   datamodel.DataType
	}{
		{"INTEGER", datamodel.Int},
		{"bigint", datamodel.Int},
		{"int(11)", datamodel.Int},
		{"tinyint(1)", datamodel.Boolean},
		{"boolean", datamodel.Boolean},
		{"TEXT", datamodel.String},
		{"character varying", datamodel.String},
		{"varchar(255)", datamodel.String},
		{"uuid", datamodel.String},
		{"REAL", datamodel.Double},
		{"double precision", datamodel.Double},
		{"numeric(10,2)", datamodel.Double},
		{"DATETIME", datamodel.DateTime},
		{"timestamp without time zone", datamodel.DateTime},
		{"date", datamodel.DateTime},
		{"bytea", datamodel.Unknown},
		{"", datamodel.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			t.Parallel()
			if got := NativeDataType(tt.native); got != tt.want {
				t.Errorf("NativeDataType(%q) = %v, want %v", tt.native, got, tt.want)
			}
		})
	}
}
