// SPDX-License-Identifier: MPL-2.0

// Package plugins registers the built-in collector/loader pairs with the
// binder's default registry. Import it for side effects:
//
//	import _ "supplyloader/internal/plugins"
package plugins

import (
	"supplyloader/internal/binder"
	"supplyloader/internal/mongosupply"
	"supplyloader/internal/sqlsupply"
	"supplyloader/pkg/datamodel"
)

// Built-in plugin identifiers. Each is registered for both roles, so the
// configured loader suffix does not affect them.
const (
	SqliteCollector   = "SqliteSupplyCollector"
	PostgresCollector = "PostgresSupplyCollector"
	MySQLCollector    = "MySqlSupplyCollector"
	MongoDBCollector  = "MongoDbSupplyCollector"
)

func init() {
	RegisterAll(binder.DefaultRegistry())
}

// RegisterAll adds every built-in pair to r.
func RegisterAll(r *binder.Registry) {
	for id, d := range map[string]sqlsupply.Dialect{
		SqliteCollector:   sqlsupply.SQLite,
		PostgresCollector: sqlsupply.Postgres,
		MySQLCollector:    sqlsupply.MySQL,
	} {
		r.Register(id, binder.RoleCollector, func(opts datamodel.Options) any { return sqlsupply.NewCollector(d, opts) })
		r.Register(id, binder.RoleLoader, func(opts datamodel.Options) any { return sqlsupply.NewLoader(d, opts) })
	}

	r.Register(MongoDBCollector, binder.RoleCollector, func(opts datamodel.Options) any { return mongosupply.NewCollector(opts) })
	r.Register(MongoDBCollector, binder.RoleLoader, func(opts datamodel.Options) any { return mongosupply.NewLoader(opts) })
}
