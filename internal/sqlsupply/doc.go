// SPDX-License-Identifier: MPL-2.0

// Package sqlsupply implements collector and loader plugins for database/sql
// stores. A Dialect captures what differs between SQLite, PostgreSQL and
// MySQL: driver name, placeholders, identifier quoting, column types and
// schema introspection.
//
// Every operation opens its own *sql.DB from the container's connection
// string and closes it before returning.
package sqlsupply
