// SPDX-License-Identifier: MPL-2.0

// Package mongosupply implements the MongoDB collector and loader plugins.
// A container's connection string is a mongodb:// or mongodb+srv:// URI whose
// path names the database ("test" when absent). Collections map to
// DataCollections and top-level document fields to DataEntities.
package mongosupply
