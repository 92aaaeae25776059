// SPDX-License-Identifier: MPL-2.0

// Package datamodel defines the contract shared between the supplyloader
// harness and data-supply plugins.
//
// A plugin pair consists of a Collector (schema introspection and sample
// reading) and a Loader (database initialization, unit-test seeding and
// sample writing). Both are compiled independently of the harness, so this
// package is a leaf dependency: it imports only the standard library.
//
// The descriptor graph is pointer based. A DataContainer is owned by the
// caller and shared by every DataCollection and DataEntity that refers to it;
// descriptors returned inside a SchemaSnapshot are read-only.
package datamodel
