// SPDX-License-Identifier: MPL-2.0

// Package reconcile computes the entity descriptors a sample load operates on.
//
// Reconciliation is asymmetric. When the target collection already exists in
// the live schema, every requested entity must exist there too and the live
// descriptors are reused as-is; a single missing entity fails the whole
// request. When the collection does not exist, descriptors are synthesized
// from the caller's type hints.
package reconcile
