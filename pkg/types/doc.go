// SPDX-License-Identifier: MPL-2.0

// Package types defines small value types shared across supplyloader
// packages. It imports only the standard library.
package types
