// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// File helpers (MustMkdirAll, MustWriteFile) fail the test immediately.
// Container helpers (RequireContainers, StartContainer) skip the test when no
// container provider is reachable and bound concurrent container startups.
package testutil
