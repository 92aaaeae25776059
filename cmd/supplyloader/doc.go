// SPDX-License-Identifier: MPL-2.0

// Package cmd is the supplyloader command line. It parses the three
// single-dash modes, binds the named plugin pair, drives it and maps every
// failure to an exit code:
//
//	0  the mode completed
//	1  usage error, nothing was done
//	2  resolution, binding, reconciliation or plugin failure
package cmd
