// SPDX-License-Identifier: MPL-2.0

// Package config handles supplyloader configuration using Viper with CUE as the
// file format.
//
// Values come from, in increasing precedence: built-in defaults, the first of
// $XDG_CONFIG_HOME/supplyloader/config.cue and ./supplyloader.cue (or the file
// named by SUPPLYLOADER_CONFIG), and SUPPLYLOADER_* environment variables.
// Files are validated against the embedded config_schema.cue before they are
// merged.
package config
