// SPDX-License-Identifier: MPL-2.0

// Package binder turns a plugin identifier into a bound collector and loader
// pair. Components come from the build-time Registry when one is registered
// under the component name, otherwise from a loadable unit in the plugin
// directory whose exported symbol carries the component name.
package binder
