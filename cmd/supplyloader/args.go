// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"supplyloader/pkg/datamodel"
)

const (
	// ModeInit creates the plugin's unit-test schema.
	ModeInit Mode = "-init"
	// ModeUnitTestData loads the plugin's unit-test rows.
	ModeUnitTestData Mode = "-xunit"
	// ModeSamples loads generated samples into a collection.
	ModeSamples Mode = "-samples"
)

// ErrUsage is the sentinel error wrapped by UsageError.
var ErrUsage = errors.New("usage error")

type (
	// Mode is one of the three single-dash operating modes.
	Mode string

	// Invocation is a parsed command line.
	Invocation struct {
		Mode       Mode
		Identifier string
		Connection string
		// Collection, Entities and Count are set for ModeSamples only.
		Collection string
		Entities   []datamodel.EntitySpec
		Count      int64
	}

	// UsageError is returned for a malformed command line. Help is set when
	// usage was explicitly requested rather than caused by a mistake.
	UsageError struct {
		Reason string
		Help   bool
	}
)

// Error implements the error interface for UsageError.
func (e *UsageError) Error() string {
	if e.Reason == "" {
		return ErrUsage.Error()
	}
	return e.Reason
}

// Unwrap returns ErrUsage for errors.Is() compatibility.
func (e *UsageError) Unwrap() error { return ErrUsage }

// argCount returns the number of arguments the mode takes, mode flag included.
func (m Mode) argCount() int {
	if m == ModeSamples {
		return 6
	}
	return 3
}

// parseMode matches a mode flag case-insensitively.
func parseMode(s string) (Mode, bool) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeInit, ModeUnitTestData, ModeSamples:
		return m, true
	default:
		return "", false
	}
}

func isHelp(s string) bool {
	switch strings.ToLower(s) {
	case "--help", "-help", "-h", "/?", "help":
		return true
	default:
		return false
	}
}

// ParseArgs parses the arguments that follow the program name.
func ParseArgs(args []string) (*Invocation, error) {
	if len(args) == 0 {
		return nil, &UsageError{Reason: "no mode given"}
	}
	if isHelp(args[0]) {
		return nil, &UsageError{Help: true}
	}

	mode, ok := parseMode(args[0])
	if !ok {
		return nil, &UsageError{Reason: fmt.Sprintf("unknown mode %q", args[0])}
	}
	if len(args) != mode.argCount() {
		return nil, &UsageError{Reason: fmt.Sprintf("%s takes %d arguments, got %d", mode, mode.argCount()-1, len(args)-1)}
	}

	inv := &Invocation{Mode: mode, Identifier: args[1], Connection: args[2]}
	if inv.Identifier == "" {
		return nil, &UsageError{Reason: "plugin identifier is empty"}
	}
	if mode != ModeSamples {
		return inv, nil
	}

	inv.Collection = args[3]
	if inv.Collection == "" {
		return nil, &UsageError{Reason: "collection name is empty"}
	}
	entities, err := datamodel.ParseEntitySpecs(args[4])
	if err != nil {
		return nil, &UsageError{Reason: err.Error()}
	}
	inv.Entities = entities

	count, err := strconv.ParseInt(args[5], 10, 64)
	if err != nil || count < 0 {
		return nil, &UsageError{Reason: fmt.Sprintf("sample count %q is not a non-negative integer", args[5])}
	}
	inv.Count = count
	return inv, nil
}

// Usage returns the usage text.
func Usage() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("supplyloader"))
	sb.WriteString(SubtitleStyle.Render(" - drive a data-supply collector/loader plugin pair"))
	sb.WriteString("\n\n")
	sb.WriteString(SubtitleStyle.Render("Usage:"))
	sb.WriteString("\n")
	sb.WriteString("  supplyloader -init    <pluginIdentifier> <connectionString>\n")
	sb.WriteString("  supplyloader -xunit   <pluginIdentifier> <connectionString>\n")
	sb.WriteString("  supplyloader -samples <pluginIdentifier> <connectionString> <collection> <entity[:type],...> <count>\n")
	sb.WriteString("\n")
	sb.WriteString(SubtitleStyle.Render("Types:"))
	sb.WriteString(" string, int, bool, double, date (default string)\n\n")
	sb.WriteString(SubtitleStyle.Render("Examples:"))
	sb.WriteString("\n")
	sb.WriteString("  supplyloader -init SqliteSupplyCollector ./supply.db\n")
	sb.WriteString("  supplyloader -samples SqliteSupplyCollector ./supply.db orders id:int,note 100\n")
	return sb.String()
}
