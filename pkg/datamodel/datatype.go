// SPDX-License-Identifier: MPL-2.0

package datamodel

import "strings"

const (
	// String is textual data. It is the default for entities without a hint.
	String DataType = iota
	// Int is integral numeric data.
	Int
	// Boolean is true/false data.
	Boolean
	// Double is floating point data.
	Double
	// DateTime is a timestamp or date.
	DateTime
	// Unknown is any type the harness cannot map.
	Unknown
)

// DefaultTypeLabel is the raw type label recorded for entities synthesized
// without a type hint.
const DefaultTypeLabel = "String"

// DataType is the declared type of a DataEntity.
type DataType int

// String returns the type name.
func (t DataType) String() string {
	switch t {
	case String:
		return "String"
	case Int:
		return "Int"
	case Boolean:
		return "Boolean"
	case Double:
		return "Double"
	case DateTime:
		return "DateTime"
	default:
		return "Unknown"
	}
}

// ParseDataType coerces a type hint to a DataType. Matching is
// case-insensitive: "string", "int", "bool", "double" and "date" map to
// their types, an empty hint maps to String and anything else to Unknown.
func ParseDataType(hint string) DataType {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "", "string":
		return String
	case "int":
		return Int
	case "bool":
		return Boolean
	case "double":
		return Double
	case "date":
		return DateTime
	default:
		return Unknown
	}
}
