// SPDX-License-Identifier: MPL-2.0

package datamodel

import "testing"

func TestParseDataType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hint string
		want DataType
	}{
		{hint: "string", want: String},
		{hint: "STRING", want: String},
		{hint: "int", want: Int},
		{hint: "Int", want: Int},
		{hint: "bool", want: Boolean},
		{hint: "BoOl", want: Boolean},
		{hint: "double", want: Double},
		{hint: "DOUBLE", want: Double},
		{hint: "date", want: DateTime},
		{hint: "Date", want: DateTime},
		{hint: "", want: String},
		{hint: "uuid", want: Unknown},
		{hint: "integer", want: Unknown},
		{hint: "datetime", want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			t.Parallel()

			if got := ParseDataType(tt.hint); got != tt.want {
				t.Errorf("ParseDataType(%q) = %v, want %v", tt.hint, got, tt.want)
			}
		})
	}
}

func TestDataTypeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dt   DataType
		want string
	}{
		{String, "String"},
		{Int, "Int"},
		{Boolean, "Boolean"},
		{Double, "Double"},
		{DateTime, "DateTime"},
		{Unknown, "Unknown"},
		{DataType(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.dt.String(); got != tt.want {
			t.Errorf("DataType(%d).String() = %q, want %q", int(tt.dt), got, tt.want)
		}
	}
}
