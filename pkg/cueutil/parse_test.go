// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Config: {
	name?:  string & !=""
	count?: int & >=0
	nested?: {
		flag?: bool
	}
}
`

func TestValidateToMap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		opts    []Option
		check   func(t *testing.T, got map[string]any)
		wantErr string
	}{
		{
			name: "valid",
			data: "name: \"x\"\nnested: flag: true\n",
			check: func(t *testing.T, got map[string]any) {
				t.Helper()
				if got["name"] != "x" {
					t.Errorf("name = %v, want x", got["name"])
				}
				nested, ok := got["nested"].(map[string]any)
				if !ok || nested["flag"] != true {
					t.Errorf("nested = %v, want flag true", got["nested"])
				}
			},
		},
		{
			name: "empty document",
			data: "",
			check: func(t *testing.T, got map[string]any) {
				t.Helper()
				if len(got) != 0 {
					t.Errorf("expected empty map, got %v", got)
				}
			},
		},
		{
			name:    "constraint violation names the path",
			data:    "count: -1\n",
			opts:    []Option{WithFilename("app.cue")},
			wantErr: "app.cue: count",
		},
		{
			name:    "unknown field",
			data:    "colour: \"red\"\n",
			wantErr: "colour",
		},
		{
			name:    "syntax error",
			data:    "name: \n",
			wantErr: "<input>",
		},
		{
			name:    "too large",
			data:    "name: \"abcdef\"\n",
			opts:    []Option{WithMaxFileSize(4)},
			wantErr: "exceeds maximum 4 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ValidateToMap(testSchema, "#Config", []byte(tt.data), tt.opts...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ValidateToMap() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateToMap() error: %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestValidateToMap_BadSchemaPath(t *testing.T) {
	t.Parallel()

	_, err := ValidateToMap(testSchema, "#Missing", nil)
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Errorf("expected internal error, got %v", err)
	}
}
