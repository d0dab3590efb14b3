// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import "testing"

// TestRes_GetValue tests gjson path access into the response body
func TestRes_GetValue(t *testing.T) {
	res := Res{Raw: `{"jsonrpc":"2.0","result":[{"modelName":"vEOS","version":"4.29.1F"}],"id":"abc"}`}

	if got := res.GetValue("result.0.modelName").String(); got != "vEOS" {
		t.Errorf("GetValue(result.0.modelName) = %q, want vEOS", got)
	}
	if got := res.GetValue("result.#").Int(); got != 1 {
		t.Errorf("GetValue(result.#) = %d, want 1", got)
	}
	if got := res.GetValue("missing"); got.Exists() {
		t.Errorf("GetValue(missing) exists: %v", got)
	}
}

// TestRes_Result tests the ordered per-command result list
func TestRes_Result(t *testing.T) {
	res := Res{Raw: `{"jsonrpc":"2.0","result":[{"a":1},{"b":2},{"c":3}],"id":"abc"}`}

	result := res.Result()
	if len(result) != 3 {
		t.Fatalf("Result() has %d entries, want 3", len(result))
	}
	if got := result[1].Get("b").Int(); got != 2 {
		t.Errorf("Result()[1].b = %d, want 2", got)
	}
}

// TestRes_ID tests correlation id extraction
func TestRes_ID(t *testing.T) {
	res := Res{Raw: `{"jsonrpc":"2.0","result":[],"id":"request-7"}`}

	if got := res.ID(); got != "request-7" {
		t.Errorf("ID() = %q, want request-7", got)
	}
}

// TestRes_Warnings tests warnings extraction from the last result entry
func TestRes_Warnings(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "warnings on the last entry",
			raw:      `{"result":[{},{"warnings":["deprecated command","slow command"]}]}`,
			expected: []string{"deprecated command", "slow command"},
		},
		{
			name:     "no warnings",
			raw:      `{"result":[{},{}]}`,
			expected: nil,
		},
		{
			name:     "empty result",
			raw:      `{"result":[]}`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Res{Raw: tt.raw}
			got := res.Warnings()
			if len(got) != len(tt.expected) {
				t.Fatalf("Warnings() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Warnings()[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}
