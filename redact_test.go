// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import (
	"encoding/json"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var tree any
	if err := json.Unmarshal([]byte(raw), &tree); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	return tree
}

// TestMatchesSubtree tests the structural pattern matching rules
func TestMatchesSubtree(t *testing.T) {
	tests := []struct {
		name    string
		tree    string
		pattern any
		want    bool
	}{
		{
			name:    "equal atoms match",
			tree:    `"enable"`,
			pattern: "enable",
			want:    true,
		},
		{
			name:    "different atoms do not match",
			tree:    `"enable"`,
			pattern: "disable",
			want:    false,
		},
		{
			name:    "numbers match across int and float",
			tree:    `1`,
			pattern: 1,
			want:    true,
		},
		{
			name:    "wildcard matches an atom",
			tree:    `"anything"`,
			pattern: Wildcard{},
			want:    true,
		},
		{
			name:    "wildcard matches a nested container",
			tree:    `{"a":[1,2,{"b":3}]}`,
			pattern: Wildcard{},
			want:    true,
		},
		{
			name:    "atomic pattern does not match a container",
			tree:    `{"a":1}`,
			pattern: "a",
			want:    false,
		},
		{
			name:    "object pattern matches by key",
			tree:    `{"cmd":"enable","input":"secret"}`,
			pattern: map[string]any{"cmd": "enable", "input": Wildcard{}},
			want:    true,
		},
		{
			name:    "object pattern requires same size",
			tree:    `{"cmd":"enable","input":"secret","extra":1}`,
			pattern: map[string]any{"cmd": "enable", "input": Wildcard{}},
			want:    false,
		},
		{
			name:    "object pattern requires matching keys",
			tree:    `{"cmd":"enable","data":"secret"}`,
			pattern: map[string]any{"cmd": "enable", "input": Wildcard{}},
			want:    false,
		},
		{
			name:    "array pattern matches by position",
			tree:    `[1,"two",3]`,
			pattern: []any{1, "two", Wildcard{}},
			want:    true,
		},
		{
			name:    "array pattern requires same length",
			tree:    `[1,"two"]`,
			pattern: []any{1, "two", Wildcard{}},
			want:    false,
		},
		{
			name:    "object pattern does not match array",
			tree:    `["cmd"]`,
			pattern: map[string]any{"cmd": Wildcard{}},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchesSubtree(decode(t, tt.tree), tt.pattern)
			if got != tt.want {
				t.Errorf("matchesSubtree() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestFindSubJSON tests depth-first traversal, skip counting and in-place
// mutation through the returned match
func TestFindSubJSON(t *testing.T) {
	t.Run("finds nested enable command", func(t *testing.T) {
		tree := decode(t, `{"params":{"cmds":["show version",{"cmd":"enable","input":"secret"}]}}`)

		match, ok := findSubJSON(tree, enablePattern, 0)
		if !ok {
			t.Fatal("findSubJSON() found no match")
		}

		entry, ok := match.Get().(map[string]any)
		if !ok {
			t.Fatalf("match.Get() = %T, want map[string]any", match.Get())
		}
		if entry["input"] != "secret" {
			t.Errorf("matched entry input = %v, want secret", entry["input"])
		}

		// The match must be a live reference into the tree
		entry["input"] = RedactedValue
		data, _ := json.Marshal(tree)
		if strings.Contains(string(data), "secret") {
			t.Error("in-place mutation did not reach the original tree")
		}
	})

	t.Run("skip selects the Nth match", func(t *testing.T) {
		tree := decode(t, `[{"cmd":"enable","input":"first"},{"cmd":"enable","input":"second"}]`)

		match, ok := findSubJSON(tree, enablePattern, 1)
		if !ok {
			t.Fatal("findSubJSON() found no match")
		}
		entry := match.Get().(map[string]any)
		if entry["input"] != "second" {
			t.Errorf("matched entry input = %v, want second", entry["input"])
		}
	})

	t.Run("no match is reported without error", func(t *testing.T) {
		tree := decode(t, `{"params":{"cmds":["show version"]}}`)

		if _, ok := findSubJSON(tree, enablePattern, 0); ok {
			t.Error("findSubJSON() matched where no enable command exists")
		}
	})

	t.Run("atomic tree never matches", func(t *testing.T) {
		if _, ok := findSubJSON("just a string", enablePattern, 0); ok {
			t.Error("findSubJSON() matched inside an atomic value")
		}
	})

	t.Run("nil tree never matches", func(t *testing.T) {
		if _, ok := findSubJSON(nil, enablePattern, 0); ok {
			t.Error("findSubJSON() matched inside nil")
		}
	})
}

// TestSanitizeRequest tests redaction of enable passwords from serialized
// request bodies
func TestSanitizeRequest(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		contains string
		excludes string
	}{
		{
			name:     "enable input is redacted",
			data:     `{"jsonrpc":"2.0","method":"runCmds","params":{"version":1,"cmds":[{"cmd":"enable","input":"secret123"},"show version"],"format":"json"},"id":"1","streaming":false}`,
			contains: `"input":"<removed>"`,
			excludes: "secret123",
		},
		{
			name:     "request without enable input is unchanged",
			data:     `{"jsonrpc":"2.0","method":"runCmds","params":{"version":1,"cmds":["show version"],"format":"json"},"id":"1","streaming":false}`,
			contains: `"show version"`,
		},
		{
			name:     "malformed body is returned as-is",
			data:     `{"jsonrpc": not json`,
			contains: `{"jsonrpc": not json`,
		},
		{
			name:     "atomic body is returned as-is",
			data:     `42`,
			contains: "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeRequest(tt.data)
			if tt.contains != "" && !strings.Contains(got, tt.contains) {
				t.Errorf("sanitizeRequest() = %q, want it to contain %q", got, tt.contains)
			}
			if tt.excludes != "" && strings.Contains(got, tt.excludes) {
				t.Errorf("sanitizeRequest() = %q, must not contain %q", got, tt.excludes)
			}
		})
	}
}

// TestSanitizeRequest_Idempotent verifies that redacting an already redacted
// body yields the same result as redacting once
func TestSanitizeRequest_Idempotent(t *testing.T) {
	data := `{"params":{"cmds":[{"cmd":"enable","input":"secret"}]}}`

	once := sanitizeRequest(data)
	twice := sanitizeRequest(once)
	if once != twice {
		t.Errorf("sanitizeRequest() is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

// TestSanitizeRequest_SizeLimit verifies oversized payloads are replaced
// instead of processed
func TestSanitizeRequest_SizeLimit(t *testing.T) {
	data := `{"filler":"` + strings.Repeat("x", MaxJSONSizeForLogging) + `"}`

	if got := sanitizeRequest(data); got != JSONTooLargeMessage {
		t.Errorf("sanitizeRequest() = %.40q..., want %q", got, JSONTooLargeMessage)
	}
}
