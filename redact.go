// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import (
	"encoding/json"
	"sort"
)

// Security limits for JSON processing and logging
const (
	// MaxJSONSizeForLogging limits the size of request bodies processed for
	// log redaction (1MB)
	MaxJSONSizeForLogging = 1 * 1024 * 1024
)

// Logging message constants
const (
	JSONTooLargeMessage = "[JSON TOO LARGE FOR LOGGING]"

	// RedactedValue replaces sensitive command input in logs and error
	// messages
	RedactedValue = "<removed>"
)

// Wildcard matches any single value in a subtree pattern, atomic or nested.
// Pattern keys cannot be wildcarded, only values.
type Wildcard struct{}

// Match identifies where a matched subtree lives inside a decoded JSON tree
//
// Container is the parent holding the match, either a map[string]any or a
// []any; Key addresses the match within it (string key or int index). The
// pair is a live reference into the tree, so the match can be modified in
// place:
//
//	if m, ok := findSubJSON(tree, pattern, 0); ok {
//	    m.Set(replacement)
//	}
//
// A Match is transient; it is used once and discarded.
type Match struct {
	Container any
	Key       any
}

// Get returns the matched value
func (m Match) Get() any {
	switch c := m.Container.(type) {
	case map[string]any:
		return c[m.Key.(string)]
	case []any:
		return c[m.Key.(int)]
	}
	return nil
}

// Set replaces the matched value in place
func (m Match) Set(value any) {
	switch c := m.Container.(type) {
	case map[string]any:
		c[m.Key.(string)] = value
	case []any:
		c[m.Key.(int)] = value
	}
}

// isContainer reports whether a decoded JSON value is an object or array
func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

// atomsEqual compares two atomic JSON values, tolerating the int/float64
// mismatch between literal Go patterns and decoded JSON numbers
func atomsEqual(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// matchesSubtree reports whether a tree value matches a pattern value
//
// A Wildcard matches any single value. An atomic pattern matches only an
// equal atomic value. A container pattern matches a container of the same
// kind and size whose entries all match: objects correspond by key, arrays
// by position.
func matchesSubtree(tree, pattern any) bool {
	if _, ok := pattern.(Wildcard); ok {
		return true
	}
	if !isContainer(pattern) {
		if isContainer(tree) {
			return false
		}
		return atomsEqual(tree, pattern)
	}
	switch p := pattern.(type) {
	case map[string]any:
		t, ok := tree.(map[string]any)
		if !ok || len(t) != len(p) {
			return false
		}
		keys := make([]string, 0, len(p))
		for k := range p {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			tv, ok := t[k]
			if !ok || !matchesSubtree(tv, p[k]) {
				return false
			}
		}
		return true
	case []any:
		t, ok := tree.([]any)
		if !ok || len(t) != len(p) {
			return false
		}
		for i := range p {
			if !matchesSubtree(t[i], p[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// findSubJSON locates a subtree matching a pattern inside a decoded JSON tree
//
// The tree is walked depth-first, examining each container's direct entries
// for a match before descending into nested containers. Entries of objects
// are visited in sorted key order so traversal is deterministic. skip selects
// the Nth match (0-indexed) instead of the first.
//
// An atomic tree can contain no subtree and never matches. Absence of a
// match is reported through the boolean result, never as an error; callers
// must treat it as "nothing found".
func findSubJSON(tree, pattern any, skip int) (Match, bool) {
	match, _, ok := findSubJSONSkip(tree, pattern, skip)
	return match, ok
}

func findSubJSONSkip(tree, pattern any, skip int) (Match, int, bool) {
	visit := func(container any, key any, val any) (Match, bool) {
		if matchesSubtree(val, pattern) {
			if skip > 0 {
				skip--
				return Match{}, false
			}
			return Match{Container: container, Key: key}, true
		}
		return Match{}, false
	}

	switch t := tree.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if m, ok := visit(t, k, t[k]); ok {
				return m, skip, true
			}
			if isContainer(t[k]) {
				m, rest, ok := findSubJSONSkip(t[k], pattern, skip)
				if ok {
					return m, rest, true
				}
				skip = rest
			}
		}
	case []any:
		for i, v := range t {
			if m, ok := visit(t, i, v); ok {
				return m, skip, true
			}
			if isContainer(v) {
				m, rest, ok := findSubJSONSkip(v, pattern, skip)
				if ok {
					return m, rest, true
				}
				skip = rest
			}
		}
	}
	return Match{}, skip, false
}

// enablePattern matches the command object carrying the enable password
var enablePattern = map[string]any{"cmd": "enable", "input": Wildcard{}}

// sanitizeRequest removes sensitive command input from a serialized request
// body before it is logged
//
// The enable command's input field is overwritten with a fixed placeholder.
// The payload actually transmitted is never altered, only the logged copy.
// Malformed input is returned unchanged; redaction never fails.
func sanitizeRequest(data string) string {
	if len(data) > MaxJSONSizeForLogging {
		return JSONTooLargeMessage
	}

	var tree any
	if err := json.Unmarshal([]byte(data), &tree); err != nil {
		return data
	}

	match, ok := findSubJSON(tree, enablePattern, 0)
	if !ok {
		return data
	}

	entry, ok := match.Get().(map[string]any)
	if !ok {
		return data
	}
	entry["input"] = RedactedValue

	sanitized, err := json.Marshal(tree)
	if err != nil {
		return data
	}
	return string(sanitized)
}
