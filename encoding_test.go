// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import (
	"strings"
	"testing"
)

// TestValidateEncoding tests encoding validation
func TestValidateEncoding(t *testing.T) {
	tests := []struct {
		encoding string
		valid    bool
	}{
		{EncodingJSON, true},
		{EncodingText, true},
		{"xml", false},
		{"JSON", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			err := ValidateEncoding(tt.encoding)
			if tt.valid && err != nil {
				t.Errorf("ValidateEncoding(%q) error: %v", tt.encoding, err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatalf("ValidateEncoding(%q) succeeded, want error", tt.encoding)
				}
				// The error names the valid values for the caller
				if !strings.Contains(err.Error(), "json") || !strings.Contains(err.Error(), "text") {
					t.Errorf("error %q does not name the valid encodings", err)
				}
			}
		})
	}
}
