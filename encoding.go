// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import "fmt"

// Encoding constants for eAPI command results
const (
	// EncodingJSON requests structured JSON command output (default)
	EncodingJSON = "json"

	// EncodingText requests raw CLI text command output
	// Use this for commands that have no structured model, e.g. "show running-config"
	EncodingText = "text"
)

// ValidEncodings contains the list of valid encoding values
var ValidEncodings = []string{
	EncodingJSON,
	EncodingText,
}

// ValidateEncoding checks if the encoding is valid
//
// The encoding is passed as the "format" parameter of the eAPI request and
// controls how the device renders each command result.
//
// Returns an error if the encoding is not one of the supported values.
//
// Example:
//
//	if err := eapi.ValidateEncoding("json"); err != nil {
//	    log.Fatal(err)
//	}
func ValidateEncoding(enc string) error {
	for _, valid := range ValidEncodings {
		if enc == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid encoding: %s (valid values: json, text)", enc)
}
