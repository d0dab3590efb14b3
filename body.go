// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// Body provides a fluent interface for building JSON payloads using sjson
// for path-based manipulation.
//
// The client uses it internally to assemble the JSON-RPC request envelope;
// it is also handy for building structured values fed to configuration
// commands.
//
// The Body builder tracks errors internally to enable method chaining while
// providing error checking through String() or Err() methods.
//
// Example:
//
//	body := eapi.Body{}.
//	    Set("jsonrpc", "2.0").
//	    Set("method", "runCmds").
//	    Set("params.version", 1)
//
//	value, err := body.String()
//	if err != nil {
//	    log.Fatal(err)
//	}
type Body struct {
	// str contains the JSON string being built
	str string
	// err tracks the first error encountered during building
	err error
}

// Set sets a value at the specified JSON path and returns a new Body
//
// The path uses dot notation for nested fields (e.g., "params.format").
// The value can be any type sjson supports; structs and slices are
// marshaled with encoding/json, so Command values serialize through their
// custom marshaler.
//
// If an error occurs, the error is stored and returned by String() or
// Err(). Once an error occurs, all subsequent operations are no-ops that
// preserve the error.
//
// Returns the Body for method chaining.
func (b Body) Set(path string, value any) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Set(b.str, path, value)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Set(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// Delete removes a value at the specified JSON path and returns a new Body
//
// Returns the Body for method chaining.
func (b Body) Delete(path string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Delete(b.str, path)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Delete(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// String returns the JSON string representation and any error encountered
// during building
func (b Body) String() (string, error) {
	return b.str, b.err
}

// Err returns any error that occurred during the building process
func (b Body) Err() error {
	return b.err
}

// Res returns the JSON string for further processing with gjson
//
// If an error occurred during building, this returns an empty string; use
// Err() or String() to check for errors.
func (b Body) Res() string {
	if b.err != nil {
		return ""
	}
	return b.str
}

// Bytes returns the JSON byte slice representation and any error
// encountered during building
func (b Body) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return []byte(b.str), nil
}
