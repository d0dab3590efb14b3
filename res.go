// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import "github.com/tidwall/gjson"

// Res represents a successful eAPI response
//
// The response carries one result entry per command of the batch, in the
// same order. Raw holds the JSON body exactly as received from the device.
type Res struct {
	// Raw is the JSON response body as received from the device
	Raw string
}

// GetValue retrieves a value from the response using a gjson path.
// The path follows gjson syntax for querying JSON structures.
//
// Example paths:
//   - "result.0.modelName" - first command result field
//   - "result.#" - number of result entries
//   - "id" - request correlation id echoed by the device
//
// Returns gjson.Result which can be converted to specific types:
//   - result.String() for string values
//   - result.Int() for integer values
//   - result.Array() for array values
//
// Example:
//
//	res, err := client.Execute(ctx, eapi.Cmds("show version"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	model := res.GetValue("result.0.modelName").String()
func (r Res) GetValue(path string) gjson.Result {
	return gjson.Get(r.Raw, path)
}

// Result returns the ordered list of per-command results
//
// The list has exactly one entry per command in the executed batch.
//
// Example:
//
//	res, _ := client.Execute(ctx, eapi.Cmds("show version", "show hostname"))
//	for _, out := range res.Result() {
//	    fmt.Println(out.Raw)
//	}
func (r Res) Result() []gjson.Result {
	return gjson.Get(r.Raw, "result").Array()
}

// ID returns the request correlation id echoed by the device
func (r Res) ID() string {
	return gjson.Get(r.Raw, "id").String()
}

// Warnings returns the warnings attached to the last result entry, if any
//
// The device reports batch-level warnings on the final per-command result.
func (r Res) Warnings() []string {
	last := gjson.Get(r.Raw, "result.@reverse.0.warnings")
	if !last.Exists() {
		return nil
	}
	warnings := []string{}
	for _, w := range last.Array() {
		warnings = append(warnings, w.String())
	}
	return warnings
}
