// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import (
	"encoding/json"
	"time"
)

// Command represents a single CLI command sent to the device
//
// Commands within one batch are ordered; device-side state (e.g. entering
// configuration mode) persists across commands of the same request, so later
// commands may depend on earlier ones.
//
// A command with no Input marshals as a bare JSON string; a command with
// Input marshals as the {"cmd": ..., "input": ...} object form used to pass
// an argument such as the enable password. The input of an enable command is
// redacted before the request is logged.
//
// Example:
//
//	cmds := []eapi.Command{
//	    {Cmd: "enable", Input: "secret"},
//	    {Cmd: "show running-config"},
//	}
type Command struct {
	// Cmd is the CLI command text
	Cmd string

	// Input is an optional argument fed to the command, e.g. the enable
	// password
	Input string
}

// Cmds converts a list of plain command strings into a Command slice
//
// Example:
//
//	res, err := client.Execute(ctx, eapi.Cmds("show version", "show hostname"))
func Cmds(commands ...string) []Command {
	cmds := make([]Command, 0, len(commands))
	for _, c := range commands {
		cmds = append(cmds, Command{Cmd: c})
	}
	return cmds
}

// MarshalJSON implements json.Marshaler
func (c Command) MarshalJSON() ([]byte, error) {
	if c.Input == "" {
		return json.Marshal(c.Cmd)
	}
	return json.Marshal(struct {
		Cmd   string `json:"cmd"`
		Input string `json:"input"`
	}{Cmd: c.Cmd, Input: c.Input})
}

// UnmarshalJSON implements json.Unmarshaler, accepting both the bare string
// and the object form
func (c *Command) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Cmd = s
		c.Input = ""
		return nil
	}
	var obj struct {
		Cmd   string `json:"cmd"`
		Input string `json:"input"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	c.Cmd = obj.Cmd
	c.Input = obj.Input
	return nil
}

// Req represents an eAPI request modifier
//
// This struct is used to apply request-specific options via functional
// modifiers. The command batch is passed directly to Execute.
//
// Example:
//
//	// Execute with text encoding and a custom timeout
//	res, err := client.Execute(ctx, cmds,
//	    eapi.Encoding(eapi.EncodingText),
//	    eapi.Timeout(30*time.Second))
type Req struct {
	// Encoding specifies the result encoding
	// Valid values: json (default), text
	Encoding string

	// ID correlates the response with the request
	// A random opaque token is generated if empty; the value has no
	// meaning beyond correlation
	ID string

	// AutoComplete asks the device to expand abbreviated commands
	// Only included in the request when set
	AutoComplete *bool

	// ExpandAliases asks the device to expand configured command aliases
	// Only included in the request when set
	ExpandAliases *bool

	// Streaming is the eAPI streaming flag, always present on the wire
	Streaming bool

	// Timeout is the request-specific timeout
	// Overrides the client default timeout if set
	Timeout time.Duration
}
