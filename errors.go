// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import (
	"fmt"
	"regexp"
)

// Known eAPI error codes with device-defined semantics
//
// Codes 1000-1004 report command execution failures and carry the error text
// of the last command that ran. Code 1005 (insufficient permissions) may echo
// sensitive command input back in its message, which is redacted before the
// message is formatted. The meaning of other codes is unspecified by the
// device API and they are formatted generically.
const (
	CodeInvalidRequest      = 1000
	CodeInvalidCommand      = 1001
	CodeCommandFailed       = 1002
	CodeIncompatibleVersion = 1004
	CodeUnauthorizedCommand = 1005
)

// inputTokenRe matches "input=<value>" tokens inside permission error
// messages. The value may be an enable password or other sensitive command
// argument echoed back by the device.
var inputTokenRe = regexp.MustCompile(`input=\S+`)

// ConnectionError represents a failure to complete an eAPI exchange
//
// Connection errors cover transport and socket level failures (connect
// refused, timeout, TLS handshake), HTTP 401 responses, failed session
// logins, and malformed response bodies. They never carry command-level
// detail because the failure occurred before or without a valid protocol
// exchange.
type ConnectionError struct {
	// Transport is the canonical identity of the transport that failed,
	// e.g. "https://switch1:443//command-api" or "unix:/var/run/command-api.sock"
	Transport string

	// Message is the human-readable failure description
	Message string

	// Commands contains the command batch that was being sent when the
	// failure occurred, if any
	Commands []Command

	// Err is the underlying OS or protocol error, if any
	Err error
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("eapi: %s: %s", e.Transport, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// CommandError represents a failure response returned by the device
//
// The device reports a single error object for the whole batch. Output holds
// one diagnostic entry per command that the device attempted, in order; the
// commands beyond len(Output) were never reached. Use Trace to pair commands
// with their outputs after a mid-batch failure.
type CommandError struct {
	// Code is the numeric eAPI error code
	Code int

	// Message is the unshaped error message from the device, with the
	// version hint appended when applicable
	Message string

	// LastError is the error text of the last command that ran, built from
	// the per-command diagnostic data
	LastError string

	// Output contains the raw JSON diagnostic object for each command the
	// device attempted, aligned with the head of Commands
	Output []string

	// Commands is the command batch that produced the error
	Commands []Command
}

// Error implements the error interface
//
// The format depends on the error code:
//   - 1000, 1001, 1002, 1004: "Error [code]: message [last command error]"
//   - 1005: "Error [code]: message" with input=<value> tokens redacted
//   - anything else: "Error [code]: message"
func (e *CommandError) Error() string {
	switch e.Code {
	case CodeInvalidRequest, CodeInvalidCommand, CodeCommandFailed, CodeIncompatibleVersion:
		return fmt.Sprintf("Error [%d]: %s [%s]", e.Code, e.Message, e.LastError)
	case CodeUnauthorizedCommand:
		msg := inputTokenRe.ReplaceAllString(e.Message, "input=<removed>")
		return fmt.Sprintf("Error [%d]: %s", e.Code, msg)
	default:
		return fmt.Sprintf("Error [%d]: %s", e.Code, e.Message)
	}
}

// TraceEntry pairs one command of a failed batch with its recorded output
type TraceEntry struct {
	// Command that was part of the failed batch
	Command Command

	// Output is the raw JSON diagnostic produced by the command, empty if
	// the command never executed
	Output string

	// Executed reports whether the device reached this command
	Executed bool
}

// Trace reconstructs which commands ran, which didn't, and what each produced
//
// The returned slice has one entry per command in the batch. The first
// len(Output) entries carry the recorded output; the remaining entries are
// marked as never executed.
//
// Example:
//
//	var cmdErr *eapi.CommandError
//	if errors.As(err, &cmdErr) {
//	    for _, entry := range cmdErr.Trace() {
//	        fmt.Printf("%s executed=%v\n", entry.Command.Cmd, entry.Executed)
//	    }
//	}
func (e *CommandError) Trace() []TraceEntry {
	trace := make([]TraceEntry, 0, len(e.Commands))
	for i, cmd := range e.Commands {
		entry := TraceEntry{Command: cmd}
		if i < len(e.Output) {
			entry.Output = e.Output[i]
			entry.Executed = true
		}
		trace = append(trace, entry)
	}
	return trace
}
