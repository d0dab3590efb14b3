// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import (
	"testing"

	"github.com/tidwall/gjson"
)

// TestBody_Set tests fluent payload construction
func TestBody_Set(t *testing.T) {
	body, err := Body{}.
		Set("jsonrpc", "2.0").
		Set("method", "runCmds").
		Set("params.version", 1).
		Set("params.cmds", []string{"show version"}).
		String()
	if err != nil {
		t.Fatalf("String() error: %v", err)
	}

	if got := gjson.Get(body, "jsonrpc").String(); got != "2.0" {
		t.Errorf("jsonrpc = %q, want 2.0", got)
	}
	if got := gjson.Get(body, "params.version").Int(); got != 1 {
		t.Errorf("params.version = %d, want 1", got)
	}
	if got := gjson.Get(body, "params.cmds.0").String(); got != "show version" {
		t.Errorf("params.cmds.0 = %q, want show version", got)
	}
}

// TestBody_SetCommands tests that Command values serialize through their
// custom marshaler inside a Body chain
func TestBody_SetCommands(t *testing.T) {
	commands := []Command{
		{Cmd: "enable", Input: "secret"},
		{Cmd: "show version"},
	}

	body, err := Body{}.Set("params.cmds", commands).String()
	if err != nil {
		t.Fatalf("String() error: %v", err)
	}

	cmds := gjson.Get(body, "params.cmds").Array()
	if len(cmds) != 2 {
		t.Fatalf("params.cmds has %d entries, want 2", len(cmds))
	}
	if got := cmds[0].Get("cmd").String(); got != "enable" {
		t.Errorf("cmds[0].cmd = %q, want enable", got)
	}
	if !cmds[1].Exists() || cmds[1].Type != gjson.String {
		t.Errorf("cmds[1] = %v, want bare string form", cmds[1])
	}
}

// TestBody_Delete tests path removal
func TestBody_Delete(t *testing.T) {
	body, err := Body{}.
		Set("a", 1).
		Set("b", 2).
		Delete("a").
		String()
	if err != nil {
		t.Fatalf("String() error: %v", err)
	}

	if gjson.Get(body, "a").Exists() {
		t.Error("deleted path a still present")
	}
	if got := gjson.Get(body, "b").Int(); got != 2 {
		t.Errorf("b = %d, want 2", got)
	}
}

// TestBody_ErrorPropagation tests that the first error is preserved across
// the chain
func TestBody_ErrorPropagation(t *testing.T) {
	body := Body{}.
		Set("", "invalid").
		Set("a", 1)

	if body.Err() == nil {
		t.Fatal("Err() = nil, want the path error")
	}
	if _, err := body.String(); err == nil {
		t.Error("String() error = nil, want the path error")
	}
	if got := body.Res(); got != "" {
		t.Errorf("Res() = %q, want empty string on error", got)
	}
	if _, err := body.Bytes(); err == nil {
		t.Error("Bytes() error = nil, want the path error")
	}
}

// TestBody_Bytes tests the byte slice accessor
func TestBody_Bytes(t *testing.T) {
	data, err := Body{}.Set("a", 1).Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("Bytes() = %s, want {\"a\":1}", data)
	}
}
