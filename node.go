// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"
)

// Convenience layer over Execute. These methods wrap plain command strings
// into batches with enable/config semantics; all protocol behavior lives in
// Execute.

// Enable executes the commands in enable mode and returns the ordered
// per-command results
//
// Example:
//
//	results, err := client.Enable(ctx, []string{"show version"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(results[0].Get("modelName").String())
func (c *Client) Enable(ctx context.Context, commands []string, mods ...func(*Req)) ([]gjson.Result, error) {
	res, err := c.Execute(ctx, Cmds(commands...), mods...)
	if err != nil {
		return nil, err
	}
	return res.Result(), nil
}

// Configure executes the commands in configuration mode
//
// The "configure" command is pushed onto the front of the batch so the
// device enters config mode first; its own result entry is dropped from the
// returned list, which then aligns with the caller's commands.
//
// Example:
//
//	_, err := client.Configure(ctx, []string{
//	    "interface Ethernet1",
//	    "description uplink",
//	})
func (c *Client) Configure(ctx context.Context, commands []string, mods ...func(*Req)) ([]gjson.Result, error) {
	batch := append([]string{"configure"}, commands...)
	results, err := c.Enable(ctx, batch, mods...)
	if err != nil {
		return nil, err
	}
	return results[1:], nil
}

// GetConfig returns the requested device configuration as text
//
// config selects the configuration store, e.g. "running-config" or
// "startup-config"; flags are appended to the show command ("all",
// "detail", ...).
//
// Example:
//
//	cfg, err := client.GetConfig(ctx, "running-config", "all")
func (c *Client) GetConfig(ctx context.Context, config string, flags ...string) (string, error) {
	command := "show " + config
	for _, flag := range flags {
		command += " " + flag
	}
	results, err := c.Enable(ctx, []string{command}, Encoding(EncodingText))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(results[0].Get("output").String()), nil
}

// RunningConfig returns the device running-config, fetching it on first use
// and caching it for the lifetime of the client
func (c *Client) RunningConfig(ctx context.Context) (string, error) {
	if c.runningConfig != "" {
		return c.runningConfig, nil
	}
	config, err := c.GetConfig(ctx, "running-config", "all")
	if err != nil {
		return "", err
	}
	c.runningConfig = config
	return config, nil
}

// StartupConfig returns the device startup-config, fetching it on first use
// and caching it for the lifetime of the client
func (c *Client) StartupConfig(ctx context.Context) (string, error) {
	if c.startupConfig != "" {
		return c.startupConfig, nil
	}
	config, err := c.GetConfig(ctx, "startup-config", "all")
	if err != nil {
		return "", err
	}
	c.startupConfig = config
	return config, nil
}
