// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package eapi provides a simple, fluent API for executing CLI commands on
// network devices through eAPI, the JSON-RPC-over-HTTP(S) management
// interface.
//
// The library implements the client side of the protocol: it builds request
// envelopes, transmits them over one of several transports (HTTP, HTTPS,
// HTTPS with client certificates, unix domain socket), parses success and
// error responses into a uniform result or a structured error, and redacts
// sensitive command input before anything is logged.
//
// # Quick Start
//
// Create a client and execute commands:
//
//	client, err := eapi.NewClient(
//	    "192.168.1.1",
//	    eapi.Username("admin"),
//	    eapi.Password("secret"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	res, err := client.Execute(ctx, eapi.Cmds("show version"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Parse the response using gjson paths
//	model := res.GetValue("result.0.modelName").String()
//	fmt.Println("Model:", model)
//
// # Command Batches
//
// Commands of one Execute call form an ordered batch sent in a single
// request. Device-side state persists across the batch, so entering
// configuration mode with one command affects the commands after it. The
// Enable and Configure helpers wrap the common patterns:
//
//	_, err = client.Configure(ctx, []string{
//	    "interface Ethernet1",
//	    "description uplink",
//	})
//
// A command carrying sensitive input, such as the enable password, uses the
// object form and is redacted before request bodies reach the log:
//
//	cmds := []eapi.Command{
//	    {Cmd: "enable", Input: "enable-secret"},
//	    {Cmd: "show running-config"},
//	}
//	res, err = client.Execute(ctx, cmds, eapi.Encoding(eapi.EncodingText))
//
// # Transports and Authentication
//
// The Protocol option selects the connection variant: http, https (default),
// http_local, https_certs (mutual TLS), http_session/https_session (session
// cookie authentication) and socket (unix domain socket on the device
// itself). Credentials are attached either as a static Basic header or, for
// the session variants, as a cookie obtained from a single login exchange on
// first use.
//
// # Error Handling
//
// Failures are returned as structured errors. A *ConnectionError covers
// transport failures, HTTP 401 and malformed bodies; a *CommandError carries
// the device error code and the per-command output of a partially executed
// batch:
//
//	var cmdErr *eapi.CommandError
//	if errors.As(err, &cmdErr) {
//	    for _, entry := range cmdErr.Trace() {
//	        fmt.Printf("%s executed=%v\n", entry.Command.Cmd, entry.Executed)
//	    }
//	}
//
// # Thread Safety
//
// A Client is not safe for concurrent use: the session cookie and the
// last-error slot are mutable state without internal locking. Use one Client
// per goroutine; independent Clients may be used concurrently.
//
// # References
//
//   - gjson: https://github.com/tidwall/gjson
//   - sjson: https://github.com/tidwall/sjson
package eapi
