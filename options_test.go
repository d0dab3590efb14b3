// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import (
	"crypto/tls"
	"testing"
	"time"
)

// TestClientOptions tests that each option mutates the expected field
func TestClientOptions(t *testing.T) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}

	client := &Client{}
	for _, opt := range []func(*Client){
		Username("admin"),
		Password("secret"),
		Protocol(ProtocolHTTPSession),
		Port(8080),
		Path("/custom-api"),
		UnixSocket("/tmp/eapi.sock"),
		ConnectTimeout(30 * time.Second),
		TLSCert("/certs/client.crt"),
		TLSKey("/certs/client.key"),
		TLSCA("/certs/ca.crt"),
		TLSConfig(tlsConfig),
		VerifyCertificate(true),
		WithPrettyPrintLogs(true),
	} {
		opt(client)
	}

	if client.username != "admin" || client.password != "secret" {
		t.Errorf("credentials = %q/%q, want admin/secret", client.username, client.password)
	}
	if client.protocol != ProtocolHTTPSession {
		t.Errorf("protocol = %q, want http_session", client.protocol)
	}
	if client.Port != 8080 {
		t.Errorf("Port = %d, want 8080", client.Port)
	}
	if client.Path != "/custom-api" {
		t.Errorf("Path = %q, want /custom-api", client.Path)
	}
	if client.SocketPath != "/tmp/eapi.sock" {
		t.Errorf("SocketPath = %q, want /tmp/eapi.sock", client.SocketPath)
	}
	if client.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", client.Timeout)
	}
	if client.tlsCert != "/certs/client.crt" || client.tlsKey != "/certs/client.key" || client.tlsCA != "/certs/ca.crt" {
		t.Errorf("TLS files = %q/%q/%q", client.tlsCert, client.tlsKey, client.tlsCA)
	}
	if client.tlsConfig != tlsConfig {
		t.Error("tlsConfig not applied")
	}
	if !client.verifyCertificate {
		t.Error("verifyCertificate = false, want true")
	}
	if !client.prettyPrintLogs {
		t.Error("prettyPrintLogs = false, want true")
	}
}

// TestWithLogger tests logger configuration including the nil guard
func TestWithLogger(t *testing.T) {
	logger := NewDefaultLogger(LogLevelDebug)

	client := &Client{logger: &NoOpLogger{}}
	WithLogger(logger)(client)
	if client.logger != logger {
		t.Error("WithLogger did not apply the logger")
	}

	WithLogger(nil)(client)
	if client.logger != logger {
		t.Error("WithLogger(nil) replaced the configured logger")
	}
}

// TestRequestModifiers tests that each modifier mutates the expected field
func TestRequestModifiers(t *testing.T) {
	req := &Req{}
	for _, mod := range []func(*Req){
		Encoding(EncodingText),
		RequestID("req-1"),
		AutoComplete(true),
		ExpandAliases(false),
		Streaming(true),
		Timeout(2 * time.Minute),
	} {
		mod(req)
	}

	if req.Encoding != EncodingText {
		t.Errorf("Encoding = %q, want text", req.Encoding)
	}
	if req.ID != "req-1" {
		t.Errorf("ID = %q, want req-1", req.ID)
	}
	if req.AutoComplete == nil || !*req.AutoComplete {
		t.Errorf("AutoComplete = %v, want true", req.AutoComplete)
	}
	if req.ExpandAliases == nil || *req.ExpandAliases {
		t.Errorf("ExpandAliases = %v, want false", req.ExpandAliases)
	}
	if !req.Streaming {
		t.Error("Streaming = false, want true")
	}
	if req.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", req.Timeout)
	}
}
