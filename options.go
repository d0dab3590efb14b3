// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import (
	"crypto/tls"
	"time"
)

// Client configuration options using the functional options pattern

// Username sets the username for eAPI authentication
func Username(username string) func(*Client) {
	return func(c *Client) {
		c.username = username
	}
}

// Password sets the password for eAPI authentication
func Password(password string) func(*Client) {
	return func(c *Client) {
		c.password = password
	}
}

// Protocol selects the connection variant (default: "https")
//
// Valid values:
//   - "http": plain HTTP
//   - "https": HTTPS
//   - "http_local": plain HTTP to localhost on port 8080
//   - "https_certs": HTTPS with client certificate authentication
//   - "http_session": plain HTTP with session cookie authentication
//   - "https_session": HTTPS with session cookie authentication
//   - "socket": HTTP over a local unix domain socket
//
// Example:
//
//	client, _ := eapi.NewClient("switch1",
//	    eapi.Username("admin"),
//	    eapi.Password("secret"),
//	    eapi.Protocol("https_session"))
func Protocol(name string) func(*Client) {
	return func(c *Client) {
		c.protocol = name
	}
}

// Port sets the eAPI port
//
// If not set, the port defaults by transport: 80 for http, 443 for https
// and https_certs, 8080 for http_local.
func Port(port int) func(*Client) {
	return func(c *Client) {
		c.Port = port
	}
}

// Path sets the eAPI endpoint path (default: "/command-api")
func Path(path string) func(*Client) {
	return func(c *Client) {
		c.Path = path
	}
}

// UnixSocket sets the unix domain socket path for the "socket" transport
// (default: "/var/run/command-api.sock")
func UnixSocket(path string) func(*Client) {
	return func(c *Client) {
		c.SocketPath = path
	}
}

// ConnectTimeout sets the connect/read timeout for each exchange (default: 60s)
//
// The timeout is enforced by the underlying socket layer; there is no
// cooperative cancellation mid-request. A timed out exchange surfaces as a
// ConnectionError.
func ConnectTimeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.Timeout = duration
	}
}

// TLSCert sets the client TLS certificate file path for the "https_certs"
// transport
func TLSCert(certPath string) func(*Client) {
	return func(c *Client) {
		c.tlsCert = certPath
	}
}

// TLSKey sets the client TLS private key file path for the "https_certs"
// transport
func TLSKey(keyPath string) func(*Client) {
	return func(c *Client) {
		c.tlsKey = keyPath
	}
}

// TLSCA sets the CA certificate file path used to validate the server
// certificate on "https_certs" connections
//
// WARNING: Without a CA file the server certificate is not validated; the
// client still presents its own certificate and key for server-side
// authentication. The downgrade is logged at construction.
func TLSCA(caPath string) func(*Client) {
	return func(c *Client) {
		c.tlsCA = caPath
	}
}

// TLSConfig supplies a pre-built TLS verification context for "https"
// connections
//
// When set, the context is used as-is and VerifyCertificate is ignored.
func TLSConfig(config *tls.Config) func(*Client) {
	return func(c *Client) {
		c.tlsConfig = config
	}
}

// VerifyCertificate enforces server certificate verification against the
// system trust store on "https" connections (default: false)
//
// WARNING: The default matches the device API convention: devices ship with
// self-signed certificates, so verification is disabled unless the caller
// supplies a TLSConfig or enables enforcement here. The resulting trust
// downgrade is logged at construction.
//
// Example:
//
//	client, _ := eapi.NewClient("switch1",
//	    eapi.Username("admin"),
//	    eapi.Password("secret"),
//	    eapi.VerifyCertificate(true))
func VerifyCertificate(verify bool) func(*Client) {
	return func(c *Client) {
		c.verifyCertificate = verify
	}
}

// WithLogger configures a custom logger for the client
//
// By default, the client uses NoOpLogger which discards all log messages.
// Use this option to enable logging with DefaultLogger or a custom logger.
//
// All request bodies logged at Debug level are redacted first to remove
// sensitive command input (enable passwords).
//
// Example:
//
//	logger := eapi.NewDefaultLogger(eapi.LogLevelInfo)
//	client, _ := eapi.NewClient("switch1",
//	    eapi.Username("admin"),
//	    eapi.Password("secret"),
//	    eapi.WithLogger(logger))
func WithLogger(logger Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrettyPrintLogs enables/disables JSON pretty printing in logs
//
// When enabled, JSON content in debug logs is formatted for better
// readability. When disabled (default), raw JSON is logged without
// formatting.
//
// This only affects Debug-level log output.
func WithPrettyPrintLogs(enabled bool) func(*Client) {
	return func(c *Client) {
		c.prettyPrintLogs = enabled
	}
}

// Request modifiers for individual operations

// Encoding returns a request modifier that sets the result encoding
//
// Valid encodings: json (default), text
//
// Example:
//
//	res, err := client.Execute(ctx, eapi.Cmds("show running-config"),
//	    eapi.Encoding(eapi.EncodingText))
func Encoding(encoding string) func(*Req) {
	return func(req *Req) {
		req.Encoding = encoding
	}
}

// RequestID returns a request modifier that sets a custom correlation id
//
// The id has no semantic meaning beyond request/response correlation; a
// random token is generated when none is supplied.
func RequestID(id string) func(*Req) {
	return func(req *Req) {
		req.ID = id
	}
}

// AutoComplete returns a request modifier that asks the device to expand
// abbreviated commands
//
// Devices running older software reject the parameter; the resulting error
// message names the unsupported parameter.
func AutoComplete(enabled bool) func(*Req) {
	return func(req *Req) {
		req.AutoComplete = &enabled
	}
}

// ExpandAliases returns a request modifier that asks the device to expand
// configured command aliases
func ExpandAliases(enabled bool) func(*Req) {
	return func(req *Req) {
		req.ExpandAliases = &enabled
	}
}

// Streaming returns a request modifier that sets the eAPI streaming flag
func Streaming(enabled bool) func(*Req) {
	return func(req *Req) {
		req.Streaming = enabled
	}
}

// Timeout returns a request modifier that sets a custom timeout for the
// operation
//
// This timeout takes precedence over the client's ConnectTimeout for the
// one exchange it modifies.
//
// Example:
//
//	res, err := client.Execute(ctx, eapi.Cmds("show tech-support"),
//	    eapi.Timeout(2*time.Minute))
func Timeout(duration time.Duration) func(*Req) {
	return func(req *Req) {
		req.Timeout = duration
	}
}
