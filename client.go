// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Connection variants selectable via the Protocol option
const (
	ProtocolHTTP         = "http"
	ProtocolHTTPS        = "https"
	ProtocolHTTPLocal    = "http_local"
	ProtocolHTTPSCerts   = "https_certs"
	ProtocolHTTPSession  = "http_session"
	ProtocolHTTPSSession = "https_session"
	ProtocolSocket       = "socket"
)

// Default client configuration values
const (
	DefaultProtocol = ProtocolHTTPS
	DefaultTimeout  = 60 * time.Second
)

// keywordArgRe detects device error messages complaining about a request
// parameter the device software does not know. The parameter name is used to
// synthesize a version hint for the caller.
var keywordArgRe = regexp.MustCompile(`unexpected keyword argument '(.*)'`)

// Client is the eAPI protocol engine for one device target
//
// A Client owns one Transport and one authentication strategy, both chosen
// at construction. It builds JSON-RPC request envelopes, sends them, parses
// responses, raises structured errors and redacts sensitive content before
// anything is logged. A Client is constructed once per device and reused
// across many Execute calls; each call performs exactly one synchronous
// round trip over a socket scoped to that call.
//
// A Client is NOT safe for concurrent use. The session cookie and the
// last-error slot are mutable state without internal locking; use one Client
// per goroutine, or serialize access externally. Independent Clients may be
// used concurrently without coordination.
type Client struct {
	// transport performs the request/response exchanges
	transport Transport

	// auth attaches credentials to outgoing requests
	auth authStrategy

	// err records the error of the most recent Execute call.
	// Reset at the start of each Execute, set on failure.
	err error

	// Connection parameters
	Host       string
	Port       int
	Path       string
	SocketPath string
	Timeout    time.Duration

	protocol string
	username string // unexported for security
	password string // unexported for security

	// TLS configuration
	tlsCert           string // unexported for security
	tlsKey            string // unexported for security
	tlsCA             string // unexported for security
	tlsConfig         *tls.Config
	verifyCertificate bool

	// Logging configuration
	logger          Logger
	prettyPrintLogs bool

	// Cached device configuration, see RunningConfig and StartupConfig
	runningConfig string
	startupConfig string
}

// NewClient creates a new eAPI client for the given device host
//
// The client validates its configuration and constructs the transport, but
// performs no network I/O: session login (for the session protocols) happens
// lazily on the first Execute call.
//
// Example:
//
//	client, err := eapi.NewClient(
//	    "192.168.1.1",
//	    eapi.Username("admin"),
//	    eapi.Password("secret"),
//	    eapi.Protocol("https"),
//	)
//	if err != nil {
//	    log.Fatal(err) // Configuration error
//	}
//
//	res, err := client.Execute(ctx, eapi.Cmds("show version"))
//
// Returns a configured Client or an error if configuration validation fails.
func NewClient(host string, opts ...func(*Client)) (*Client, error) {
	client := &Client{
		Host:            host,
		Path:            DefaultHTTPPath,
		SocketPath:      DefaultUnixSocket,
		Timeout:         DefaultTimeout,
		protocol:        DefaultProtocol,
		logger:          &NoOpLogger{},
		prettyPrintLogs: false,
	}

	for _, opt := range opts {
		opt(client)
	}

	if err := client.validateConfig(); err != nil {
		return nil, err
	}

	if err := client.createTransport(); err != nil {
		return nil, err
	}

	client.logger.Info("eAPI client created",
		"transport", client.transport.String(),
		"protocol", client.protocol)

	return client, nil
}

// String returns a printable identity for the client, naming its transport
func (c *Client) String() string {
	return fmt.Sprintf("Client(transport=%s)", c.transport)
}

// Err returns the error recorded by the most recent Execute call, or nil
//
// The slot is reset at the start of each Execute and set when the call
// fails; it stays available until the next Execute.
func (c *Client) Err() error {
	return c.err
}

// validateConfig validates client configuration before transport creation
//
// Validates:
//   - Host is not empty (except for socket and http_local protocols)
//   - Port range (0 selects the protocol default)
//   - Positive timeout
//   - Protocol is a known variant
//   - Client key and certificate are both present for https_certs and the
//     files exist
//
// Returns an error if validation fails.
func (c *Client) validateConfig() error {
	switch c.protocol {
	case ProtocolHTTP, ProtocolHTTPS, ProtocolHTTPLocal, ProtocolHTTPSCerts,
		ProtocolHTTPSession, ProtocolHTTPSSession, ProtocolSocket:
	default:
		return fmt.Errorf("invalid protocol: %s", c.protocol)
	}

	if c.protocol != ProtocolSocket && c.protocol != ProtocolHTTPLocal {
		if strings.TrimSpace(c.Host) == "" {
			return fmt.Errorf("host cannot be empty")
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Port)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	if c.protocol == ProtocolHTTPSCerts {
		if c.tlsKey == "" || c.tlsCert == "" {
			return fmt.Errorf("https_cert connections require both a key file and a cert file, a CA file is also recommended")
		}
		for _, file := range []string{c.tlsKey, c.tlsCert, c.tlsCA} {
			if file == "" {
				continue
			}
			if _, err := os.Stat(file); err != nil {
				// Log full path at Debug level, return only the filename
				// to prevent path disclosure
				c.logger.Debug("TLS file validation failed",
					"path", file,
					"error", err.Error())
				return fmt.Errorf("TLS file not found: %s", filepath.Base(file))
			}
		}
	}

	return nil
}

// createTransport builds the Transport and authentication strategy for the
// configured protocol
//
// PRECONDITION: Configuration must be validated via validateConfig().
func (c *Client) createTransport() error {
	port := c.Port

	switch c.protocol {
	case ProtocolSocket:
		c.transport = newSocketTransport(c.SocketPath, c.Timeout)
		c.auth = noAuth{}

	case ProtocolHTTPLocal:
		if port == 0 {
			port = DefaultHTTPLocalPort
		}
		c.transport = newHTTPTransport("localhost", port, c.Path, c.Timeout)
		c.auth = noAuth{}

	case ProtocolHTTP, ProtocolHTTPSession:
		if port == 0 {
			port = DefaultHTTPPort
		}
		c.transport = newHTTPTransport(c.Host, port, c.Path, c.Timeout)
		c.auth = c.createAuth()
		c.logger.Warn("eAPI transport is not encrypted",
			"transport", c.transport.String(),
			"recommendation", "use https for production")

	case ProtocolHTTPS, ProtocolHTTPSSession:
		if port == 0 {
			port = DefaultHTTPSPort
		}
		tlsConfig := c.tlsConfig
		if tlsConfig == nil && c.verifyCertificate {
			tlsConfig = &tls.Config{} //nolint:gosec // system trust, default verification
		}
		if tlsConfig == nil {
			// No verification context supplied and enforcement not
			// requested: deliberate trust downgrade for self-signed
			// device certificates.
			c.logger.Warn("TLS certificate verification disabled",
				"host", c.Host,
				"security_risk", "Man-in-the-Middle attacks possible",
				"recommendation", "supply a TLSConfig or enable VerifyCertificate")
		}
		c.transport = newHTTPSTransport(c.Host, port, c.Path, c.Timeout, tlsConfig)
		c.auth = c.createAuth()

	case ProtocolHTTPSCerts:
		if port == 0 {
			port = DefaultHTTPSPort
		}
		if c.tlsCA == "" {
			c.logger.Warn("no CA file provided, server certificate validation disabled",
				"host", c.Host,
				"recommendation", "provide a CA file to validate the server certificate")
		}
		transport, err := newCertTransport(c.Host, port, c.Path, c.tlsKey, c.tlsCert, c.tlsCA, c.Timeout)
		if err != nil {
			return err
		}
		c.transport = transport
		c.auth = noAuth{}
	}

	return nil
}

// createAuth chooses the authentication strategy for the configured protocol
func (c *Client) createAuth() authStrategy {
	if c.username == "" && c.password == "" {
		c.logger.Warn("no credentials configured",
			"host", c.Host,
			"message", "device may reject connection")
		return noAuth{}
	}
	switch c.protocol {
	case ProtocolHTTPSession, ProtocolHTTPSSession:
		return newSessionAuth(c.username, c.password)
	default:
		c.logger.Debug("authentication configured",
			"username", c.username,
			"password", "***")
		return newBasicAuth(c.username, c.password)
	}
}

// Execute executes the ordered command batch on the device
//
// The commands are sent in a single JSON-RPC request and executed in order;
// device-side state changes made by earlier commands persist for later
// commands of the same batch. The encoding (json or text) selects how the
// device renders each command result and defaults to json.
//
// Each call performs exactly one blocking round trip: the socket is opened
// for the exchange and closed before Execute returns, on every path. On the
// first call of a session-authenticated client a login exchange runs first
// and its cookie is reused by all subsequent calls.
//
// Failures are returned as one of:
//   - *ConnectionError: transport or socket failure, HTTP 401, failed
//     session login, malformed response body
//   - *CommandError: the device returned an error object; carries the error
//     code, per-command output and the attempted commands
//   - plain error: invalid encoding or empty command batch, detected before
//     any I/O
//
// The returned error is also recorded on the client until the next call,
// see Err.
//
// Example:
//
//	res, err := client.Execute(ctx, eapi.Cmds("show version"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.GetValue("result.0.version").String())
func (c *Client) Execute(ctx context.Context, commands []Command, mods ...func(*Req)) (Res, error) {
	c.err = nil

	res, err := c.execute(ctx, commands, mods...)
	if err != nil {
		c.err = err
	}
	return res, err
}

func (c *Client) execute(ctx context.Context, commands []Command, mods ...func(*Req)) (Res, error) {
	req := &Req{
		Encoding: EncodingJSON,
	}
	for _, mod := range mods {
		mod(req)
	}

	if err := ValidateEncoding(req.Encoding); err != nil {
		return Res{}, fmt.Errorf("execute: %w", err)
	}
	if len(commands) == 0 {
		return Res{}, fmt.Errorf("execute: commands cannot be empty")
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	if err := c.auth.authenticate(ctx, c.transport); err != nil {
		if connErr, ok := err.(*ConnectionError); ok {
			connErr.Commands = commands
		}
		c.logger.Error("eAPI authentication failed",
			"transport", c.transport.String(),
			"error", err.Error())
		return Res{}, err
	}

	data, err := c.buildRequest(commands, req)
	if err != nil {
		return Res{}, fmt.Errorf("execute: failed to build request: %w", err)
	}

	return c.send(ctx, data, commands)
}

// buildRequest serializes the request envelope for a command batch
func (c *Client) buildRequest(commands []Command, req *Req) (string, error) {
	body := Body{}.
		Set("jsonrpc", "2.0").
		Set("method", "runCmds").
		Set("params.version", 1).
		Set("params.cmds", commands).
		Set("params.format", req.Encoding).
		Set("id", req.ID).
		Set("streaming", req.Streaming)
	if req.AutoComplete != nil {
		body = body.Set("params.autoComplete", *req.AutoComplete)
	}
	if req.ExpandAliases != nil {
		body = body.Set("params.expandAliases", *req.ExpandAliases)
	}
	return body.String()
}

// send performs the eAPI exchange and parses the response
//
// Errors are classified per the taxonomy: transport failures, HTTP 401 and
// malformed bodies become ConnectionError; a decoded error object becomes
// CommandError. The attempted command batch is attached to either kind.
func (c *Client) send(ctx context.Context, data string, commands []Command) (Res, error) {
	c.logger.Debug("eAPI request", "content", c.prepareJSONForLogging(sanitizeRequest(data)))

	header := http.Header{}
	header.Set("Content-Type", "application/json-rpc")
	if key, value, ok := c.auth.header(); ok {
		header.Set(key, value)
	}

	resp, err := c.transport.Do(ctx, http.MethodPost, c.Path, header, []byte(data))
	if err != nil {
		c.logger.Error("eAPI exchange failed",
			"transport", c.transport.String(),
			"error", err.Error())
		return Res{}, &ConnectionError{
			Transport: c.transport.String(),
			Message:   fmt.Sprintf("socket error during eAPI connection: %s", err),
			Commands:  commands,
			Err:       err,
		}
	}

	c.logger.Debug("eAPI response status",
		"status", resp.Status,
		"reason", resp.Reason)

	if resp.Status == http.StatusUnauthorized {
		// The body is not parsed; authentication failed before any
		// protocol exchange took place.
		return Res{}, &ConnectionError{
			Transport: c.transport.String(),
			Message:   fmt.Sprintf("%s. %s", resp.Reason, resp.Body),
			Commands:  commands,
		}
	}

	raw := string(resp.Body)
	if !gjson.Valid(raw) {
		// Protocol corruption is collapsed into the connectivity error
		// class: neither is actionable at this layer and the recovery
		// action (re-establish the connection) is identical.
		return Res{}, &ConnectionError{
			Transport: c.transport.String(),
			Message:   "unable to connect to eAPI",
			Commands:  commands,
		}
	}

	c.logger.Debug("eAPI response", "content", c.prepareJSONForLogging(raw))

	if gjson.Get(raw, "error").Exists() {
		cmdErr := parseErrorMessage(raw)
		cmdErr.Commands = commands
		c.logger.Error("eAPI command failed",
			"code", cmdErr.Code,
			"error", cmdErr.Error())
		return Res{}, cmdErr
	}

	return Res{Raw: raw}, nil
}

// parseErrorMessage extracts a CommandError from an eAPI failure response
//
// The error object carries a numeric code and message; when present, the
// data list holds one diagnostic object per command the device attempted.
// The last command's diagnostics are flattened into the LastError text.
// Messages naming an unsupported request parameter get a version hint
// appended, which helps callers toggling feature flags across software
// versions.
func parseErrorMessage(raw string) *CommandError {
	code := int(gjson.Get(raw, "error.code").Int())
	message := gjson.Get(raw, "error.message").String()

	var lastError string
	var output []string

	data := gjson.Get(raw, "error.data")
	if data.Exists() {
		parts := []string{}
		for _, entry := range data.Array() {
			output = append(output, entry.Raw)
			entry.ForEach(func(key, value gjson.Result) bool {
				parts = append(parts, fmt.Sprintf("%s: %s", key.String(), value.Raw))
				return true
			})
		}
		lastError = strings.Join(parts, ", ")
	}

	if match := keywordArgRe.FindStringSubmatch(message); match != nil {
		message = fmt.Sprintf("%s. %s parameter is not supported in this version of EOS.",
			message, match[1])
	}

	return &CommandError{
		Code:      code,
		Message:   message,
		LastError: lastError,
		Output:    output,
	}
}

// prepareJSONForLogging formats JSON for debug logging
//
// Oversized payloads are replaced with a fixed marker instead of being
// processed. Pretty printing is applied only when enabled via
// WithPrettyPrintLogs.
func (c *Client) prepareJSONForLogging(jsonStr string) string {
	if len(jsonStr) > MaxJSONSizeForLogging {
		return JSONTooLargeMessage
	}

	if c.prettyPrintLogs {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(jsonStr), "", "  "); err == nil {
			return buf.String()
		}
		// Fall through on indent failure and log the raw string
	}

	return jsonStr
}
