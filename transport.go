// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"
)

// Default eAPI ports and paths
const (
	DefaultHTTPPort       = 80
	DefaultHTTPSPort      = 443
	DefaultHTTPLocalPort  = 8080
	DefaultHTTPSLocalPort = 8443
	DefaultHTTPPath       = "/command-api"
	DefaultUnixSocket     = "/var/run/command-api.sock"
)

// Transport performs a single synchronous eAPI request/response exchange
//
// A Transport owns its underlying socket exclusively. The socket is acquired
// lazily when Do is called and released unconditionally before Do returns,
// on success and on failure, so no connection state survives between
// exchanges.
//
// The String method returns the canonical identity of the transport
// ("scheme://host:port/path" or "unix:path") used in error messages and
// logs. The identity is descriptive only, not an ownership handle.
type Transport interface {
	// Do sends one HTTP request and returns the raw response.
	// Transport and socket level failures are returned as plain errors;
	// the caller classifies them.
	Do(ctx context.Context, method, path string, header http.Header, body []byte) (*RawResponse, error)

	// String returns the canonical identity of the transport
	String() string
}

// RawResponse carries the undecoded result of one transport exchange
type RawResponse struct {
	// Status is the HTTP status code
	Status int

	// Reason is the HTTP reason phrase
	Reason string

	// Header contains the response headers
	Header http.Header

	// Body is the raw response body
	Body []byte
}

// httpTransport implements Transport over TCP or a unix domain socket
//
// All four connection variants (http, https, https with client certificates,
// unix socket) share the same exchange logic; they differ only in how the
// underlying stream is established, expressed through the http.Transport
// dial and TLS configuration. Keep-alives are disabled so every exchange
// opens and closes its own socket.
type httpTransport struct {
	client   *http.Client
	scheme   string
	host     string
	port     int
	identity string
}

// newHTTPTransport creates a plain HTTP transport
func newHTTPTransport(host string, port int, path string, timeout time.Duration) *httpTransport {
	return &httpTransport{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DisableKeepAlives: true,
			},
		},
		scheme:   "http",
		host:     host,
		port:     port,
		identity: fmt.Sprintf("http://%s:%d/%s", host, port, path),
	}
}

// newHTTPSTransport creates an HTTPS transport
//
// If tlsConfig is nil the caller has not supplied a verification context and
// peer certificate verification is disabled. That downgrade is a deliberate
// accommodation for the self-signed certificates devices generate by
// default; the client logs it as a security warning at construction.
func newHTTPSTransport(host string, port int, path string, timeout time.Duration, tlsConfig *tls.Config) *httpTransport {
	if tlsConfig == nil {
		tlsConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // deliberate, see above
	}
	return &httpTransport{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DisableKeepAlives: true,
				TLSClientConfig:   tlsConfig,
			},
		},
		scheme:   "https",
		host:     host,
		port:     port,
		identity: fmt.Sprintf("https://%s:%d/%s", host, port, path),
	}
}

// newCertTransport creates an HTTPS transport with mutual TLS
//
// A client key and certificate are required and are presented to the server
// for authentication. The CA file is optional: without it the server
// certificate is not validated, a documented trade-off carried over from the
// device API conventions, and the client logs a warning at construction.
func newCertTransport(host string, port int, path, keyFile, certFile, caFile string, timeout time.Duration) (*httpTransport, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load client key pair: %w", err)
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
	}
	if caFile != "" {
		pem, err := os.ReadFile(caFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in CA file %s", caFile)
		}
		tlsConfig.RootCAs = pool
	} else {
		tlsConfig.InsecureSkipVerify = true //nolint:gosec // no CA file provided, see above
	}

	return &httpTransport{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DisableKeepAlives: true,
				TLSClientConfig:   tlsConfig,
			},
		},
		scheme:   "https",
		host:     host,
		port:     port,
		identity: fmt.Sprintf("https://%s:%d/%s - %s,%s", host, port, path, keyFile, certFile),
	}, nil
}

// newSocketTransport creates a transport speaking HTTP over a local unix
// domain socket
//
// HTTP framing is identical to the TCP variants; only the stream
// establishment differs. The socket path replaces host:port in the
// transport identity.
func newSocketTransport(socketPath string, timeout time.Duration) *httpTransport {
	return &httpTransport{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DisableKeepAlives: true,
				DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
					var d net.Dialer
					return d.DialContext(ctx, "unix", socketPath)
				},
			},
		},
		scheme:   "http",
		host:     "localhost",
		port:     DefaultHTTPPort,
		identity: "unix:" + socketPath,
	}
}

// Do implements Transport
func (t *httpTransport) Do(ctx context.Context, method, path string, header http.Header, body []byte) (*RawResponse, error) {
	url := fmt.Sprintf("%s://%s:%d%s", t.scheme, t.host, t.port, path)

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.ContentLength = int64(len(body))

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // release on every exit path

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &RawResponse{
		Status: resp.StatusCode,
		Reason: reasonPhrase(resp),
		Header: resp.Header,
		Body:   content,
	}, nil
}

// String implements Transport
func (t *httpTransport) String() string {
	return t.identity
}

// reasonPhrase extracts the reason phrase from the response status line
func reasonPhrase(resp *http.Response) string {
	text := resp.Status
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	if len(text) > len(prefix) && text[:len(prefix)] == prefix {
		return text[len(prefix):]
	}
	return text
}
