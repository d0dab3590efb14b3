// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/sjson"
)

// authStrategy attaches credentials to outgoing eAPI requests
//
// Two strategies exist: a static Basic header computed once at client
// construction, and a session cookie negotiated through a login exchange on
// first use. The client holds exactly one strategy and never branches on its
// concrete type.
type authStrategy interface {
	// authenticate prepares the credential artifact, performing a login
	// exchange if the strategy requires one. It is a no-op once the
	// artifact exists; credentials are negotiated at most once per client
	// lifetime.
	authenticate(ctx context.Context, transport Transport) error

	// header returns the header pair to attach to every request, or
	// ok=false if no credentials are configured
	header() (key, value string, ok bool)
}

// noAuth is used when no credentials are configured, e.g. for unix socket
// connections to the local device
type noAuth struct{}

func (noAuth) authenticate(context.Context, Transport) error { return nil }

func (noAuth) header() (string, string, bool) { return "", "", false }

// basicAuth implements the static HTTP Basic strategy
//
// The Authorization header value is computed once at construction with the
// standard base64 transform; no network I/O is involved.
type basicAuth struct {
	value string
}

func newBasicAuth(username, password string) *basicAuth {
	token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return &basicAuth{value: "Basic " + token}
}

func (a *basicAuth) authenticate(context.Context, Transport) error { return nil }

func (a *basicAuth) header() (string, string, bool) {
	return "Authorization", a.value, true
}

// sessionAuth implements the session cookie strategy
//
// The first request triggers a login exchange (POST /login with a JSON
// username/password body); the Set-Cookie header of a successful login is
// retained and attached to all subsequent requests until the client is
// discarded.
type sessionAuth struct {
	username string
	password string
	cookie   string
}

func newSessionAuth(username, password string) *sessionAuth {
	return &sessionAuth{username: username, password: password}
}

func (a *sessionAuth) authenticate(ctx context.Context, transport Transport) error {
	if a.cookie != "" {
		return nil
	}

	body, err := sjson.Set("", "username", a.username)
	if err != nil {
		return &ConnectionError{Transport: transport.String(), Message: "unable to connect to eAPI", Err: err}
	}
	body, err = sjson.Set(body, "password", a.password)
	if err != nil {
		return &ConnectionError{Transport: transport.String(), Message: "unable to connect to eAPI", Err: err}
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	resp, err := transport.Do(ctx, http.MethodPost, "/login", header, []byte(body))
	if err != nil {
		return &ConnectionError{
			Transport: transport.String(),
			Message:   fmt.Sprintf("socket error during eAPI authentication: %s", err),
			Err:       err,
		}
	}
	if resp.Status != http.StatusOK {
		return &ConnectionError{
			Transport: transport.String(),
			Message:   fmt.Sprintf("%s. %s", resp.Reason, resp.Body),
		}
	}

	cookie := sessionCookie(resp.Header)
	if cookie == "" {
		return &ConnectionError{
			Transport: transport.String(),
			Message:   "login response carried no session cookie",
		}
	}
	a.cookie = cookie

	return nil
}

func (a *sessionAuth) header() (string, string, bool) {
	if a.cookie == "" {
		return "", "", false
	}
	return "Cookie", a.cookie, true
}

// sessionCookie extracts the session cookie pairs from the Set-Cookie
// headers of a login response
func sessionCookie(header http.Header) string {
	resp := http.Response{Header: header}
	pairs := []string{}
	for _, c := range resp.Cookies() {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return strings.Join(pairs, "; ")
}
