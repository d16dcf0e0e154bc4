// Package client contains the HTTP clients the platform uses to talk to its
// collaborating services: the person directory (attendee service), the class
// roster, the room registry and the schedule store.  Each call is bounded by
// a per-call timeout, attempted exactly once, and authorized with a bearer
// credential supplied by the caller.
//
// Failures are split into two kinds.  A business rejection (the service
// answered and said "no") is reported through the result value, never as an
// error.  A transport failure, a non-200 status or an undecodable body is
// reported as an *UnavailableError so callers can tell "your secret is
// wrong" apart from "we could not reach the service that checks secrets".
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// UnavailableError marks a downstream dependency as unreachable or broken
// for the duration of one call.  Service holds the short name used in
// operator-facing messages ("attendee", "class", "room", "schedule").
type UnavailableError struct {
	Service string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s service unavailable: %v", e.Service, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// httpClient is the shared transport for all service clients.  Connection
// reuse matters here because the orchestrator fans out to three services per
// presence submission.
var httpClient = &http.Client{}

// base carries what every service client needs: where the service lives,
// its short name for error reporting, and the per-call timeout.
type base struct {
	service string
	baseURL string
	timeout time.Duration
}

// doJSON performs one request against the service and decodes the JSON
// response into out.  The request body may be nil for GETs.  Any transport
// error, non-200 status or decode failure comes back as *UnavailableError.
func (b base) doJSON(ctx context.Context, method, path, token string, in, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return &UnavailableError{Service: b.service, Err: err}
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return &UnavailableError{Service: b.service, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return &UnavailableError{Service: b.service, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &UnavailableError{Service: b.service, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UnavailableError{Service: b.service, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
