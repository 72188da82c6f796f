package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const userAgent = "discfolio/1.0"

// Source produces a payload.
type Source interface {
	Fetch(ctx context.Context) (Payload, error)
	String() string
}

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP error! status: %d", e.Code)
	}
	return fmt.Sprintf("HTTP error! status: %d: %s", e.Code, e.Body)
}

// PayloadError is returned when the body cannot be used: it does not decode,
// or the endpoint reported an error inside it.
type PayloadError struct {
	Reason string
	Err    error
}

func (e *PayloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *PayloadError) Unwrap() error { return e.Err }

// HTTPSource calls the spreadsheet endpoint with ?action=getAllData.
type HTTPSource struct {
	URL    string
	client *http.Client
}

// NewHTTPSource creates a source with its own client and request timeout.
func NewHTTPSource(endpoint string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{URL: endpoint, client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) String() string { return s.URL }

// Fetch performs one GET and decodes the payload.
func (s *HTTPSource) Fetch(ctx context.Context) (Payload, error) {
	endpoint, err := url.Parse(s.URL)
	if err != nil {
		return Payload{}, fmt.Errorf("parse content url: %w", err)
	}
	query := endpoint.Query()
	query.Set("action", "getAllData")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return Payload{}, fmt.Errorf("build content request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Payload{}, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return decodePayload(resp.Body)
}

// FileSource reads a static JSON export of the payload.
type FileSource struct {
	Path string
}

func (s FileSource) String() string { return s.Path }

// Fetch reads and decodes the file.
func (s FileSource) Fetch(ctx context.Context) (Payload, error) {
	if err := ctx.Err(); err != nil {
		return Payload{}, err
	}
	file, err := os.Open(s.Path)
	if err != nil {
		return Payload{}, fmt.Errorf("open content file: %w", err)
	}
	defer file.Close()
	return decodePayload(file)
}

func decodePayload(r io.Reader) (Payload, error) {
	var payload Payload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return Payload{}, &PayloadError{Reason: "decode payload", Err: err}
	}
	if payload.Error != "" {
		return Payload{}, &PayloadError{Reason: payload.Error}
	}
	return payload, nil
}

// isStatus reports whether err came from a non-2xx response.
func isStatus(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}
