// Package client provides a Go client for the colign HTTP service.
//
// The client mirrors the service's JSON contract: documents go out as
// serialized token lists and come back aligned, with the shift report
// attached. Transient failures (connection errors, 5xx responses) are
// retried with exponential backoff.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/colign/pkg/chunk"
	"github.com/matzehuels/colign/pkg/errors"
	"github.com/matzehuels/colign/pkg/httputil"
	"github.com/matzehuels/colign/pkg/options"
	"github.com/matzehuels/colign/pkg/pipeline"
)

const (
	httpTimeout = 30 * time.Second

	retryAttempts = 3
	retryDelay    = time.Second
)

// Client talks to a colign service.
type Client struct {
	baseURL string
	http    *http.Client
	delay   time.Duration // initial retry backoff
}

// New creates a client for the service at baseURL
// (e.g. "http://localhost:8080"). A trailing slash is tolerated.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeout},
		delay:   retryDelay,
	}
}

// alignRequest mirrors the service's request body.
type alignRequest struct {
	Document json.RawMessage  `json:"document"`
	Options  *options.Options `json:"options,omitempty"`
	DryRun   bool             `json:"dry_run,omitempty"`
}

type alignResponse struct {
	Document json.RawMessage    `json:"document"`
	Shifts   []chunk.Shift      `json:"shifts"`
	Stats    pipeline.Stats     `json:"stats"`
	Cache    pipeline.CacheInfo `json:"cache"`
}

// CheckResult is the outcome of a check call.
type CheckResult struct {
	Aligned bool           `json:"aligned"`
	Shifts  []chunk.Shift  `json:"shifts"`
	Stats   pipeline.Stats `json:"stats"`
}

// Health is the service liveness report.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// Align submits doc and returns the aligned document with its shift
// report. A nil opts uses the service defaults.
func (c *Client) Align(ctx context.Context, doc *chunk.Document, opts *options.Options) (*pipeline.Result, error) {
	data, err := chunk.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "encode document")
	}

	var resp alignResponse
	if err := c.post(ctx, "/v1/align", alignRequest{Document: data, Options: opts}, &resp); err != nil {
		return nil, err
	}

	aligned, err := chunk.Unmarshal(resp.Document)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode response document")
	}
	return &pipeline.Result{
		Document:  aligned,
		Shifts:    resp.Shifts,
		Stats:     resp.Stats,
		CacheInfo: resp.Cache,
	}, nil
}

// Check reports whether doc is already aligned under opts, without
// changing anything server-side.
func (c *Client) Check(ctx context.Context, doc *chunk.Document, opts *options.Options) (*CheckResult, error) {
	data, err := chunk.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "encode document")
	}

	var resp CheckResult
	if err := c.post(ctx, "/v1/check", alignRequest{Document: data, Options: opts}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health probes the service.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	err := httputil.Retry(ctx, retryAttempts, c.delay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
		if err != nil {
			return err
		}
		return c.do(req, &h)
	})
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// post sends body as JSON and decodes the response into v, retrying
// transient failures.
func (c *Client) post(ctx context.Context, path string, body alignRequest, v any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode request")
	}
	return httputil.Retry(ctx, retryAttempts, c.delay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		return c.do(req, v)
	})
}

func (c *Client) do(req *http.Request, v any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "request %s", req.URL.Path)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode response")
	}
	return nil
}

// serviceError is the service's error envelope.
type serviceError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode >= 500:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "server error: status %d", resp.StatusCode),
		}
	default:
		// The service reports its error code in the body; surface it so
		// callers can match on the same codes as local runs.
		var se serviceError
		if err := json.NewDecoder(resp.Body).Decode(&se); err == nil && se.Error.Code != "" {
			return errors.New(errors.Code(se.Error.Code), "%s", se.Error.Message)
		}
		return errors.New(errors.ErrCodeNetwork, "unexpected status %d", resp.StatusCode)
	}
}
