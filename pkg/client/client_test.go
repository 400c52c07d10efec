package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/colign/internal/api"
	"github.com/matzehuels/colign/pkg/chunk"
	"github.com/matzehuels/colign/pkg/errors"
	"github.com/matzehuels/colign/pkg/options"
	"github.com/matzehuels/colign/pkg/pipeline"
)

func newService(t *testing.T) *httptest.Server {
	t.Helper()
	s := api.NewServer(pipeline.NewRunner(nil, nil, nil), nil)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func misalignedDoc() *chunk.Document {
	d := chunk.NewDocument()
	d.Add(&chunk.Token{OrigLine: 1, Column: 3, Len: 1, Text: "=", Kind: chunk.KindAssign})
	d.Add(&chunk.Token{OrigLine: 2, Column: 8, Len: 1, Text: "=", Kind: chunk.KindAssign})
	return d
}

func TestAlignRoundTrip(t *testing.T) {
	srv := newService(t)
	c := New(srv.URL)

	res, err := c.Align(context.Background(), misalignedDoc(), nil)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(res.Shifts) != 1 {
		t.Fatalf("shifts = %d, want 1", len(res.Shifts))
	}
	if got := res.Document.Line(1)[0].Column; got != 8 {
		t.Errorf("aligned column = %d, want 8", got)
	}
}

func TestCheck(t *testing.T) {
	srv := newService(t)
	c := New(srv.URL)

	res, err := c.Check(context.Background(), misalignedDoc(), nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Aligned {
		t.Error("misaligned document reported as aligned")
	}
	if len(res.Shifts) != 1 {
		t.Errorf("shifts = %d, want 1", len(res.Shifts))
	}
}

func TestAlignServiceErrorCode(t *testing.T) {
	srv := newService(t)
	c := New(srv.URL)

	bad := &options.Options{Assign: options.Category{Span: -1}}
	_, err := c.Align(context.Background(), misalignedDoc(), bad)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Errorf("code = %s, want INVALID_OPTIONS", errors.GetCode(err))
	}
}

func TestHealth(t *testing.T) {
	srv := newService(t)
	c := New(srv.URL)

	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Status != "ok" {
		t.Errorf("status = %q, want ok", h.Status)
	}
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","version":"test","commit":"none"}`))
	}))
	defer stub.Close()

	c := New(stub.URL)
	c.delay = time.Millisecond
	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health after retries: %v", err)
	}
	if h.Status != "ok" {
		t.Errorf("status = %q, want ok", h.Status)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"INVALID_DOCUMENT","message":"bad"}}`))
	}))
	defer stub.Close()

	c := New(stub.URL)
	_, err := c.Align(context.Background(), misalignedDoc(), nil)
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("code = %s, want INVALID_DOCUMENT", errors.GetCode(err))
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 (4xx must not be retried)", calls.Load())
	}
}
