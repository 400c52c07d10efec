package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/colign/pkg/buildinfo"
	"github.com/matzehuels/colign/pkg/chunk"
	"github.com/matzehuels/colign/pkg/errors"
	"github.com/matzehuels/colign/pkg/observability"
	"github.com/matzehuels/colign/pkg/options"
	"github.com/matzehuels/colign/pkg/pipeline"
)

// maxBodyBytes caps request bodies. Documents are token lists, not raw
// source, so this is generous.
const maxBodyBytes = 16 << 20

// alignRequest is the shared request body for align and check.
type alignRequest struct {
	// Document is a serialized chunk document (version, tokens).
	Document json.RawMessage `json:"document"`

	// Options partially overrides the default alignment options.
	// Absent categories keep their defaults.
	Options json.RawMessage `json:"options,omitempty"`

	// DryRun reports shifts without persisting the aligned document in
	// the cache. Check requests are always dry runs.
	DryRun bool `json:"dry_run,omitempty"`
}

type alignResponse struct {
	Document json.RawMessage    `json:"document"`
	Shifts   []chunk.Shift      `json:"shifts"`
	Stats    pipeline.Stats     `json:"stats"`
	Cache    pipeline.CacheInfo `json:"cache"`
}

type checkResponse struct {
	Aligned bool           `json:"aligned"`
	Shifts  []chunk.Shift  `json:"shifts"`
	Stats   pipeline.Stats `json:"stats"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
	})
}

func (s *Server) handleAlign(w http.ResponseWriter, r *http.Request) {
	doc, opts, err := s.decodeRequest(r, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), doc, *opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := chunk.Marshal(result.Document)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode document"))
		return
	}
	writeJSON(w, http.StatusOK, alignResponse{
		Document: data,
		Shifts:   result.Shifts,
		Stats:    result.Stats,
		Cache:    result.CacheInfo,
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	doc, opts, err := s.decodeRequest(r, true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), doc, *opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, checkResponse{
		Aligned: len(result.Shifts) == 0,
		Shifts:  result.Shifts,
		Stats:   result.Stats,
	})
}

// decodeRequest parses the shared request body. forceDry makes the run
// a dry run regardless of the request flag.
func (s *Server) decodeRequest(r *http.Request, forceDry bool) (*chunk.Document, *pipeline.Options, error) {
	var req alignRequest
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if len(req.Document) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidDocument, "request has no document")
	}

	doc, err := chunk.Unmarshal(req.Document)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}

	align := options.Default()
	if len(req.Options) > 0 {
		if err := json.Unmarshal(req.Options, align); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidOptions, err, "decode options")
		}
		if err := align.Validate(); err != nil {
			return nil, nil, err
		}
	}

	return doc, &pipeline.Options{Align: align, DryRun: req.DryRun || forceDry}, nil
}

// writeError maps an error code to an HTTP status and writes the
// standard error envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidOptions,
		errors.ErrCodeInvalidDocument, errors.ErrCodeInvalidCategory,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
