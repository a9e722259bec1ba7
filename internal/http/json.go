package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	apperrors "github.com/target/mmk-auth-api/internal/errors"
	obserrors "github.com/target/mmk-auth-api/internal/observability/errors"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// ErrorPayload is the body of every failure response.
type ErrorPayload struct {
	InternalCode int    `json:"internal_code"`
	Detail       string `json:"detail"`
	StatusCode   int    `json:"status_code"`
}

// MessageResponse is the body of signup, signin and signout.
type MessageResponse struct {
	Message string `json:"message"`
}

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Unknown fields are ignored.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{R: r, Err: apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid JSON body")})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams groups parameters for WriteError to adhere to the ≤3 params guideline.
type ErrorParams struct {
	R      *http.Request
	Err    error
	Logger *slog.Logger // Optional; slog.Default() when nil
}

// WriteError maps Err to its status and internal code and writes an ErrorPayload.
// Server errors are logged and reported with full detail; the client only sees
// the generic message.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	status := apperrors.HTTPStatus(p.Err)
	if status >= http.StatusInternalServerError {
		reportServerError(p)
	}
	writePayload(w, p.Err)
}

func writePayload(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	WriteJSON(w, status, ErrorPayload{
		InternalCode: apperrors.InternalCode(err),
		Detail:       apperrors.Detail(err),
		StatusCode:   status,
	})
}

func reportServerError(p ErrorParams) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{"error", p.Err, "error_type", obserrors.Classify(p.Err)}
	if p.R != nil {
		attrs = append(attrs, "method", p.R.Method, "path", p.R.URL.Path)
	}
	logger.Error("request failed", attrs...)

	// Context canceled means the client went away; nothing to report.
	if errors.Is(p.Err, context.Canceled) {
		return
	}
	requestHub(p.R).CaptureException(p.Err)
}

func requestHub(r *http.Request) *sentry.Hub {
	if r != nil {
		if h := sentry.GetHubFromContext(r.Context()); h != nil {
			return h
		}
	}
	return sentry.CurrentHub()
}
