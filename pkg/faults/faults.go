// Package faults is the domain error taxonomy for the ingestion pipeline.
// Services return coded faults; the transport layer translates codes to HTTP
// statuses. Infrastructure facts (not found, expired, already used) live in
// internal/platform/sentinel and get wrapped into faults at the service edge.
package faults

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a pipeline failure.
type Code string

const (
	// CodeValidation is a local check that failed before any network call.
	CodeValidation Code = "validation"

	// CodeLookup is a failed existence check. Callers recover it as
	// "not found" and must not surface it as a user-facing failure.
	CodeLookup Code = "lookup"

	// CodeStore is a failed metadata upsert. Terminal for the attempt;
	// the metadata must not be assumed applied.
	CodeStore Code = "store"

	// CodeTransfer is a failed blob write. Terminal, and the metadata
	// committed in the prior phase is NOT rolled back.
	CodeTransfer Code = "transfer"

	// CodeLink is a failed association create. Safe to retry because the
	// composite id makes the operation idempotent.
	CodeLink Code = "link"

	// CodeNoSession is a caller protocol violation: blob transfer or skip
	// attempted without a live upload session.
	CodeNoSession Code = "no_active_session"

	CodeBadRequest Code = "bad_request"
	CodeNotFound   Code = "not_found"
	CodeInternal   Code = "internal"
)

// Fault is a coded pipeline error.
type Fault struct {
	Code    Code
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Code, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// New creates a fault with no underlying cause.
func New(code Code, message string) *Fault {
	return &Fault{Code: code, Message: message}
}

// Newf creates a fault with a formatted message.
func Newf(code Code, format string, args ...any) *Fault {
	return &Fault{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Fault {
	return &Fault{Code: code, Message: message, Err: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.Code == code
	}
	return false
}

// CodeOf extracts the code from an error, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var f *Fault
	if errors.As(err, &f) {
		return f.Code
	}
	return CodeInternal
}

// Retryable reports whether re-issuing the failed operation is safe and
// worthwhile. Only link failures qualify: the deterministic association id
// keeps retries idempotent on the store side.
func Retryable(err error) bool {
	return Is(err, CodeLink)
}

// HTTPStatus maps a fault code to the status the transport layer should use.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeNoSession:
		return http.StatusConflict
	case CodeStore, CodeTransfer, CodeLink:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
