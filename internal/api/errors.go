package api

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies client errors so callers can branch on failure class
// without string matching.
type Kind int

const (
	// KindNetwork covers transport and connectivity failures: connection
	// refused, timeout, DNS, cancelled context.
	KindNetwork Kind = iota + 1
	// KindAuth covers invalid or expired credentials (HTTP 401/403). The
	// owning application is expected to invalidate its stored credential.
	KindAuth
	// KindServer covers any other non-2xx response, carrying the
	// server-supplied code and message when present.
	KindServer
	// KindValidation covers client-side validation caught before any
	// network call is issued.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the typed error returned by every client call.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, zero for client-side errors
	Code    string // server-supplied error code, when present
	Message string // human-readable description
	Err     error  // wrapped cause, when any
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "api: %s", e.Kind)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " [%s]", e.Code)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func isKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool { return isKind(err, KindNetwork) }

// IsAuth reports whether err means the credential is invalid or expired.
func IsAuth(err error) bool { return isKind(err, KindAuth) }

// IsServer reports whether err is a non-auth server rejection.
func IsServer(err error) bool { return isKind(err, KindServer) }

// IsValidation reports whether err was caught before dispatch.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// errorBody mirrors the console API's error payload.
type errorBody struct {
	Code        string `json:"code"`
	Status      int    `json:"status"`
	Message     string `json:"message"`
	UserMessage string `json:"userMessage"`
	MoreInfo    string `json:"moreInfo"`
}

// BatchError reports a bulk mutation (delete, move, copy, permission grant)
// that did not fully succeed. Partial distinguishes "some items went
// through" from "everything failed", so a view can keep partial progress or
// force a full retry.
type BatchError struct {
	Op        string
	Failed    []string
	Succeeded []string
}

// Partial reports whether at least one item succeeded.
func (e *BatchError) Partial() bool {
	return len(e.Succeeded) > 0
}

func (e *BatchError) Error() string {
	if e.Partial() {
		return fmt.Sprintf("api: %s partially failed (%d of %d items)",
			e.Op, len(e.Failed), len(e.Failed)+len(e.Succeeded))
	}
	return fmt.Sprintf("api: %s failed for all %d items", e.Op, len(e.Failed))
}
