package services

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed call to the AI gateway.
type ErrorKind int

const (
	// ErrKindUpstream is any non-success answer or transport failure not
	// covered by a more specific kind.
	ErrKindUpstream ErrorKind = iota
	// ErrKindConfig means no API key is configured; no request was sent.
	ErrKindConfig
	// ErrKindRateLimited mirrors an upstream 429.
	ErrKindRateLimited
	// ErrKindPaymentRequired mirrors an upstream 402.
	ErrKindPaymentRequired
	// ErrKindMissingOutput is a 2xx answer without the expected artifact.
	ErrKindMissingOutput
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindConfig:
		return "config"
	case ErrKindRateLimited:
		return "rate_limited"
	case ErrKindPaymentRequired:
		return "payment_required"
	case ErrKindMissingOutput:
		return "missing_output"
	default:
		return "upstream"
	}
}

// Messages returned to callers. They never include upstream bodies.
const (
	MsgNotConfigured   = "LOVABLE_API_KEY is not configured"
	MsgRateLimited     = "Rate limits exceeded, please try again later."
	MsgPaymentRequired = "Payment required, please add credits to your workspace."
	MsgGatewayError    = "AI gateway error"
	MsgNoImage         = "No image generated"
	MsgNoReply         = "No reply generated"
)

type GatewayError struct {
	Kind       ErrorKind
	StatusCode int    // upstream status, 0 when no response was received
	Message    string // safe to show to the caller
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ai gateway (%s, status %d): %s: %v", e.Kind, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("ai gateway (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// HTTPStatus is the status the proxy answers with for this error.
func (e *GatewayError) HTTPStatus() int {
	switch e.Kind {
	case ErrKindRateLimited:
		return http.StatusTooManyRequests
	case ErrKindPaymentRequired:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

var ErrNotConfigured = &GatewayError{Kind: ErrKindConfig, Message: MsgNotConfigured}

// errorForStatus builds the GatewayError for a non-success upstream status.
func errorForStatus(status int, cause error) *GatewayError {
	switch status {
	case http.StatusTooManyRequests:
		return &GatewayError{Kind: ErrKindRateLimited, StatusCode: status, Message: MsgRateLimited, Err: cause}
	case http.StatusPaymentRequired:
		return &GatewayError{Kind: ErrKindPaymentRequired, StatusCode: status, Message: MsgPaymentRequired, Err: cause}
	default:
		return &GatewayError{Kind: ErrKindUpstream, StatusCode: status, Message: MsgGatewayError, Err: cause}
	}
}

// AsGatewayError reports whether err carries a GatewayError.
func AsGatewayError(err error) (*GatewayError, bool) {
	var gerr *GatewayError
	if errors.As(err, &gerr) {
		return gerr, true
	}
	return nil, false
}

// Custom errors

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }
