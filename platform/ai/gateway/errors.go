package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"aptivai_backend/platform/apperr"

	"github.com/sashabaranov/go-openai"
)

// Kind classifies a failed gateway call.
type Kind string

const (
	KindRateLimited   Kind = "rate_limited"
	KindQuotaExceeded Kind = "quota_exceeded"
	KindGateway       Kind = "gateway_error"
)

// User-facing messages for each failure kind.
const (
	msgRateLimited   = "Rate limit exceeded. Please try again in a moment."
	msgQuotaExceeded = "AI usage limit reached. Please contact support."
	msgGateway       = "The AI service is currently unavailable. Please try again."
)

// Error is a classified gateway failure.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Classify maps a go-openai error onto a Kind by HTTP status:
// 429 is RateLimited, 402 is QuotaExceeded, anything else is a GatewayError.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimited, StatusCode: status, Message: msgRateLimited, Cause: err}
	case http.StatusPaymentRequired:
		return &Error{Kind: KindQuotaExceeded, StatusCode: status, Message: msgQuotaExceeded, Cause: err}
	default:
		return &Error{Kind: KindGateway, StatusCode: status, Message: msgGateway, Cause: err}
	}
}

// ToAppErr converts any gateway failure into the matching apperr kind so
// handlers can surface it with httpkit.HandleError.
func ToAppErr(err error) error {
	if err == nil {
		return nil
	}
	classified := Classify(err)

	kind := apperr.KindUpstream
	switch classified.Kind {
	case KindRateLimited:
		kind = apperr.KindRateLimited
	case KindQuotaExceeded:
		kind = apperr.KindQuotaExceeded
	}
	return apperr.Wrap(kind, classified.Message, classified)
}
