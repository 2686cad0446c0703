package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

const (
	ErrorCodeBadRequest   = "bad_request"
	ErrorCodeNotFound     = "not_found"
	ErrorCodeUnavailable  = "engine_unavailable"
	ErrorCodeInternal     = "internal"
	ErrorCodeNoIdentity   = "no_identity"
	ErrorCodeMethodDenied = "method_not_allowed"
)
