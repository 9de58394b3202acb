package submit

import "errors"

var (
	ErrNotSubmittable   = errors.New("submit: form has no action")
	ErrInvalidAction    = errors.New("submit: action must be absolute or root-relative")
	ErrMissingBaseURL   = errors.New("submit: root-relative action needs a base URL")
	ErrUnexpectedStatus = errors.New("submit: unexpected response status")
	ErrRequestFailed    = errors.New("submit: request failed")
	ErrTimeout          = errors.New("submit: request timeout")
)
