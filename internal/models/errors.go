package models

import "errors"

var (
	// ErrMissingField indicates a required request field is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrNegativeAmount indicates a negative monetary amount in the request.
	ErrNegativeAmount = errors.New("negative amount")
)
