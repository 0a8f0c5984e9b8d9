package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates the request was rejected by a business rule.
	ErrValidation = errors.New("validation rejected")
	// ErrConflict indicates the operation lost a race on shared state,
	// for example stock exhausted by a concurrent checkout.
	ErrConflict = errors.New("conflict")
)
