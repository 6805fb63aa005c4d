// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates user-supplied data failed validation.
var ErrValidation = errors.New("validation failed")

// ErrConflict indicates the operation conflicts with existing state,
// e.g. deleting a property that still has rooms attached.
var ErrConflict = errors.New("conflict")
