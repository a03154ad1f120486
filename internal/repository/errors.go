package repository

import "errors"

// Not-found errors are shared between "no such record" and "record belongs
// to another tenant" so responses cannot be used to probe other families'
// data.
var (
	ErrTaskNotFound = errors.New("task not found or access denied")

	ErrProjectNotFound = errors.New("project not found or access denied")

	ErrProfileNotFound = errors.New("profile not found")
)
