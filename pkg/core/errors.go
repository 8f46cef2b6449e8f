package core

import "errors"

// Common errors.
var (
	// ErrNotFound signals that a path does not resolve to a regular file.
	ErrNotFound = errors.New("document not found")

	// ErrTargetExists signals that a rename target is already occupied.
	ErrTargetExists = errors.New("rename target already exists")

	// ErrNotEligible signals that a document failed the eligibility checks.
	ErrNotEligible = errors.New("document is not eligible for renaming")

	// ErrNoBaseLocations signals that renaming is disabled because no base
	// location is configured.
	ErrNoBaseLocations = errors.New("no base locations configured")
)
