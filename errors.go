package main

import "errors"

// Validation failures surfaced to the caller. Every failed operation leaves
// prior state intact; there is no partial mutation on failure.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrAlreadySwiped      = errors.New("profile already swiped")
	ErrMatchNotFound      = errors.New("match not found")
	ErrInvalidTransition  = errors.New("match already resolved")
)
