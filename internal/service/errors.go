package service

import (
	"errors"
	"strings"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Validation Errors =====
var (
	ErrMissingFields    = errors.New("missing or empty fields")
	ErrTokensRequired   = errors.New("tokens are required")
	ErrCannotFriendSelf = errors.New("cannot add yourself as a friend")
	ErrInvalidBirthdate = errors.New("invalid birthdate")
	ErrInvalidImage     = errors.New("uploaded file is not a supported image")
)

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("user not found or wrong password")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
)

// ===== Friend Errors =====
var (
	ErrFriendNotFound = errors.New("friend not found")
	ErrAlreadyFriends = errors.New("already friends")
)

// ===== Festival Errors =====
var (
	ErrFestivalNotFound = errors.New("festival not found")
)

// ===== Photo Errors =====
var (
	ErrStagingFailed = errors.New("could not stage uploaded photo")
	ErrImageHost     = errors.New("image host upload failed")
)

// MissingFieldsError names the required fields a request left empty.
// It matches ErrMissingFields with errors.Is.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return ErrMissingFields.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingFields
}

func missingFieldsError(fields ...string) error {
	return &MissingFieldsError{Fields: fields}
}
