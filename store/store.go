// Package store abstracts the document database so that handlers and
// services can run against either MongoDB or an in-memory double.
package store

import (
	"context"
	"errors"

	"bloodlink/donor-api/model"
)

var (
	// ErrNotFound is returned when no document matches a lookup,
	// including OTP lookups whose document already expired.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicate is returned when an insert would violate the
	// unique email constraint.
	ErrDuplicate = errors.New("email already registered")
)

// Store defines every persistence operation the service performs.
// Single-document writes are atomic; nothing here spans documents.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, email string, fields model.ProfileUpdate) (*model.User, error)
	UpdateUserPassword(ctx context.Context, email, passwordHash string) error
	FindDonors(ctx context.Context, filter model.DonorFilter) ([]model.User, error)

	// OTP operations
	// ReplaceOTP upserts the single code document for otp.Email,
	// superseding any outstanding one.
	ReplaceOTP(ctx context.Context, otp *model.OTP) error
	// ConsumeOTP atomically deletes the matching live code. The
	// deletion is the serialization point: of two concurrent calls
	// with the same email and code at most one succeeds, the other
	// gets ErrNotFound.
	ConsumeOTP(ctx context.Context, email, code string) error
}
