// Package service implements the OTP lifecycle: issuing single-use
// six-digit codes with a bounded lifetime, verifying them, and
// consuming them for password resets.
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"bloodlink/donor-api/mailer"
	"bloodlink/donor-api/model"
	"bloodlink/donor-api/security"
	"bloodlink/donor-api/store"
)

// Mode selects the existence check applied before a code is issued.
// The two OTP endpoints share one lifecycle with opposite checks.
type Mode int

const (
	// ModeSignup refuses to issue a code for an already registered email
	ModeSignup Mode = iota
	// ModeRecovery refuses to issue a code for an unknown email
	ModeRecovery
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUnknownEmail = errors.New("email not registered")
	ErrDispatch     = errors.New("failed to send OTP mail")

	// ErrInvalidCode covers wrong, missing and expired codes alike.
	// Callers never learn which one it was.
	ErrInvalidCode = errors.New("invalid OTP")
)

type OTP struct {
	Store store.Store
	Mail  mailer.Mailer
	Argon *security.ArgonHash
}

func NewOTP(st store.Store, mail mailer.Mailer, argon *security.ArgonHash) *OTP {
	return &OTP{Store: st, Mail: mail, Argon: argon}
}

// GenerateCode returns a uniform random six-digit code as a string.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue generates a fresh code, mails it and stores it, superseding any
// outstanding code for the same email. The mail goes out before the
// code is stored, so a dispatch failure never leaves a code the client
// was told about but never received.
func (s *OTP) Issue(ctx context.Context, email string, mode Mode) (string, error) {
	_, err := s.Store.GetUserByEmail(ctx, email)
	switch mode {
	case ModeSignup:
		if err == nil {
			return "", ErrEmailTaken
		}
		if !errors.Is(err, store.ErrNotFound) {
			return "", err
		}
	case ModeRecovery:
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUnknownEmail
		}
		if err != nil {
			return "", err
		}
	}

	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	text, html := mailer.OTPBodies(code)
	if err := s.Mail.Send([]string{email}, mailer.SubjectOTP, text, html); err != nil {
		return "", fmt.Errorf("%w, %v", ErrDispatch, err)
	}

	err = s.Store.ReplaceOTP(ctx, &model.OTP{
		Email:     email,
		Code:      code,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", err
	}

	return code, nil
}

// Verify consumes the code if it matches. The store's delete is the
// serialization point, so a code verifies at most once.
func (s *OTP) Verify(ctx context.Context, email, code string) error {
	err := s.Store.ConsumeOTP(ctx, email, code)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidCode
	}

	return err
}

// ConsumeForReset verifies the code and replaces the user's password
// hash. The code is burned first; a failed hash update doesn't revive it.
func (s *OTP) ConsumeForReset(ctx context.Context, email, code, newPassword string) error {
	if err := s.Verify(ctx, email, code); err != nil {
		return err
	}

	hash, err := s.Argon.GenerateFromPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.Store.UpdateUserPassword(ctx, email, hash)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUnknownEmail
	}

	return err
}
