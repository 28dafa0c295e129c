package store

import (
	"context"
	"sync"
	"time"

	"bloodlink/donor-api/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory keeps everything in maps keyed by email. It mirrors the Mongo
// implementation's semantics, including OTP expiry on read, and backs
// the test suite.
type Memory struct {
	mu     sync.RWMutex
	users  map[string]model.User
	otps   map[string]model.OTP
	otpTTL time.Duration
}

func NewMemory(otpTTL time.Duration) *Memory {
	return &Memory{
		users:  make(map[string]model.User),
		otps:   make(map[string]model.OTP),
		otpTTL: otpTTL,
	}
}

func (m *Memory) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.Email]; exists {
		return nil, ErrDuplicate
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	m.users[user.Email] = *user
	return user, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[email]
	if !exists {
		return nil, ErrNotFound
	}

	return &user, nil
}

func (m *Memory) UpdateUserProfile(_ context.Context, email string, fields model.ProfileUpdate) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[email]
	if !exists {
		return nil, ErrNotFound
	}

	if fields.Name != "" {
		user.Name = fields.Name
	}
	if fields.Phone != "" {
		user.Phone = fields.Phone
	}
	if fields.Locality != "" {
		user.Locality = fields.Locality
	}
	if fields.BloodGroup != "" {
		user.BloodGroup = fields.BloodGroup
	}

	m.users[email] = user
	return &user, nil
}

func (m *Memory) UpdateUserPassword(_ context.Context, email, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[email]
	if !exists {
		return ErrNotFound
	}

	user.Password = passwordHash
	m.users[email] = user
	return nil
}

func (m *Memory) FindDonors(_ context.Context, filter model.DonorFilter) ([]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	donors := []model.User{}
	for _, user := range m.users {
		if filter.BloodGroup != "" && user.BloodGroup != filter.BloodGroup {
			continue
		}
		if filter.Locality != "" && user.Locality != filter.Locality {
			continue
		}
		if filter.ExcludeEmail != "" && user.Email == filter.ExcludeEmail {
			continue
		}

		donors = append(donors, user)
	}

	return donors, nil
}

func (m *Memory) ReplaceOTP(_ context.Context, otp *model.OTP) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if otp.ID.IsZero() {
		otp.ID = primitive.NewObjectID()
	}

	m.otps[otp.Email] = *otp
	return nil
}

func (m *Memory) ConsumeOTP(_ context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	otp, exists := m.otps[email]
	if !exists || otp.Code != code {
		return ErrNotFound
	}

	if time.Since(otp.CreatedAt) > m.otpTTL {
		delete(m.otps, email)
		return ErrNotFound
	}

	delete(m.otps, email)
	return nil
}
