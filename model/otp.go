package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP is a short-lived verification code keyed by email. At most one
// document exists per email; issuing a fresh code replaces the old one.
// A TTL index on createdAt removes stale documents, but the removal is
// lazy so lookups must re-check the age themselves.
type OTP struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Email     string             `bson:"email" json:"email"`
	Code      string             `bson:"otp" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
