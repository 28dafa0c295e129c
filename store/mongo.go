package store

import (
	"context"
	"time"

	"bloodlink/donor-api/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Store on top of two collections, "users" and
// "otps". The otps collection carries a TTL index, but the TTL monitor
// only runs periodically so every OTP read re-checks createdAt against
// the configured lifetime.
type Mongo struct {
	users  *mongo.Collection
	otps   *mongo.Collection
	otpTTL time.Duration
}

func NewMongo(db *mongo.Database, otpTTL time.Duration) *Mongo {
	return &Mongo{
		users:  db.Collection("users"),
		otps:   db.Collection("otps"),
		otpTTL: otpTTL,
	}
}

func (m *Mongo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	res, err := m.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}

	return user, nil
}

func (m *Mongo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := m.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (m *Mongo) UpdateUserProfile(ctx context.Context, email string, fields model.ProfileUpdate) (*model.User, error) {
	set := bson.M{}
	if fields.Name != "" {
		set["name"] = fields.Name
	}
	if fields.Phone != "" {
		set["phone"] = fields.Phone
	}
	if fields.Locality != "" {
		set["locality"] = fields.Locality
	}
	if fields.BloodGroup != "" {
		set["bloodGroup"] = fields.BloodGroup
	}

	if len(set) == 0 {
		return m.GetUserByEmail(ctx, email)
	}

	var user model.User

	err := m.users.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (m *Mongo) UpdateUserPassword(ctx context.Context, email, passwordHash string) error {
	res, err := m.users.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"password": passwordHash}},
	)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (m *Mongo) FindDonors(ctx context.Context, filter model.DonorFilter) ([]model.User, error) {
	query := bson.M{}
	if filter.BloodGroup != "" {
		query["bloodGroup"] = filter.BloodGroup
	}
	if filter.Locality != "" {
		query["locality"] = filter.Locality
	}
	if filter.ExcludeEmail != "" {
		query["email"] = bson.M{"$ne": filter.ExcludeEmail}
	}

	cursor, err := m.users.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	donors := []model.User{}
	if err := cursor.All(ctx, &donors); err != nil {
		return nil, err
	}

	return donors, nil
}

func (m *Mongo) ReplaceOTP(ctx context.Context, otp *model.OTP) error {
	// A single upsert keyed by email, so two concurrent issues for
	// the same address can't leave two documents behind
	_, err := m.otps.ReplaceOne(ctx,
		bson.M{"email": otp.Email},
		otp,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (m *Mongo) ConsumeOTP(ctx context.Context, email, code string) error {
	cutoff := time.Now().Add(-m.otpTTL)

	res, err := m.otps.DeleteOne(ctx, bson.M{
		"email":     email,
		"otp":       code,
		"createdAt": bson.M{"$gt": cutoff},
	})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
