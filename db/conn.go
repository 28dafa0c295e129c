// Package db contains things related to MongoDB
package db

import (
	"context"
	"fmt"
	"time"

	"bloodlink/donor-api/store"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func New(ctx context.Context) (*store.Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(viper.GetString("mongo.uri")))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB, %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to reach MongoDB, %w", err)
	}

	database := client.Database(viper.GetString("mongo.database"))

	otpTTL := time.Duration(viper.GetInt("otp.ttl_seconds")) * time.Second
	if err := ensureIndexes(ctx, database, otpTTL); err != nil {
		return nil, fmt.Errorf("failed to create indexes, %w", err)
	}

	return store.NewMongo(database, otpTTL), nil
}

func ensureIndexes(ctx context.Context, database *mongo.Database, otpTTL time.Duration) error {
	_, err := database.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = database.Collection("otps").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// The TTL monitor sweeps lazily, reads still have to
			// filter on createdAt themselves
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(otpTTL.Seconds())),
		},
	})
	return err
}
