package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/geevapp/geev/internal/models"
	"github.com/geevapp/geev/internal/repositories"
)

// ProfileRepository implements the repositories.ProfileRepository interface.
// Profiles are keyed by account; the unique index on username is the reverse
// mapping and enforces global handle uniqueness.
type ProfileRepository struct {
	collection *mongo.Collection
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *mongo.Database) repositories.ProfileRepository {
	collection := db.Collection("profiles")
	_, _ = collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &ProfileRepository{collection: collection}
}

// FindByAccount finds a profile by account address
func (r *ProfileRepository) FindByAccount(ctx context.Context, account string) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": account}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByUsername resolves a username to its profile
func (r *ProfileRepository) FindByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates or replaces the account's profile. Replacing the document
// frees the previous username automatically.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	profile.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": profile.Account}, profile, opts)
	return err
}
