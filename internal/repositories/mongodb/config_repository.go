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

const (
	keyAdmin       = "admin"
	keyFeeBps      = "fee_bps"
	keyPaused      = "paused"
	tokenKeyPrefix = "allowed_token:"
)

// ConfigRepository implements the repositories.ConfigRepository interface.
// Each singleton contract value lives in one document of the system_config
// collection, keyed by name.
type ConfigRepository struct {
	collection *mongo.Collection
}

// NewConfigRepository creates a new ConfigRepository
func NewConfigRepository(db *mongo.Database) repositories.ConfigRepository {
	return &ConfigRepository{
		collection: db.Collection("system_config"),
	}
}

// Admin returns the administrator address, mongo.ErrNoDocuments if unset
func (r *ConfigRepository) Admin(ctx context.Context) (string, error) {
	var doc models.SystemConfig
	err := r.collection.FindOne(ctx, bson.M{"_id": keyAdmin}).Decode(&doc)
	if err != nil {
		return "", err
	}
	address, _ := doc.Value.(string)
	return address, nil
}

// SetAdmin records the administrator. The insert (not upsert) enforces the
// set-once invariant: a second call fails with a duplicate-key error.
func (r *ConfigRepository) SetAdmin(ctx context.Context, address string) error {
	_, err := r.collection.InsertOne(ctx, models.SystemConfig{
		Key:       keyAdmin,
		Value:     address,
		UpdatedAt: time.Now(),
	})
	return err
}

// FeeBps returns the configured fee rate, mongo.ErrNoDocuments if unset
func (r *ConfigRepository) FeeBps(ctx context.Context) (int64, error) {
	var doc models.SystemConfig
	err := r.collection.FindOne(ctx, bson.M{"_id": keyFeeBps}).Decode(&doc)
	if err != nil {
		return 0, err
	}
	switch v := doc.Value.(type) {
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	default:
		return 0, mongo.ErrNoDocuments
	}
}

// SetFeeBps stores the fee rate
func (r *ConfigRepository) SetFeeBps(ctx context.Context, bps int64) error {
	return r.set(ctx, keyFeeBps, bps)
}

// Paused returns the paused flag, false if never set
func (r *ConfigRepository) Paused(ctx context.Context) (bool, error) {
	var doc models.SystemConfig
	err := r.collection.FindOne(ctx, bson.M{"_id": keyPaused}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	paused, _ := doc.Value.(bool)
	return paused, nil
}

// SetPaused stores the paused flag
func (r *ConfigRepository) SetPaused(ctx context.Context, paused bool) error {
	return r.set(ctx, keyPaused, paused)
}

// IsTokenAllowed reports whether the token is whitelisted for giveaways
func (r *ConfigRepository) IsTokenAllowed(ctx context.Context, token string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": tokenKeyPrefix + token})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AllowToken whitelists a token for giveaway creation
func (r *ConfigRepository) AllowToken(ctx context.Context, token string) error {
	return r.set(ctx, tokenKeyPrefix+token, true)
}

func (r *ConfigRepository) set(ctx context.Context, key string, value interface{}) error {
	update := bson.M{"$set": bson.M{"value": value, "updatedAt": time.Now()}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": key}, update, opts)
	return err
}
