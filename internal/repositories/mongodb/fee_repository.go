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

// FeeRepository implements the repositories.FeeRepository interface
type FeeRepository struct {
	collection *mongo.Collection
}

// NewFeeRepository creates a new FeeRepository
func NewFeeRepository(db *mongo.Database) repositories.FeeRepository {
	return &FeeRepository{
		collection: db.Collection("fees"),
	}
}

// Accumulated returns the collected fee balance for a token
func (r *FeeRepository) Accumulated(ctx context.Context, token string) (int64, error) {
	var entry models.FeeEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": token}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return entry.Amount, nil
}

// Set stores the fee balance for a token
func (r *FeeRepository) Set(ctx context.Context, token string, amount int64) error {
	update := bson.M{"$set": bson.M{"amount": amount, "updatedAt": time.Now()}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": token}, update, opts)
	return err
}
