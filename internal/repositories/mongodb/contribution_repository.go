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

// ContributionRepository implements the repositories.ContributionRepository interface
type ContributionRepository struct {
	collection *mongo.Collection
}

// NewContributionRepository creates a new ContributionRepository
func NewContributionRepository(db *mongo.Database) repositories.ContributionRepository {
	collection := db.Collection("contributions")
	_, _ = collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "requestId", Value: 1}, {Key: "donor", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &ContributionRepository{collection: collection}
}

// Find finds the donor's contribution record for a request
func (r *ContributionRepository) Find(ctx context.Context, requestID uint64, donor string) (*models.Contribution, error) {
	var contribution models.Contribution
	err := r.collection.FindOne(ctx, bson.M{"requestId": requestID, "donor": donor}).Decode(&contribution)
	if err != nil {
		return nil, err
	}
	return &contribution, nil
}

// Upsert stores the donor's cumulative contribution for a request
func (r *ContributionRepository) Upsert(ctx context.Context, contribution *models.Contribution) error {
	filter := bson.M{"requestId": contribution.RequestID, "donor": contribution.Donor}
	update := bson.M{"$set": bson.M{"amount": contribution.Amount, "updatedAt": time.Now()}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}
