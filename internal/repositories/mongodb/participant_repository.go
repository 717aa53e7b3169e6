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

// ParticipantRepository implements the repositories.ParticipantRepository
// interface. A unique index on (giveawayId, account) backs duplicate
// rejection even if two entries race past HasEntered.
type ParticipantRepository struct {
	collection *mongo.Collection
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *mongo.Database) repositories.ParticipantRepository {
	collection := db.Collection("participants")
	// Best effort; duplicate index creation is a no-op.
	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "giveawayId", Value: 1}, {Key: "account", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "giveawayId", Value: 1}, {Key: "index", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return &ParticipantRepository{collection: collection}
}

// HasEntered reports whether the account already entered the giveaway
func (r *ParticipantRepository) HasEntered(ctx context.Context, giveawayID uint64, account string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"giveawayId": giveawayID, "account": account})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Append writes one entry at its dense index; entries are never mutated
func (r *ParticipantRepository) Append(ctx context.Context, entry *models.ParticipantEntry) error {
	entry.EnteredAt = time.Now()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// FindByIndex resolves a dense index to its entry
func (r *ParticipantRepository) FindByIndex(ctx context.Context, giveawayID uint64, index uint32) (*models.ParticipantEntry, error) {
	var entry models.ParticipantEntry
	err := r.collection.FindOne(ctx, bson.M{"giveawayId": giveawayID, "index": index}).Decode(&entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByGiveaway finds entries for a giveaway in arrival order with pagination
func (r *ParticipantRepository) FindByGiveaway(ctx context.Context, giveawayID uint64, page, limit int) ([]*models.ParticipantEntry, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"index": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"giveawayId": giveawayID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.ParticipantEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
