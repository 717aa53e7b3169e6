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

// GiveawayRepository implements the repositories.GiveawayRepository interface
type GiveawayRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewGiveawayRepository creates a new GiveawayRepository
func NewGiveawayRepository(db *mongo.Database) repositories.GiveawayRepository {
	return &GiveawayRepository{
		db:         db,
		collection: db.Collection("giveaways"),
	}
}

// NextID advances the giveaway id counter
func (r *GiveawayRepository) NextID(ctx context.Context) (uint64, error) {
	return nextSequence(ctx, r.db, "giveaways")
}

// Create creates a new giveaway
func (r *GiveawayRepository) Create(ctx context.Context, giveaway *models.Giveaway) error {
	giveaway.CreatedAt = time.Now()
	giveaway.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, giveaway)
	return err
}

// FindByID finds a giveaway by its id
func (r *GiveawayRepository) FindByID(ctx context.Context, id uint64) (*models.Giveaway, error) {
	var giveaway models.Giveaway
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&giveaway)
	if err != nil {
		return nil, err
	}
	return &giveaway, nil
}

// Update replaces a giveaway record
func (r *GiveawayRepository) Update(ctx context.Context, giveaway *models.Giveaway) error {
	giveaway.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": giveaway.ID}, giveaway)
	return err
}

// FindByStatus finds giveaways by status with pagination
func (r *GiveawayRepository) FindByStatus(ctx context.Context, status models.GiveawayStatus, page, limit int) ([]*models.Giveaway, error) {
	return r.find(ctx, bson.M{"status": status}, page, limit)
}

// FindAll finds all giveaways with pagination
func (r *GiveawayRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Giveaway, error) {
	return r.find(ctx, bson.M{}, page, limit)
}

func (r *GiveawayRepository) find(ctx context.Context, filter bson.M, page, limit int) ([]*models.Giveaway, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"_id": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var giveaways []*models.Giveaway
	if err := cursor.All(ctx, &giveaways); err != nil {
		return nil, err
	}
	return giveaways, nil
}
