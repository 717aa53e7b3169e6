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

// HelpRequestRepository implements the repositories.HelpRequestRepository interface
type HelpRequestRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewHelpRequestRepository creates a new HelpRequestRepository
func NewHelpRequestRepository(db *mongo.Database) repositories.HelpRequestRepository {
	return &HelpRequestRepository{
		db:         db,
		collection: db.Collection("help_requests"),
	}
}

// NextID advances the help request id counter
func (r *HelpRequestRepository) NextID(ctx context.Context) (uint64, error) {
	return nextSequence(ctx, r.db, "help_requests")
}

// Create creates a new help request
func (r *HelpRequestRepository) Create(ctx context.Context, request *models.HelpRequest) error {
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, request)
	return err
}

// FindByID finds a help request by its id
func (r *HelpRequestRepository) FindByID(ctx context.Context, id uint64) (*models.HelpRequest, error) {
	var request models.HelpRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Update replaces a help request record
func (r *HelpRequestRepository) Update(ctx context.Context, request *models.HelpRequest) error {
	request.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": request.ID}, request)
	return err
}

// FindAll finds all help requests with pagination
func (r *HelpRequestRepository) FindAll(ctx context.Context, page, limit int) ([]*models.HelpRequest, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"_id": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []*models.HelpRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}
