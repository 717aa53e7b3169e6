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

// AccountRepository implements the repositories.AccountRepository interface
type AccountRepository struct {
	collection *mongo.Collection
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *mongo.Database) repositories.AccountRepository {
	collection := db.Collection("accounts")
	_, _ = collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "address", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &AccountRepository{collection: collection}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, account)
	return err
}

// FindByAddress finds an account by its ledger address
func (r *AccountRepository) FindByAddress(ctx context.Context, address string) (*models.Account, error) {
	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"address": address}).Decode(&account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
