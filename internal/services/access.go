package services

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/geevapp/geev/internal/apperrors"
	"github.com/geevapp/geev/internal/repositories"
)

// AccessGate resolves the singleton administrator and enforces
// authenticated-caller checks for privileged operations.
type AccessGate struct {
	configRepo repositories.ConfigRepository
}

// NewAccessGate creates a new AccessGate
func NewAccessGate(configRepo repositories.ConfigRepository) *AccessGate {
	return &AccessGate{configRepo: configRepo}
}

// RequireAdmin returns the administrator address after verifying that the
// authenticated actor is the administrator. Fails NOT_INITIALIZED when no
// administrator was ever recorded.
func (g *AccessGate) RequireAdmin(ctx context.Context, actor string) (string, error) {
	admin, err := g.configRepo.Admin(ctx)
	if err == mongo.ErrNoDocuments {
		return "", apperrors.New(apperrors.KindNotInitialized, "administrator is not set")
	}
	if err != nil {
		return "", err
	}
	if actor != admin {
		return "", apperrors.New(apperrors.KindUnauthorized, "administrator authorization required")
	}
	return admin, nil
}

// RequireUnpaused fails CONTRACT_PAUSED while the pause switch is on.
func (g *AccessGate) RequireUnpaused(ctx context.Context) error {
	paused, err := g.configRepo.Paused(ctx)
	if err != nil {
		return err
	}
	if paused {
		return apperrors.New(apperrors.KindContractPaused, "the contract is paused")
	}
	return nil
}
