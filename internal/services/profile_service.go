package services

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/geevapp/geev/internal/apperrors"
	"github.com/geevapp/geev/internal/models"
	"github.com/geevapp/geev/internal/repositories"
)

// Compile-time check to ensure ProfileServiceImpl implements ProfileService
var _ ProfileService = (*ProfileServiceImpl)(nil)

// ProfileServiceImpl is the username/profile registry: unique-key CRUD with
// a reverse username lookup, no escrow coupling.
type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
}

// NewProfileService creates a new ProfileServiceImpl
func NewProfileService(profileRepo repositories.ProfileRepository) *ProfileServiceImpl {
	return &ProfileServiceImpl{profileRepo: profileRepo}
}

// SetProfile creates or updates the account's profile. Usernames are unique
// across all accounts; changing the username frees the old handle.
func (s *ProfileServiceImpl) SetProfile(ctx context.Context, account, username, avatarHash string) error {
	owner, err := s.profileRepo.FindByUsername(ctx, username)
	if err != nil && err != mongo.ErrNoDocuments {
		return err
	}
	if owner != nil && owner.Account != account {
		return apperrors.Newf(apperrors.KindUsernameTaken, "username %s is taken", username)
	}

	err = s.profileRepo.Upsert(ctx, &models.Profile{
		Account:    account,
		Username:   username,
		AvatarHash: avatarHash,
	})
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Newf(apperrors.KindUsernameTaken, "username %s is taken", username)
	}
	return err
}

// GetProfile retrieves the profile for an account.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context, account string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByAccount(ctx, account)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.Newf(apperrors.KindNotFound, "no profile for account %s", account)
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// ResolveUsername resolves a username to its owner's address.
func (s *ProfileServiceImpl) ResolveUsername(ctx context.Context, username string) (string, error) {
	profile, err := s.profileRepo.FindByUsername(ctx, username)
	if err == mongo.ErrNoDocuments {
		return "", apperrors.Newf(apperrors.KindNotFound, "username %s is not registered", username)
	}
	if err != nil {
		return "", err
	}
	return profile.Account, nil
}
