package services

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/geevapp/geev/internal/apperrors"
	"github.com/geevapp/geev/internal/config"
	"github.com/geevapp/geev/internal/models"
	"github.com/geevapp/geev/internal/repositories"
	"github.com/geevapp/geev/internal/utils"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl registers ledger accounts and issues the JWTs that back
// the authenticated-caller checks.
type AuthServiceImpl struct {
	accountRepo repositories.AccountRepository
	cfg         *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(accountRepo repositories.AccountRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		accountRepo: accountRepo,
		cfg:         cfg,
	}
}

// Register creates an account for a ledger address.
func (s *AuthServiceImpl) Register(ctx context.Context, address, passcode string) (*models.Account, error) {
	if _, err := s.accountRepo.FindByAddress(ctx, address); err == nil {
		return nil, apperrors.Newf(apperrors.KindAlreadyExists, "account %s already registered", address)
	} else if err != mongo.ErrNoDocuments {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Address:      address,
		PasscodeHash: string(hash),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Newf(apperrors.KindAlreadyExists, "account %s already registered", address)
		}
		return nil, err
	}
	return account, nil
}

// Login verifies the passcode and returns a JWT whose subject is the
// account address.
func (s *AuthServiceImpl) Login(ctx context.Context, address, passcode string) (string, error) {
	account, err := s.accountRepo.FindByAddress(ctx, address)
	if err == mongo.ErrNoDocuments {
		return "", apperrors.New(apperrors.KindInvalidCredentials, "invalid address or passcode")
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasscodeHash), []byte(passcode)); err != nil {
		return "", apperrors.New(apperrors.KindInvalidCredentials, "invalid address or passcode")
	}

	return utils.GenerateJWT(account.Address, s.cfg)
}
