package services

import (
	"context"
	"time"

	"github.com/geevapp/geev/internal/models"
)

// TokenTransferer is the ledger host's token-transfer capability. Transfers
// are synchronous: they either complete or fail the enclosing operation.
type TokenTransferer interface {
	Transfer(ctx context.Context, token, from, to string, amount int64) error
	// EscrowAccount is the address the service custodies deposits under.
	EscrowAccount() string
}

// GiveawayService defines the interface for the giveaway state machine
type GiveawayService interface {
	CreateGiveaway(ctx context.Context, creator, token string, amount int64, title string, duration time.Duration) (uint64, error)
	EnterGiveaway(ctx context.Context, participant string, giveawayID uint64) error
	PickWinner(ctx context.Context, giveawayID uint64) (string, error)
	DistributePrize(ctx context.Context, giveawayID uint64) error
	GetGiveaway(ctx context.Context, giveawayID uint64) (*models.Giveaway, error)
	ListGiveaways(ctx context.Context, page, limit int) ([]*models.Giveaway, error)
	ListParticipants(ctx context.Context, giveawayID uint64, page, limit int) ([]*models.ParticipantEntry, error)
}

// MutualAidService defines the interface for the mutual-aid escrow
type MutualAidService interface {
	CreateRequest(ctx context.Context, creator, token string, goal int64, title string) (uint64, error)
	Donate(ctx context.Context, donor string, requestID uint64, amount int64) error
	CancelRequest(ctx context.Context, creator string, requestID uint64) error
	ClaimRefund(ctx context.Context, donor string, requestID uint64) (int64, error)
	WithdrawAid(ctx context.Context, actor string, requestID uint64, recipient string) error
	GetRequest(ctx context.Context, requestID uint64) (*models.HelpRequest, error)
	ListRequests(ctx context.Context, page, limit int) ([]*models.HelpRequest, error)
}

// AdminService defines the interface for privileged operations
type AdminService interface {
	Initialize(ctx context.Context, admin string, feeBps int64) error
	AddToken(ctx context.Context, actor, token string) error
	SetPaused(ctx context.Context, actor string, paused bool) error
	WithdrawFees(ctx context.Context, actor, token string) (int64, error)
	AdminWithdraw(ctx context.Context, actor, token string, amount int64, to string) error
}

// AuthService defines the interface for account onboarding and login
type AuthService interface {
	Register(ctx context.Context, address, passcode string) (*models.Account, error)
	Login(ctx context.Context, address, passcode string) (string, error)
}

// ProfileService defines the interface for the username/profile registry
type ProfileService interface {
	SetProfile(ctx context.Context, account, username, avatarHash string) error
	GetProfile(ctx context.Context, account string) (*models.Profile, error)
	ResolveUsername(ctx context.Context, username string) (string, error)
}
