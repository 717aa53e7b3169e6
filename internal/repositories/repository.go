package repositories

import (
	"context"

	"github.com/geevapp/geev/internal/models"
)

// Implementations return the driver's not-found error (mongo.ErrNoDocuments)
// for absent records; services translate it into the typed NOT_FOUND failure.

// GiveawayRepository defines the interface for giveaway data operations
type GiveawayRepository interface {
	// NextID atomically advances the giveaway counter and returns the new id.
	// Ids are never reused.
	NextID(ctx context.Context) (uint64, error)
	Create(ctx context.Context, giveaway *models.Giveaway) error
	FindByID(ctx context.Context, id uint64) (*models.Giveaway, error)
	Update(ctx context.Context, giveaway *models.Giveaway) error
	FindByStatus(ctx context.Context, status models.GiveawayStatus, page, limit int) ([]*models.Giveaway, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Giveaway, error)
}

// ParticipantRepository defines the interface for the per-giveaway entrant
// index: an existence flag per (giveaway, account) and a dense index entry
// per accepted entry.
type ParticipantRepository interface {
	HasEntered(ctx context.Context, giveawayID uint64, account string) (bool, error)
	Append(ctx context.Context, entry *models.ParticipantEntry) error
	FindByIndex(ctx context.Context, giveawayID uint64, index uint32) (*models.ParticipantEntry, error)
	FindByGiveaway(ctx context.Context, giveawayID uint64, page, limit int) ([]*models.ParticipantEntry, error)
}

// FeeRepository defines the interface for the per-token fee accumulator.
type FeeRepository interface {
	// Accumulated returns the collected fee balance for a token, zero if the
	// token has never accrued fees.
	Accumulated(ctx context.Context, token string) (int64, error)
	Set(ctx context.Context, token string, amount int64) error
}

// HelpRequestRepository defines the interface for help request data operations
type HelpRequestRepository interface {
	NextID(ctx context.Context) (uint64, error)
	Create(ctx context.Context, request *models.HelpRequest) error
	FindByID(ctx context.Context, id uint64) (*models.HelpRequest, error)
	Update(ctx context.Context, request *models.HelpRequest) error
	FindAll(ctx context.Context, page, limit int) ([]*models.HelpRequest, error)
}

// ContributionRepository defines the interface for per-donor contribution
// records used for refund accounting.
type ContributionRepository interface {
	Find(ctx context.Context, requestID uint64, donor string) (*models.Contribution, error)
	Upsert(ctx context.Context, contribution *models.Contribution) error
}

// ConfigRepository defines the interface for singleton contract state:
// administrator, paused flag, fee rate, and the token whitelist.
type ConfigRepository interface {
	Admin(ctx context.Context) (string, error)
	// SetAdmin stores the administrator. It fails if one is already recorded;
	// the set-once invariant lives here, not in the caller.
	SetAdmin(ctx context.Context, address string) error
	FeeBps(ctx context.Context) (int64, error)
	SetFeeBps(ctx context.Context, bps int64) error
	Paused(ctx context.Context) (bool, error)
	SetPaused(ctx context.Context, paused bool) error
	IsTokenAllowed(ctx context.Context, token string) (bool, error)
	AllowToken(ctx context.Context, token string) error
}

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	FindByAccount(ctx context.Context, account string) (*models.Profile, error)
	FindByUsername(ctx context.Context, username string) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
}

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByAddress(ctx context.Context, address string) (*models.Account, error)
}

// EventRepository defines the interface for emitted event records
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindRecent(ctx context.Context, page, limit int) ([]*models.Event, error)
}
