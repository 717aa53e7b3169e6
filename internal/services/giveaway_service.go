package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/geevapp/geev/internal/apperrors"
	"github.com/geevapp/geev/internal/models"
	"github.com/geevapp/geev/internal/repositories"
	"github.com/geevapp/geev/internal/utils"
)

const bpsDenominator = 10_000

// Compile-time check to ensure GiveawayServiceImpl implements GiveawayService
var _ GiveawayService = (*GiveawayServiceImpl)(nil)

// GiveawayServiceImpl runs the giveaway state machine:
// ACTIVE -> CLAIMABLE -> COMPLETED.
type GiveawayServiceImpl struct {
	giveawayRepo    repositories.GiveawayRepository
	participantRepo repositories.ParticipantRepository
	feeRepo         repositories.FeeRepository
	configRepo      repositories.ConfigRepository
	gate            *AccessGate
	guard           *ReentrancyGuard
	transferer      TokenTransferer
	draw            DrawSource
	events          *EventService
	defaultFeeBps   int64 // applies until an administrator initializes an explicit rate
	now             func() time.Time
}

// NewGiveawayService creates a new GiveawayServiceImpl
func NewGiveawayService(
	giveawayRepo repositories.GiveawayRepository,
	participantRepo repositories.ParticipantRepository,
	feeRepo repositories.FeeRepository,
	configRepo repositories.ConfigRepository,
	gate *AccessGate,
	guard *ReentrancyGuard,
	transferer TokenTransferer,
	draw DrawSource,
	events *EventService,
	defaultFeeBps int64,
) *GiveawayServiceImpl {
	return &GiveawayServiceImpl{
		giveawayRepo:    giveawayRepo,
		participantRepo: participantRepo,
		feeRepo:         feeRepo,
		configRepo:      configRepo,
		gate:            gate,
		guard:           guard,
		transferer:      transferer,
		draw:            draw,
		events:          events,
		defaultFeeBps:   defaultFeeBps,
		now:             time.Now,
	}
}

// CreateGiveaway escrows the principal and creates a new ACTIVE giveaway.
// Returns the assigned id.
func (s *GiveawayServiceImpl) CreateGiveaway(ctx context.Context, creator, token string, amount int64, title string, duration time.Duration) (uint64, error) {
	if err := s.gate.RequireUnpaused(ctx); err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, apperrors.New(apperrors.KindInvalidAmount, "giveaway amount must be positive")
	}
	if duration <= 0 {
		return 0, apperrors.New(apperrors.KindTimeWindow, "giveaway duration must be positive")
	}

	allowed, err := s.configRepo.IsTokenAllowed(ctx, token)
	if err != nil {
		return 0, err
	}
	if !allowed {
		return 0, apperrors.Newf(apperrors.KindTokenNotSupported, "token %s is not whitelisted", token)
	}

	// Escrow the principal before any state is written; a failed transfer
	// leaves no record behind.
	if err := s.transferer.Transfer(ctx, token, creator, s.transferer.EscrowAccount(), amount); err != nil {
		return 0, err
	}

	id, err := s.giveawayRepo.NextID(ctx)
	if err != nil {
		return 0, err
	}

	giveaway := &models.Giveaway{
		ID:               id,
		Creator:          creator,
		Token:            token,
		Amount:           amount,
		Title:            title,
		ParticipantCount: 0,
		EndTime:          s.now().Add(duration),
		Status:           models.GiveawayStatusActive,
	}
	if err := s.giveawayRepo.Create(ctx, giveaway); err != nil {
		return 0, err
	}

	slog.Info("Giveaway created", "giveawayId", id, "creator", creator, "token", token, "amount", amount)
	s.events.Emit(ctx, models.EventGiveawayCreated, map[string]interface{}{
		"giveawayId": id,
		"creator":    creator,
		"token":      token,
		"amount":     amount,
	})
	return id, nil
}

// EnterGiveaway records one entry for the participant. Each account enters a
// giveaway at most once.
func (s *GiveawayServiceImpl) EnterGiveaway(ctx context.Context, participant string, giveawayID uint64) error {
	if err := s.gate.RequireUnpaused(ctx); err != nil {
		return err
	}

	giveaway, err := s.findGiveaway(ctx, giveawayID)
	if err != nil {
		return err
	}
	if giveaway.Status != models.GiveawayStatusActive {
		return apperrors.Newf(apperrors.KindInvalidStatus, "giveaway %d is %s", giveawayID, giveaway.Status)
	}
	if s.now().After(giveaway.EndTime) {
		return apperrors.Newf(apperrors.KindTimeWindow, "giveaway %d has ended", giveawayID)
	}

	entered, err := s.participantRepo.HasEntered(ctx, giveawayID, participant)
	if err != nil {
		return err
	}
	if entered {
		return apperrors.Newf(apperrors.KindDuplicateEntry, "account already entered giveaway %d", giveawayID)
	}

	entry := &models.ParticipantEntry{
		GiveawayID: giveawayID,
		Index:      giveaway.ParticipantCount,
		Account:    participant,
	}
	if err := s.participantRepo.Append(ctx, entry); err != nil {
		return err
	}

	giveaway.ParticipantCount++
	if err := s.giveawayRepo.Update(ctx, giveaway); err != nil {
		return err
	}

	s.events.Emit(ctx, models.EventEntryRecorded, map[string]interface{}{
		"giveawayId": giveawayID,
		"account":    participant,
		"index":      entry.Index,
	})
	return nil
}

// PickWinner draws a winner for an ended giveaway and moves it to CLAIMABLE.
// The winner is set exactly once and never overwritten.
func (s *GiveawayServiceImpl) PickWinner(ctx context.Context, giveawayID uint64) (string, error) {
	giveaway, err := s.findGiveaway(ctx, giveawayID)
	if err != nil {
		return "", err
	}
	if giveaway.Status != models.GiveawayStatusActive {
		return "", apperrors.Newf(apperrors.KindInvalidStatus, "giveaway %d is %s", giveawayID, giveaway.Status)
	}
	if !s.now().After(giveaway.EndTime) {
		return "", apperrors.Newf(apperrors.KindTimeWindow, "giveaway %d is still active", giveawayID)
	}
	if giveaway.ParticipantCount == 0 {
		return "", apperrors.Newf(apperrors.KindNoParticipants, "giveaway %d has no participants", giveawayID)
	}

	seed, err := s.draw.Uint64()
	if err != nil {
		return "", err
	}
	winnerIndex := uint32(seed % uint64(giveaway.ParticipantCount))

	entry, err := s.participantRepo.FindByIndex(ctx, giveawayID, winnerIndex)
	if err == mongo.ErrNoDocuments {
		// Unreachable while the dense-index invariant holds.
		return "", apperrors.Newf(apperrors.KindIndexOutOfRange, "no participant at index %d", winnerIndex)
	}
	if err != nil {
		return "", err
	}

	giveaway.Winner = entry.Account
	giveaway.Status = models.GiveawayStatusClaimable
	if err := s.giveawayRepo.Update(ctx, giveaway); err != nil {
		return "", err
	}

	slog.Info("Winner picked", "giveawayId", giveawayID, "winnerIndex", winnerIndex)
	s.events.Emit(ctx, models.EventWinnerPicked, map[string]interface{}{
		"giveawayId": giveawayID,
		"winner":     entry.Account,
	})
	return entry.Account, nil
}

// DistributePrize pays the net prize to the winner, accrues the fee, and
// moves the giveaway to its terminal COMPLETED status. This is the single
// point where escrowed principal leaves the service, and the terminal status
// guarantees it runs at most once per giveaway.
func (s *GiveawayServiceImpl) DistributePrize(ctx context.Context, giveawayID uint64) error {
	return s.guard.Run(func() error {
		if err := s.gate.RequireUnpaused(ctx); err != nil {
			return err
		}

		giveaway, err := s.findGiveaway(ctx, giveawayID)
		if err != nil {
			return err
		}
		if giveaway.Status != models.GiveawayStatusClaimable {
			return apperrors.Newf(apperrors.KindInvalidStatus, "giveaway %d is %s", giveawayID, giveaway.Status)
		}
		if giveaway.Winner == "" {
			// Unreachable: CLAIMABLE implies a winner was set.
			return apperrors.Newf(apperrors.KindNoParticipants, "giveaway %d has no winner", giveawayID)
		}

		feeBps, err := s.configRepo.FeeBps(ctx)
		if err == mongo.ErrNoDocuments {
			feeBps = s.defaultFeeBps
		} else if err != nil {
			return err
		}

		product, ok := utils.CheckedMul(giveaway.Amount, feeBps)
		if !ok {
			return apperrors.New(apperrors.KindArithmeticOverflow, "fee computation overflowed")
		}
		fee := product / bpsDenominator
		net, ok := utils.CheckedSub(giveaway.Amount, fee)
		if !ok {
			return apperrors.New(apperrors.KindArithmeticOverflow, "net prize computation overflowed")
		}

		if err := s.transferer.Transfer(ctx, giveaway.Token, s.transferer.EscrowAccount(), giveaway.Winner, net); err != nil {
			return err
		}

		accumulated, err := s.feeRepo.Accumulated(ctx, giveaway.Token)
		if err != nil {
			return err
		}
		newAccumulated, ok := utils.CheckedAdd(accumulated, fee)
		if !ok {
			return apperrors.New(apperrors.KindArithmeticOverflow, "fee accumulator overflowed")
		}
		if err := s.feeRepo.Set(ctx, giveaway.Token, newAccumulated); err != nil {
			return err
		}

		giveaway.Status = models.GiveawayStatusCompleted
		if err := s.giveawayRepo.Update(ctx, giveaway); err != nil {
			return err
		}

		slog.Info("Prize distributed", "giveawayId", giveawayID, "winner", giveaway.Winner, "net", net, "fee", fee)
		s.events.Emit(ctx, models.EventPrizeClaimed, map[string]interface{}{
			"giveawayId": giveawayID,
			"winner":     giveaway.Winner,
			"net":        net,
			"fee":        fee,
		})
		return nil
	})
}

// GetGiveaway retrieves a giveaway by id.
func (s *GiveawayServiceImpl) GetGiveaway(ctx context.Context, giveawayID uint64) (*models.Giveaway, error) {
	return s.findGiveaway(ctx, giveawayID)
}

// ListGiveaways retrieves giveaways, newest first.
func (s *GiveawayServiceImpl) ListGiveaways(ctx context.Context, page, limit int) ([]*models.Giveaway, error) {
	return s.giveawayRepo.FindAll(ctx, page, limit)
}

// ListParticipants retrieves a giveaway's entries in arrival order.
func (s *GiveawayServiceImpl) ListParticipants(ctx context.Context, giveawayID uint64, page, limit int) ([]*models.ParticipantEntry, error) {
	if _, err := s.findGiveaway(ctx, giveawayID); err != nil {
		return nil, err
	}
	return s.participantRepo.FindByGiveaway(ctx, giveawayID, page, limit)
}

func (s *GiveawayServiceImpl) findGiveaway(ctx context.Context, giveawayID uint64) (*models.Giveaway, error) {
	giveaway, err := s.giveawayRepo.FindByID(ctx, giveawayID)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.Newf(apperrors.KindNotFound, "giveaway %d not found", giveawayID)
	}
	if err != nil {
		return nil, err
	}
	return giveaway, nil
}
