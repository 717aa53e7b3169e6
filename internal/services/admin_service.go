package services

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/geevapp/geev/internal/apperrors"
	"github.com/geevapp/geev/internal/models"
	"github.com/geevapp/geev/internal/repositories"
)

// Compile-time check to ensure AdminServiceImpl implements AdminService
var _ AdminService = (*AdminServiceImpl)(nil)

// AdminServiceImpl handles privileged operations: initialization, token
// whitelisting, the pause switch, fee withdrawal, and the emergency escape
// valve.
type AdminServiceImpl struct {
	configRepo repositories.ConfigRepository
	feeRepo    repositories.FeeRepository
	gate       *AccessGate
	transferer TokenTransferer
	events     *EventService
}

// NewAdminService creates a new AdminServiceImpl
func NewAdminService(
	configRepo repositories.ConfigRepository,
	feeRepo repositories.FeeRepository,
	gate *AccessGate,
	transferer TokenTransferer,
	events *EventService,
) *AdminServiceImpl {
	return &AdminServiceImpl{
		configRepo: configRepo,
		feeRepo:    feeRepo,
		gate:       gate,
		transferer: transferer,
		events:     events,
	}
}

// Initialize records the singleton administrator and the fee rate. The
// caller must be the candidate administrator; no other identity may ever
// become administrator afterward.
func (s *AdminServiceImpl) Initialize(ctx context.Context, admin string, feeBps int64) error {
	if feeBps < 0 || feeBps > bpsDenominator {
		return apperrors.Newf(apperrors.KindInvalidAmount, "fee must be between 0 and %d bps", bpsDenominator)
	}

	if _, err := s.configRepo.Admin(ctx); err == nil {
		return apperrors.New(apperrors.KindAlreadyInitialized, "administrator is already set")
	} else if err != mongo.ErrNoDocuments {
		return err
	}

	if err := s.configRepo.SetAdmin(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.New(apperrors.KindAlreadyInitialized, "administrator is already set")
		}
		return err
	}
	if err := s.configRepo.SetFeeBps(ctx, feeBps); err != nil {
		return err
	}
	if err := s.configRepo.SetPaused(ctx, false); err != nil {
		return err
	}

	slog.Info("Contract initialized", "admin", admin, "feeBps", feeBps)
	return nil
}

// AddToken whitelists a token for giveaway creation.
func (s *AdminServiceImpl) AddToken(ctx context.Context, actor, token string) error {
	if _, err := s.gate.RequireAdmin(ctx, actor); err != nil {
		return err
	}
	if err := s.configRepo.AllowToken(ctx, token); err != nil {
		return err
	}

	slog.Info("Token whitelisted", "token", token)
	s.events.Emit(ctx, models.EventTokenAdded, map[string]interface{}{
		"token": token,
	})
	return nil
}

// SetPaused flips the pause switch. While paused, every value-moving
// operation fails CONTRACT_PAUSED.
func (s *AdminServiceImpl) SetPaused(ctx context.Context, actor string, paused bool) error {
	if _, err := s.gate.RequireAdmin(ctx, actor); err != nil {
		return err
	}
	if err := s.configRepo.SetPaused(ctx, paused); err != nil {
		return err
	}
	slog.Info("Pause switch updated", "paused", paused)
	return nil
}

// WithdrawFees drains the accumulated fees for a token to the administrator.
// A zero balance is a no-op, not an error. Returns the withdrawn amount.
func (s *AdminServiceImpl) WithdrawFees(ctx context.Context, actor, token string) (int64, error) {
	admin, err := s.gate.RequireAdmin(ctx, actor)
	if err != nil {
		return 0, err
	}

	amount, err := s.feeRepo.Accumulated(ctx, token)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, nil
	}

	if err := s.transferer.Transfer(ctx, token, s.transferer.EscrowAccount(), admin, amount); err != nil {
		return 0, err
	}
	if err := s.feeRepo.Set(ctx, token, 0); err != nil {
		return 0, err
	}

	slog.Info("Fees withdrawn", "token", token, "amount", amount)
	s.events.Emit(ctx, models.EventFeesWithdrawn, map[string]interface{}{
		"token":  token,
		"amount": amount,
	})
	return amount, nil
}

// AdminWithdraw is the emergency escape valve: it transfers from the escrow
// account to an arbitrary destination, bypassing giveaway and fee
// accounting. No invariant applies beyond administrator authorization.
func (s *AdminServiceImpl) AdminWithdraw(ctx context.Context, actor, token string, amount int64, to string) error {
	if _, err := s.gate.RequireAdmin(ctx, actor); err != nil {
		return err
	}

	if err := s.transferer.Transfer(ctx, token, s.transferer.EscrowAccount(), to, amount); err != nil {
		return err
	}

	slog.Warn("Emergency withdrawal executed", "token", token, "amount", amount, "to", to)
	s.events.Emit(ctx, models.EventEmergencyWithdraw, map[string]interface{}{
		"token":  token,
		"amount": amount,
		"to":     to,
	})
	return nil
}
