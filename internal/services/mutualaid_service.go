package services

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/geevapp/geev/internal/apperrors"
	"github.com/geevapp/geev/internal/models"
	"github.com/geevapp/geev/internal/repositories"
	"github.com/geevapp/geev/internal/utils"
)

// Compile-time check to ensure MutualAidServiceImpl implements MutualAidService
var _ MutualAidService = (*MutualAidServiceImpl)(nil)

// MutualAidServiceImpl runs the mutual-aid escrow: OPEN -> FULLY_FUNDED ->
// DISBURSED, or OPEN -> CANCELLED with per-donor refunds. Refunds require an
// explicit creator cancellation; an unfunded request never becomes refundable
// by time alone.
type MutualAidServiceImpl struct {
	requestRepo      repositories.HelpRequestRepository
	contributionRepo repositories.ContributionRepository
	gate             *AccessGate
	guard            *ReentrancyGuard
	transferer       TokenTransferer
	events           *EventService
}

// NewMutualAidService creates a new MutualAidServiceImpl
func NewMutualAidService(
	requestRepo repositories.HelpRequestRepository,
	contributionRepo repositories.ContributionRepository,
	gate *AccessGate,
	guard *ReentrancyGuard,
	transferer TokenTransferer,
	events *EventService,
) *MutualAidServiceImpl {
	return &MutualAidServiceImpl{
		requestRepo:      requestRepo,
		contributionRepo: contributionRepo,
		gate:             gate,
		guard:            guard,
		transferer:       transferer,
		events:           events,
	}
}

// CreateRequest creates a new OPEN help request. Returns the assigned id.
func (s *MutualAidServiceImpl) CreateRequest(ctx context.Context, creator, token string, goal int64, title string) (uint64, error) {
	if err := s.gate.RequireUnpaused(ctx); err != nil {
		return 0, err
	}
	if goal <= 0 {
		return 0, apperrors.New(apperrors.KindInvalidAmount, "funding goal must be positive")
	}

	id, err := s.requestRepo.NextID(ctx)
	if err != nil {
		return 0, err
	}

	request := &models.HelpRequest{
		ID:      id,
		Creator: creator,
		Token:   token,
		Goal:    goal,
		Title:   title,
		Status:  models.HelpRequestStatusOpen,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return 0, err
	}

	slog.Info("Help request created", "requestId", id, "creator", creator, "goal", goal)
	s.events.Emit(ctx, models.EventRequestCreated, map[string]interface{}{
		"requestId": id,
		"creator":   creator,
		"token":     token,
		"goal":      goal,
	})
	return id, nil
}

// Donate escrows a donation, records it against the donor for refund
// accounting, and flips the request to FULLY_FUNDED on the donation that
// first reaches the goal.
func (s *MutualAidServiceImpl) Donate(ctx context.Context, donor string, requestID uint64, amount int64) error {
	if err := s.gate.RequireUnpaused(ctx); err != nil {
		return err
	}
	if amount <= 0 {
		return apperrors.New(apperrors.KindInvalidAmount, "donation amount must be positive")
	}

	request, err := s.findRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status == models.HelpRequestStatusFullyFunded {
		return apperrors.Newf(apperrors.KindAlreadyFullyFunded, "request %d is already fully funded", requestID)
	}
	if request.Status != models.HelpRequestStatusOpen {
		return apperrors.Newf(apperrors.KindInvalidStatus, "request %d is %s", requestID, request.Status)
	}

	newRaised, ok := utils.CheckedAdd(request.RaisedAmount, amount)
	if !ok {
		return apperrors.New(apperrors.KindArithmeticOverflow, "raised amount overflowed")
	}

	recorded, err := s.donorContribution(ctx, requestID, donor)
	if err != nil {
		return err
	}
	newRecorded, ok := utils.CheckedAdd(recorded, amount)
	if !ok {
		return apperrors.New(apperrors.KindArithmeticOverflow, "contribution record overflowed")
	}

	if err := s.transferer.Transfer(ctx, request.Token, donor, s.transferer.EscrowAccount(), amount); err != nil {
		return err
	}

	if err := s.contributionRepo.Upsert(ctx, &models.Contribution{
		RequestID: requestID,
		Donor:     donor,
		Amount:    newRecorded,
	}); err != nil {
		return err
	}

	request.RaisedAmount = newRaised
	if newRaised >= request.Goal {
		request.Status = models.HelpRequestStatusFullyFunded
	}
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return err
	}

	slog.Info("Donation received", "requestId", requestID, "amount", amount, "raised", newRaised, "status", request.Status)
	s.events.Emit(ctx, models.EventDonationReceived, map[string]interface{}{
		"requestId": requestID,
		"donor":     donor,
		"amount":    amount,
	})
	return nil
}

// CancelRequest marks an OPEN request CANCELLED, unlocking refunds. A fully
// funded request cannot be cancelled: its donations are earmarked for
// disbursement.
func (s *MutualAidServiceImpl) CancelRequest(ctx context.Context, creator string, requestID uint64) error {
	request, err := s.findRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Creator != creator {
		return apperrors.New(apperrors.KindUnauthorized, "only the creator may cancel a request")
	}
	if request.Status != models.HelpRequestStatusOpen {
		return apperrors.Newf(apperrors.KindInvalidStatus, "request %d is %s", requestID, request.Status)
	}

	request.Status = models.HelpRequestStatusCancelled
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return err
	}

	slog.Info("Help request cancelled", "requestId", requestID)
	s.events.Emit(ctx, models.EventRequestCancelled, map[string]interface{}{
		"requestId": requestID,
	})
	return nil
}

// ClaimRefund returns the donor's recorded contribution for a cancelled
// request, exactly once. Returns the refunded amount.
func (s *MutualAidServiceImpl) ClaimRefund(ctx context.Context, donor string, requestID uint64) (int64, error) {
	if err := s.gate.RequireUnpaused(ctx); err != nil {
		return 0, err
	}

	request, err := s.findRequest(ctx, requestID)
	if err != nil {
		return 0, err
	}
	if request.Status != models.HelpRequestStatusCancelled {
		return 0, apperrors.Newf(apperrors.KindInvalidStatus, "request %d is not cancelled", requestID)
	}

	recorded, err := s.donorContribution(ctx, requestID, donor)
	if err != nil {
		return 0, err
	}
	if recorded <= 0 {
		return 0, apperrors.Newf(apperrors.KindNothingToRefund, "no refundable contribution for request %d", requestID)
	}

	// Zero the record before paying out so a concurrent claim finds nothing;
	// a failed payout restores it so the refund stays claimable.
	if err := s.contributionRepo.Upsert(ctx, &models.Contribution{
		RequestID: requestID,
		Donor:     donor,
		Amount:    0,
	}); err != nil {
		return 0, err
	}
	if err := s.transferer.Transfer(ctx, request.Token, s.transferer.EscrowAccount(), donor, recorded); err != nil {
		if restoreErr := s.contributionRepo.Upsert(ctx, &models.Contribution{
			RequestID: requestID,
			Donor:     donor,
			Amount:    recorded,
		}); restoreErr != nil {
			slog.Error("Failed to restore contribution after refund payout failure",
				"requestId", requestID, "donor", donor, "amount", recorded, "error", restoreErr)
		}
		return 0, err
	}

	slog.Info("Refund claimed", "requestId", requestID, "amount", recorded)
	s.events.Emit(ctx, models.EventRefundClaimed, map[string]interface{}{
		"requestId": requestID,
		"donor":     donor,
		"amount":    recorded,
	})
	return recorded, nil
}

// WithdrawAid releases the fully funded escrow to the recipient and moves
// the request to its terminal DISBURSED status, so the payout happens at
// most once. Only the request creator may trigger it.
func (s *MutualAidServiceImpl) WithdrawAid(ctx context.Context, actor string, requestID uint64, recipient string) error {
	return s.guard.Run(func() error {
		if err := s.gate.RequireUnpaused(ctx); err != nil {
			return err
		}

		request, err := s.findRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if request.Status != models.HelpRequestStatusFullyFunded {
			return apperrors.Newf(apperrors.KindInvalidStatus, "request %d is not fully funded", requestID)
		}
		if request.Creator != actor {
			return apperrors.New(apperrors.KindUnauthorized, "only the creator may withdraw aid")
		}

		if err := s.transferer.Transfer(ctx, request.Token, s.transferer.EscrowAccount(), recipient, request.RaisedAmount); err != nil {
			return err
		}

		request.Status = models.HelpRequestStatusDisbursed
		if err := s.requestRepo.Update(ctx, request); err != nil {
			return err
		}

		slog.Info("Aid withdrawn", "requestId", requestID, "recipient", recipient, "amount", request.RaisedAmount)
		s.events.Emit(ctx, models.EventAidWithdrawn, map[string]interface{}{
			"requestId": requestID,
			"recipient": recipient,
			"amount":    request.RaisedAmount,
		})
		return nil
	})
}

// GetRequest retrieves a help request by id.
func (s *MutualAidServiceImpl) GetRequest(ctx context.Context, requestID uint64) (*models.HelpRequest, error) {
	return s.findRequest(ctx, requestID)
}

// ListRequests retrieves help requests, newest first.
func (s *MutualAidServiceImpl) ListRequests(ctx context.Context, page, limit int) ([]*models.HelpRequest, error) {
	return s.requestRepo.FindAll(ctx, page, limit)
}

func (s *MutualAidServiceImpl) findRequest(ctx context.Context, requestID uint64) (*models.HelpRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.Newf(apperrors.KindNotFound, "help request %d not found", requestID)
	}
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (s *MutualAidServiceImpl) donorContribution(ctx context.Context, requestID uint64, donor string) (int64, error) {
	contribution, err := s.contributionRepo.Find(ctx, requestID, donor)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return contribution.Amount, nil
}
