package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geevapp/geev/internal/apperrors"
	"github.com/geevapp/geev/internal/models"
)

type giveawayFixture struct {
	svc          *GiveawayServiceImpl
	giveaways    *fakeGiveawayRepo
	participants *fakeParticipantRepo
	fees         *fakeFeeRepo
	config       *fakeConfigRepo
	transferer   *fakeTransferer
	draw         *fixedDrawSource
	events       *fakeEventRepo
	now          time.Time
}

func newGiveawayFixture() *giveawayFixture {
	f := &giveawayFixture{
		giveaways:    newFakeGiveawayRepo(),
		participants: newFakeParticipantRepo(),
		fees:         newFakeFeeRepo(),
		config:       newFakeConfigRepo(),
		transferer:   newFakeTransferer(),
		draw:         &fixedDrawSource{},
		events:       newFakeEventRepo(),
		now:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.config.allowed["USDC"] = true
	f.svc = NewGiveawayService(
		f.giveaways, f.participants, f.fees, f.config,
		NewAccessGate(f.config), NewReentrancyGuard(),
		f.transferer, f.draw, NewEventService(f.events),
		100,
	)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *giveawayFixture) create(t *testing.T, amount int64, duration time.Duration) uint64 {
	t.Helper()
	id, err := f.svc.CreateGiveaway(context.Background(), "alice", "USDC", amount, "spring drop", duration)
	require.NoError(t, err)
	return id
}

func TestCreateGiveaway(t *testing.T) {
	f := newGiveawayFixture()

	id := f.create(t, 500, time.Hour)
	assert.Equal(t, uint64(1), id)

	giveaway, err := f.svc.GetGiveaway(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.GiveawayStatusActive, giveaway.Status)
	assert.Equal(t, "alice", giveaway.Creator)
	assert.Equal(t, int64(500), giveaway.Amount)
	assert.Equal(t, uint32(0), giveaway.ParticipantCount)
	assert.Equal(t, f.now.Add(time.Hour), giveaway.EndTime)

	// The principal moved into escrow before anything else.
	require.Len(t, f.transferer.transfers, 1)
	assert.Equal(t, transferCall{Token: "USDC", From: "alice", To: "ESCROW", Amount: 500}, f.transferer.transfers[0])

	assert.Contains(t, f.events.types(), models.EventGiveawayCreated)
}

func TestCreateGiveawayAssignsFreshIDs(t *testing.T) {
	f := newGiveawayFixture()

	first := f.create(t, 100, time.Hour)
	second := f.create(t, 100, time.Hour)
	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)
}

func TestCreateGiveawayRejectsUnlistedToken(t *testing.T) {
	f := newGiveawayFixture()

	_, err := f.svc.CreateGiveaway(context.Background(), "alice", "DOGE", 500, "nope", time.Hour)
	assert.True(t, apperrors.IsKind(err, apperrors.KindTokenNotSupported))
	assert.Empty(t, f.transferer.transfers)
}

func TestCreateGiveawayRejectsNonPositiveAmount(t *testing.T) {
	f := newGiveawayFixture()

	_, err := f.svc.CreateGiveaway(context.Background(), "alice", "USDC", 0, "zero", time.Hour)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidAmount))

	_, err = f.svc.CreateGiveaway(context.Background(), "alice", "USDC", -5, "negative", time.Hour)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidAmount))
}

func TestCreateGiveawayRejectsNonPositiveDuration(t *testing.T) {
	f := newGiveawayFixture()

	_, err := f.svc.CreateGiveaway(context.Background(), "alice", "USDC", 500, "instant", 0)
	assert.True(t, apperrors.IsKind(err, apperrors.KindTimeWindow))
}

func TestCreateGiveawayWhilePaused(t *testing.T) {
	f := newGiveawayFixture()
	f.config.paused = true

	_, err := f.svc.CreateGiveaway(context.Background(), "alice", "USDC", 500, "paused", time.Hour)
	assert.True(t, apperrors.IsKind(err, apperrors.KindContractPaused))
	assert.Empty(t, f.transferer.transfers)
}

func TestEnterGiveawayWhilePaused(t *testing.T) {
	f := newGiveawayFixture()
	id := f.create(t, 500, time.Hour)

	f.config.paused = true
	err := f.svc.EnterGiveaway(context.Background(), "bob", id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindContractPaused))
}

func TestEnterGiveawayAssignsDenseIndexes(t *testing.T) {
	f := newGiveawayFixture()
	id := f.create(t, 500, time.Hour)

	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "bob", id))
	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "carol", id))
	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "dave", id))

	giveaway, err := f.svc.GetGiveaway(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), giveaway.ParticipantCount)

	entries, err := f.svc.ListParticipants(context.Background(), id, 1, 20)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, entry := range entries {
		assert.Equal(t, uint32(i), entry.Index)
	}
	assert.Equal(t, "bob", entries[0].Account)
	assert.Equal(t, "carol", entries[1].Account)
	assert.Equal(t, "dave", entries[2].Account)
}

func TestEnterGiveawayRejectsDuplicate(t *testing.T) {
	f := newGiveawayFixture()
	id := f.create(t, 500, time.Hour)

	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "bob", id))
	err := f.svc.EnterGiveaway(context.Background(), "bob", id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindDuplicateEntry))

	giveaway, err := f.svc.GetGiveaway(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), giveaway.ParticipantCount)
}

func TestEnterGiveawayAfterEnd(t *testing.T) {
	f := newGiveawayFixture()
	id := f.create(t, 500, time.Hour)

	f.now = f.now.Add(time.Hour + time.Second)
	err := f.svc.EnterGiveaway(context.Background(), "bob", id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindTimeWindow))
}

func TestEnterGiveawayAtExactEndIsAccepted(t *testing.T) {
	f := newGiveawayFixture()
	id := f.create(t, 500, time.Hour)

	// The window closes strictly after the end instant.
	f.now = f.now.Add(time.Hour)
	assert.NoError(t, f.svc.EnterGiveaway(context.Background(), "bob", id))
}

func TestEnterGiveawayNotFound(t *testing.T) {
	f := newGiveawayFixture()

	err := f.svc.EnterGiveaway(context.Background(), "bob", 42)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestPickWinnerBeforeEnd(t *testing.T) {
	f := newGiveawayFixture()
	id := f.create(t, 500, time.Hour)
	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "bob", id))

	_, err := f.svc.PickWinner(context.Background(), id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindTimeWindow))
}

func TestPickWinnerWithoutParticipants(t *testing.T) {
	f := newGiveawayFixture()
	id := f.create(t, 500, time.Hour)

	f.now = f.now.Add(2 * time.Hour)
	_, err := f.svc.PickWinner(context.Background(), id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNoParticipants))
}

func TestPickWinnerUsesDrawModuloCount(t *testing.T) {
	f := newGiveawayFixture()
	id := f.create(t, 500, time.Hour)
	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "bob", id))
	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "carol", id))
	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "dave", id))

	f.now = f.now.Add(2 * time.Hour)
	f.draw.value = 7 // 7 % 3 == 1

	winner, err := f.svc.PickWinner(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "carol", winner)

	giveaway, err := f.svc.GetGiveaway(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.GiveawayStatusClaimable, giveaway.Status)
	assert.Equal(t, "carol", giveaway.Winner)
}

func TestPickWinnerOnlyOnce(t *testing.T) {
	f := newGiveawayFixture()
	id := f.create(t, 500, time.Hour)
	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "bob", id))

	f.now = f.now.Add(2 * time.Hour)
	_, err := f.svc.PickWinner(context.Background(), id)
	require.NoError(t, err)

	_, err = f.svc.PickWinner(context.Background(), id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidStatus))
}

func TestDistributePrizeDefaultFee(t *testing.T) {
	f := newGiveawayFixture()
	id := f.create(t, 500, time.Hour)
	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "bob", id))

	f.now = f.now.Add(2 * time.Hour)
	_, err := f.svc.PickWinner(context.Background(), id)
	require.NoError(t, err)

	require.NoError(t, f.svc.DistributePrize(context.Background(), id))

	// 100 bps of 500 is 5; the winner receives 495.
	last := f.transferer.transfers[len(f.transferer.transfers)-1]
	assert.Equal(t, transferCall{Token: "USDC", From: "ESCROW", To: "bob", Amount: 495}, last)
	assert.Equal(t, int64(5), f.fees.balances["USDC"])

	giveaway, err := f.svc.GetGiveaway(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.GiveawayStatusCompleted, giveaway.Status)
	assert.Contains(t, f.events.types(), models.EventPrizeClaimed)
}

func TestDistributePrizeFallbackFeeComesFromConstruction(t *testing.T) {
	f := newGiveawayFixture()
	// No administrator has set a rate; the constructed fallback applies.
	f.svc.defaultFeeBps = 200

	id := f.create(t, 500, time.Hour)
	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "bob", id))

	f.now = f.now.Add(2 * time.Hour)
	_, err := f.svc.PickWinner(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, f.svc.DistributePrize(context.Background(), id))

	last := f.transferer.transfers[len(f.transferer.transfers)-1]
	assert.Equal(t, int64(490), last.Amount)
	assert.Equal(t, int64(10), f.fees.balances["USDC"])
}

func TestDistributePrizeConfiguredFee(t *testing.T) {
	f := newGiveawayFixture()
	require.NoError(t, f.config.SetFeeBps(context.Background(), 250))

	id := f.create(t, 10_000, time.Hour)
	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "bob", id))

	f.now = f.now.Add(2 * time.Hour)
	_, err := f.svc.PickWinner(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, f.svc.DistributePrize(context.Background(), id))

	last := f.transferer.transfers[len(f.transferer.transfers)-1]
	assert.Equal(t, int64(9_750), last.Amount)
	assert.Equal(t, int64(250), f.fees.balances["USDC"])
}

func TestDistributePrizeZeroFee(t *testing.T) {
	f := newGiveawayFixture()
	require.NoError(t, f.config.SetFeeBps(context.Background(), 0))

	id := f.create(t, 500, time.Hour)
	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "bob", id))

	f.now = f.now.Add(2 * time.Hour)
	_, err := f.svc.PickWinner(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, f.svc.DistributePrize(context.Background(), id))

	last := f.transferer.transfers[len(f.transferer.transfers)-1]
	assert.Equal(t, int64(500), last.Amount)
	assert.Equal(t, int64(0), f.fees.balances["USDC"])
}

func TestDistributePrizeFeeAccumulatesAcrossGiveaways(t *testing.T) {
	f := newGiveawayFixture()

	for i := 0; i < 2; i++ {
		id := f.create(t, 1_000, time.Hour)
		require.NoError(t, f.svc.EnterGiveaway(context.Background(), "bob", id))
		f.now = f.now.Add(2 * time.Hour)
		_, err := f.svc.PickWinner(context.Background(), id)
		require.NoError(t, err)
		require.NoError(t, f.svc.DistributePrize(context.Background(), id))
	}

	assert.Equal(t, int64(20), f.fees.balances["USDC"])
}

func TestDistributePrizeOnlyOnce(t *testing.T) {
	f := newGiveawayFixture()
	id := f.create(t, 500, time.Hour)
	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "bob", id))

	f.now = f.now.Add(2 * time.Hour)
	_, err := f.svc.PickWinner(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, f.svc.DistributePrize(context.Background(), id))

	err = f.svc.DistributePrize(context.Background(), id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidStatus))

	// No second payout happened.
	payouts := 0
	for _, call := range f.transferer.transfers {
		if call.To == "bob" {
			payouts++
		}
	}
	assert.Equal(t, 1, payouts)
}

func TestDistributePrizeRequiresClaimable(t *testing.T) {
	f := newGiveawayFixture()
	id := f.create(t, 500, time.Hour)

	err := f.svc.DistributePrize(context.Background(), id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidStatus))
}

func TestDistributePrizeWhilePaused(t *testing.T) {
	f := newGiveawayFixture()
	id := f.create(t, 500, time.Hour)
	require.NoError(t, f.svc.EnterGiveaway(context.Background(), "bob", id))

	f.now = f.now.Add(2 * time.Hour)
	_, err := f.svc.PickWinner(context.Background(), id)
	require.NoError(t, err)

	f.config.paused = true
	err = f.svc.DistributePrize(context.Background(), id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindContractPaused))
}

func TestListGiveaways(t *testing.T) {
	f := newGiveawayFixture()
	f.create(t, 100, time.Hour)
	f.create(t, 200, time.Hour)

	giveaways, err := f.svc.ListGiveaways(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Len(t, giveaways, 2)
}
