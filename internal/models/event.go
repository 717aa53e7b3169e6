package models

import "time"

// Event types emitted by the engines. Events are fire-and-forget records
// consumed by an external indexer.
const (
	EventGiveawayCreated   = "GIVEAWAY_CREATED"
	EventEntryRecorded     = "ENTRY_RECORDED"
	EventWinnerPicked      = "WINNER_PICKED"
	EventPrizeClaimed      = "PRIZE_CLAIMED"
	EventFeesWithdrawn     = "FEES_WITHDRAWN"
	EventEmergencyWithdraw = "EMERGENCY_WITHDRAW"
	EventTokenAdded        = "TOKEN_ADDED"
	EventDonationReceived  = "DONATION_RECEIVED"
	EventRequestCreated    = "REQUEST_CREATED"
	EventRequestCancelled  = "REQUEST_CANCELLED"
	EventRefundClaimed     = "REFUND_CLAIMED"
	EventAidWithdrawn      = "AID_WITHDRAWN"
)

// Event is one emitted notification record.
type Event struct {
	ID        string                 `bson:"_id" json:"id"`
	Type      string                 `bson:"type" json:"type"`
	Payload   map[string]interface{} `bson:"payload" json:"payload"`
	CreatedAt time.Time              `bson:"createdAt" json:"createdAt"`
}
