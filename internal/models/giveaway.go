package models

import "time"

// GiveawayStatus represents the lifecycle state of a giveaway.
// Transitions are strictly forward: ACTIVE -> CLAIMABLE -> COMPLETED.
type GiveawayStatus string

const (
	GiveawayStatusActive    GiveawayStatus = "ACTIVE"
	GiveawayStatusClaimable GiveawayStatus = "CLAIMABLE"
	GiveawayStatusCompleted GiveawayStatus = "COMPLETED"
)

// Giveaway represents a time-boxed random-draw giveaway with its escrowed
// principal. The record is never deleted; completed giveaways remain as an
// audit trail.
type Giveaway struct {
	ID               uint64         `bson:"_id" json:"id"`
	Creator          string         `bson:"creator" json:"creator"`
	Token            string         `bson:"token" json:"token"`
	Amount           int64          `bson:"amount" json:"amount"`
	Title            string         `bson:"title" json:"title"`
	ParticipantCount uint32         `bson:"participantCount" json:"participantCount"`
	EndTime          time.Time      `bson:"endTime" json:"endTime"`
	Status           GiveawayStatus `bson:"status" json:"status"`
	Winner           string         `bson:"winner,omitempty" json:"winner,omitempty"`
	CreatedAt        time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time      `bson:"updatedAt" json:"updatedAt"`
}
