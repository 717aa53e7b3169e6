package models

import "time"

// ParticipantEntry is one accepted giveaway entry. Entries are written once
// at a dense, zero-based index in arrival order and never mutated; the
// (giveawayId, account) pair is unique and backs duplicate rejection, the
// (giveawayId, index) pair resolves a drawn winner index to an account.
type ParticipantEntry struct {
	GiveawayID uint64    `bson:"giveawayId" json:"giveawayId"`
	Index      uint32    `bson:"index" json:"index"`
	Account    string    `bson:"account" json:"account"`
	EnteredAt  time.Time `bson:"enteredAt" json:"enteredAt"`
}
