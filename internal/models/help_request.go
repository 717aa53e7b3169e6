package models

import "time"

// HelpRequestStatus represents the lifecycle state of a mutual-aid request.
// OPEN -> FULLY_FUNDED -> DISBURSED, or OPEN -> CANCELLED (refund-eligible).
type HelpRequestStatus string

const (
	HelpRequestStatusOpen        HelpRequestStatus = "OPEN"
	HelpRequestStatusFullyFunded HelpRequestStatus = "FULLY_FUNDED"
	HelpRequestStatusCancelled   HelpRequestStatus = "CANCELLED"
	HelpRequestStatusDisbursed   HelpRequestStatus = "DISBURSED"
)

// HelpRequest represents a goal-funded mutual-aid request. RaisedAmount is
// the running total of accepted donations; the status flips to FULLY_FUNDED
// on the donation that first reaches the goal.
type HelpRequest struct {
	ID           uint64            `bson:"_id" json:"id"`
	Creator      string            `bson:"creator" json:"creator"`
	Token        string            `bson:"token" json:"token"`
	Goal         int64             `bson:"goal" json:"goal"`
	RaisedAmount int64             `bson:"raisedAmount" json:"raisedAmount"`
	Title        string            `bson:"title" json:"title"`
	Status       HelpRequestStatus `bson:"status" json:"status"`
	CreatedAt    time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Contribution records one donor's cumulative contribution to a request.
// It is the refund accounting: a claim pays out exactly this amount and
// zeroes it so a refund cannot be taken twice.
type Contribution struct {
	RequestID uint64    `bson:"requestId" json:"requestId"`
	Donor     string    `bson:"donor" json:"donor"`
	Amount    int64     `bson:"amount" json:"amount"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
