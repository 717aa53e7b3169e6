package models

import "time"

// FeeEntry accumulates collected fees for one token. It is incremented on
// every prize distribution and reset to zero when the administrator drains it.
type FeeEntry struct {
	Token     string    `bson:"_id" json:"token"`
	Amount    int64     `bson:"amount" json:"amount"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
