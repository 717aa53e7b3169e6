package models

import "time"

// SystemConfig is one singleton configuration record: the administrator
// address, the paused flag, the fee rate, or a token whitelist entry.
type SystemConfig struct {
	Key       string      `bson:"_id" json:"key"`
	Value     interface{} `bson:"value" json:"value"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}
