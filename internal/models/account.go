package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account is a ledger account known to the service. The address is the
// identity the authenticated-caller checks run against; the passcode hash
// backs JWT issuance.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Address      string             `bson:"address" json:"address"`
	PasscodeHash string             `bson:"passcodeHash" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
