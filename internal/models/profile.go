package models

import "time"

// Profile is a user's public profile. Usernames are unique across all
// accounts; updating the username frees the old handle.
type Profile struct {
	Account    string    `bson:"_id" json:"account"`
	Username   string    `bson:"username" json:"username"`
	AvatarHash string    `bson:"avatarHash" json:"avatarHash"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}
