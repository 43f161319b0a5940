package models

import "time"

// Notification is a per-user, per-item ledger entry. The read flag is
// monotonic: once viewed it never transitions back to unread, and a
// dismissed notification is removed permanently.
type Notification struct {
	ID                 string    `bson:"id" json:"id"`
	UserID             string    `bson:"user_id" json:"userId"`
	ItemID             string    `bson:"item_id" json:"itemId"`
	Title              string    `bson:"title" json:"title"`
	Message            string    `bson:"message" json:"message"`
	Date               time.Time `bson:"date" json:"date"`
	Read               bool      `bson:"read" json:"read"`
	CollectionLocation string    `bson:"collection_location,omitempty" json:"collectionLocation,omitempty"`
}
