package models

import "time"

// Reward records a token grant from an item owner to its finder. The
// external reward service enforces at most one reward per
// (giver, finder, itemName) triple; a local copy is kept for the
// finder's dashboard.
type Reward struct {
	ID          string    `bson:"id" json:"id"`
	FinderEmail string    `bson:"finder_email" json:"finder_email"`
	FinderName  string    `bson:"finder_name" json:"finder_name"`
	GiverEmail  string    `bson:"giver_email" json:"giver_email"`
	GiverName   string    `bson:"giver_name" json:"giver_name"`
	Tokens      int       `bson:"tokens" json:"tokens"`
	ItemName    string    `bson:"item_name" json:"item_name"`
	Message     string    `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
