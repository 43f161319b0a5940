package models

import (
	"fmt"
	"time"
)

// Admin message types.
const (
	MessageTypeAnnouncement = "announcement"
	MessageTypeLost         = "lost"
	MessageTypeFound        = "found"
	MessageTypeInfo         = "info"
)

// Recipient scopes for an admin message.
const (
	RecipientAll      = "all"
	RecipientSpecific = "specific"
)

// AdminMessage is an admin broadcast or targeted announcement. Messages
// are immutable after creation except through delete. The wire and
// stored shape is identical on the online and offline persistence
// paths, so a later sync only needs id matching.
type AdminMessage struct {
	ID            string    `bson:"id" json:"id"`
	Title         string    `bson:"title" json:"title"`
	Content       string    `bson:"content" json:"content"`
	Type          string    `bson:"type" json:"type"`
	RecipientType string    `bson:"recipient_type" json:"recipientType"`
	IsImportant   bool      `bson:"is_important" json:"isImportant"`
	PinToTop      bool      `bson:"pin_to_top" json:"pinToTop"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	CreatedBy     string    `bson:"created_by" json:"created_by"`
}

func ValidMessageType(t string) error {
	switch t {
	case MessageTypeAnnouncement, MessageTypeLost, MessageTypeFound, MessageTypeInfo:
		return nil
	}
	return fmt.Errorf("invalid message type: %q", t)
}
