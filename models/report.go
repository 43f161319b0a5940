package models

import (
	"fmt"
	"time"
)

// ReportKind selects which of the two report collections a record lives in.
type ReportKind string

const (
	KindLost  ReportKind = "lost"
	KindFound ReportKind = "found"
)

// Report statuses form a two-state enum per kind.
const (
	StatusSearching = "searching" // lost, unresolved
	StatusFound     = "found"     // lost, resolved
	StatusUnclaimed = "unclaimed" // found, unresolved
	StatusClaimed   = "claimed"   // found, resolved
)

type Report struct {
	ID           string     `bson:"id" json:"id"`
	UserID       string     `bson:"user_id" json:"userId"`
	ReporterName string     `bson:"reporter_name" json:"reporterName"`
	Email        string     `bson:"email" json:"email"`
	Phone        string     `bson:"phone" json:"phone"`
	ItemName     string     `bson:"item_name" json:"itemName"`
	Category     string     `bson:"category" json:"category"`
	Description  string     `bson:"description" json:"description"`
	Location     string     `bson:"location" json:"location"`
	DateLost     string     `bson:"date_lost,omitempty" json:"dateLost,omitempty"`
	DateFound    string     `bson:"date_found,omitempty" json:"dateFound,omitempty"`
	Status       string     `bson:"status" json:"status"`
	ResolvedAt   *time.Time `bson:"resolved_at,omitempty" json:"resolvedAt,omitempty"`
	Images       []string   `bson:"images" json:"images"`
	ContactInfo  string     `bson:"contact_info,omitempty" json:"contactInfo,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"createdAt"`
}

// DefaultStatus is the status assigned to a freshly reported item.
func (k ReportKind) DefaultStatus() string {
	if k == KindLost {
		return StatusSearching
	}
	return StatusUnclaimed
}

// ResolvedStatus is the status that marks a report of this kind resolved.
func (k ReportKind) ResolvedStatus() string {
	if k == KindLost {
		return StatusFound
	}
	return StatusClaimed
}

func (k ReportKind) Valid() bool {
	return k == KindLost || k == KindFound
}

func ParseReportKind(s string) (ReportKind, error) {
	k := ReportKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("invalid report kind: %q", s)
	}
	return k, nil
}

// Resolved reports hold the resolved status for their kind; the
// resolvedAt timestamp is set on that transition and cleared on reopen.
func (r *Report) Resolved(kind ReportKind) bool {
	return r.Status == kind.ResolvedStatus()
}

// UserStats are the dashboard counters for a single reporting user.
type UserStats struct {
	TotalLost     int `json:"totalLost"`
	TotalFound    int `json:"totalFound"`
	TotalResolved int `json:"totalResolved"`
}
