package models

import (
	"encoding/json"
	"time"
)

// Sync op actions.
const (
	SyncActionCreate = "create"
	SyncActionDelete = "delete"
)

// SyncOp is a pending remote write queued while the remote side was
// unreachable. Each op replays a single admin-message API call;
// whole-collection mirror pushes are tracked separately by the cache's
// dirty flags, not as queue entries.
type SyncOp struct {
	ID         string          `json:"id"`
	Collection string          `json:"collection"`
	Action     string          `json:"action"`
	RecordID   string          `json:"recordId,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	QueuedAt   time.Time       `json:"queuedAt"`
}
