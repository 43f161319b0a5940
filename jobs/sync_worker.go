package jobs

import (
	"context"
	"log"
	"time"

	"lostfound/services"
)

// SyncWorker periodically replays queued offline operations and pushes
// locally dirty collections to the remote services.
type SyncWorker struct {
	syncService *services.SyncService
	interval    time.Duration
	logger      *log.Logger
}

func NewSyncWorker(syncService *services.SyncService, interval time.Duration) *SyncWorker {
	return &SyncWorker{
		syncService: syncService,
		interval:    interval,
		logger:      log.New(log.Writer(), "[SYNC_WORKER] ", log.LstdFlags),
	}
}

// Start runs a sync pass immediately, then on every tick.
func (sw *SyncWorker) Start() {
	sw.logger.Println("Starting sync worker...")

	sw.runSync()

	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for range ticker.C {
		sw.runSync()
	}
}

func (sw *SyncWorker) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	replayed, pushed := sw.syncService.Drain(ctx)
	if replayed > 0 || pushed > 0 {
		sw.logger.Printf("Sync pass completed. Replayed ops: %d, pushed collections: %d", replayed, pushed)
	}
}
