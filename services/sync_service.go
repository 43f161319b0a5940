package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"lostfound/models"
	"lostfound/storage"
)

// SyncService drains the offline backlog: queued admin-message API
// operations are replayed by id, and collections marked dirty by the
// write-through cache are re-pushed to the remote mirror. The queue
// itself is local bookkeeping and is never mirrored.
type SyncService struct {
	cache  *storage.Cache
	mirror storage.Remote    // nil disables collection re-push
	api    *MessageAPIClient // nil disables admin op replay
	logger *log.Logger
}

func NewSyncService(cache *storage.Cache, mirror storage.Remote, api *MessageAPIClient) *SyncService {
	return &SyncService{
		cache:  cache,
		mirror: mirror,
		api:    api,
		logger: log.New(log.Writer(), "[SYNC] ", log.LstdFlags),
	}
}

// Enqueue appends a pending operation to the sync queue.
func (s *SyncService) Enqueue(op models.SyncOp) error {
	local := s.cache.Local()

	for attempt := 0; attempt < casRetries; attempt++ {
		var queue []models.SyncOp
		version, err := local.Read(storage.CollectionSyncQueue, &queue)
		if err != nil {
			return err
		}

		queue = append(queue, op)

		_, err = local.Write(storage.CollectionSyncQueue, queue, version)
		if errors.Is(err, storage.ErrConflict) {
			continue
		}
		return err
	}

	return storage.ErrConflict
}

// Pending returns the queued operations.
func (s *SyncService) Pending() ([]models.SyncOp, error) {
	var queue []models.SyncOp
	if _, err := s.cache.Local().Read(storage.CollectionSyncQueue, &queue); err != nil {
		return nil, err
	}
	return queue, nil
}

// Drain replays the backlog. Operations that fail stay queued for the
// next cycle; successes are removed. Returns the number of ops replayed
// and collections pushed.
func (s *SyncService) Drain(ctx context.Context) (int, int) {
	replayed := s.drainOps(ctx)
	pushed := s.drainPending(ctx)
	return replayed, pushed
}

func (s *SyncService) drainOps(ctx context.Context) int {
	queue, err := s.Pending()
	if err != nil {
		s.logger.Printf("Failed to read sync queue: %v", err)
		return 0
	}
	if len(queue) == 0 {
		return 0
	}

	var remaining []models.SyncOp
	replayed := 0

	for _, op := range queue {
		if err := s.replay(ctx, op); err != nil {
			s.logger.Printf("Replay of %s %s/%s failed, keeping queued: %v", op.Action, op.Collection, op.RecordID, err)
			remaining = append(remaining, op)
			continue
		}
		replayed++
	}

	if replayed == 0 {
		return 0
	}
	if remaining == nil {
		remaining = []models.SyncOp{}
	}

	local := s.cache.Local()
	for attempt := 0; attempt < casRetries; attempt++ {
		var current []models.SyncOp
		version, err := local.Read(storage.CollectionSyncQueue, &current)
		if err != nil {
			s.logger.Printf("Failed to re-read sync queue: %v", err)
			return replayed
		}

		// Keep ops enqueued while we were draining.
		kept := remaining
		drained := make(map[string]bool, len(queue))
		for _, op := range queue {
			drained[op.ID] = true
		}
		for _, op := range current {
			if !drained[op.ID] {
				kept = append(kept, op)
			}
		}

		_, err = local.Write(storage.CollectionSyncQueue, kept, version)
		if errors.Is(err, storage.ErrConflict) {
			continue
		}
		if err != nil {
			s.logger.Printf("Failed to rewrite sync queue: %v", err)
		}
		return replayed
	}

	return replayed
}

func (s *SyncService) replay(ctx context.Context, op models.SyncOp) error {
	if op.Collection != string(storage.CollectionAdminMessages) || s.api == nil {
		return errors.New("no replay target for operation")
	}

	switch op.Action {
	case models.SyncActionCreate:
		var msg models.AdminMessage
		if err := json.Unmarshal(op.Payload, &msg); err != nil {
			return err
		}
		return s.api.Create(ctx, msg)
	case models.SyncActionDelete:
		return s.api.Delete(ctx, op.RecordID)
	default:
		return errors.New("unknown sync action: " + op.Action)
	}
}

func (s *SyncService) drainPending(ctx context.Context) int {
	if s.mirror == nil {
		return 0
	}

	pushed := 0
	for _, col := range s.cache.PendingCollections() {
		data, version, err := s.cache.Local().ReadRaw(col)
		if err != nil {
			s.logger.Printf("Failed to read collection %s for push: %v", col, err)
			continue
		}

		if err := s.mirror.PushCollection(ctx, col, data, version); err != nil {
			s.logger.Printf("Push of collection %s failed, keeping dirty: %v", col, err)
			continue
		}

		s.cache.ClearPending(col)
		pushed++
	}
	return pushed
}
