package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"time"

	"lostfound/models"
	"lostfound/storage"
	"lostfound/utils"

	"github.com/google/uuid"
)

// AdminMessageService manages broadcast/targeted announcements with a
// dual online/offline write path: every operation persists locally
// first, then attempts the remote API once. On failure the operation is
// queued for the sync worker and the result is tagged offline. The
// stored shape is identical on both paths.
type AdminMessageService struct {
	cache  *storage.Cache
	api    *MessageAPIClient // nil disables the remote path
	queue  *SyncService
	logger *log.Logger
}

func NewAdminMessageService(cache *storage.Cache, api *MessageAPIClient, queue *SyncService) *AdminMessageService {
	return &AdminMessageService{
		cache:  cache,
		api:    api,
		queue:  queue,
		logger: log.New(log.Writer(), "[MESSAGES] ", log.LstdFlags),
	}
}

type MessageInput struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Type          string `json:"type"`
	RecipientType string `json:"recipientType"`
	IsImportant   bool   `json:"isImportant"`
	PinToTop      bool   `json:"pinToTop"`
}

// Create validates and persists a new admin message. The offline flag
// is true when the remote API was unreachable and the create was queued
// for later sync.
func (s *AdminMessageService) Create(ctx context.Context, createdBy string, in MessageInput) (*models.AdminMessage, bool, error) {
	if err := utils.ValidateMessageFields(in.Title, in.Content); err != nil {
		return nil, false, err
	}
	if err := models.ValidMessageType(in.Type); err != nil {
		return nil, false, err
	}
	recipientType := in.RecipientType
	if recipientType == "" {
		recipientType = models.RecipientAll
	}

	msg := models.AdminMessage{
		ID:            uuid.NewString(),
		Title:         in.Title,
		Content:       in.Content,
		Type:          in.Type,
		RecipientType: recipientType,
		IsImportant:   in.IsImportant,
		PinToTop:      in.PinToTop,
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     createdBy,
	}

	for attempt := 0; attempt < casRetries; attempt++ {
		var messages []models.AdminMessage
		version, err := s.cache.Read(storage.CollectionAdminMessages, &messages)
		if err != nil {
			return nil, false, err
		}

		messages = append([]models.AdminMessage{msg}, messages...)

		_, err = s.cache.Write(ctx, storage.CollectionAdminMessages, messages, version)
		if errors.Is(err, storage.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, false, err
		}

		offline := false
		if s.api != nil {
			if err := s.api.Create(ctx, msg); err != nil {
				s.logger.Printf("Remote create failed for message %s, queued for sync: %v", msg.ID, err)
				s.enqueue(models.SyncActionCreate, msg.ID, msg)
				offline = true
			}
		}
		return &msg, offline, nil
	}

	return nil, false, storage.ErrConflict
}

// Delete removes a message locally and on the remote API. An unknown id
// returns ErrNotFound with no mutation.
func (s *AdminMessageService) Delete(ctx context.Context, id string) (bool, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		var messages []models.AdminMessage
		version, err := s.cache.Read(storage.CollectionAdminMessages, &messages)
		if err != nil {
			return false, err
		}

		idx := -1
		for i := range messages {
			if messages[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return false, ErrNotFound
		}

		messages = append(messages[:idx], messages[idx+1:]...)

		_, err = s.cache.Write(ctx, storage.CollectionAdminMessages, messages, version)
		if errors.Is(err, storage.ErrConflict) {
			continue
		}
		if err != nil {
			return false, err
		}

		offline := false
		if s.api != nil {
			if err := s.api.Delete(ctx, id); err != nil {
				s.logger.Printf("Remote delete failed for message %s, queued for sync: %v", id, err)
				s.enqueue(models.SyncActionDelete, id, nil)
				offline = true
			}
		}
		return offline, nil
	}

	return false, storage.ErrConflict
}

// List returns all messages in display order: pinned first, then
// created_at descending. The remote copy is preferred and refreshes the
// local mirror; when the API is unreachable the local copy serves as a
// degraded read.
func (s *AdminMessageService) List(ctx context.Context) ([]models.AdminMessage, error) {
	if s.api != nil {
		remote, err := s.api.List(ctx)
		if err == nil {
			s.refreshLocal(ctx, remote)
			SortMessages(remote)
			return remote, nil
		}
		s.logger.Printf("Messages API unavailable, serving local copy: %v", err)
	}

	var messages []models.AdminMessage
	if _, err := s.cache.Read(storage.CollectionAdminMessages, &messages); err != nil {
		return nil, err
	}
	SortMessages(messages)
	return messages, nil
}

// SortMessages orders messages for display: pinToTop partition first,
// then created_at descending within each partition.
func SortMessages(messages []models.AdminMessage) {
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].PinToTop != messages[j].PinToTop {
			return messages[i].PinToTop
		}
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
}

func (s *AdminMessageService) refreshLocal(ctx context.Context, remote []models.AdminMessage) {
	for attempt := 0; attempt < casRetries; attempt++ {
		var local []models.AdminMessage
		version, err := s.cache.Read(storage.CollectionAdminMessages, &local)
		if err != nil {
			s.logger.Printf("Failed to read local messages: %v", err)
			return
		}

		_, err = s.cache.Write(ctx, storage.CollectionAdminMessages, remote, version)
		if errors.Is(err, storage.ErrConflict) {
			continue
		}
		if err != nil {
			s.logger.Printf("Failed to refresh local messages: %v", err)
		}
		return
	}
}

func (s *AdminMessageService) enqueue(action, recordID string, payload interface{}) {
	if s.queue == nil {
		return
	}

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			s.logger.Printf("Failed to encode sync payload for %s: %v", recordID, err)
			return
		}
		raw = data
	}

	op := models.SyncOp{
		ID:         uuid.NewString(),
		Collection: string(storage.CollectionAdminMessages),
		Action:     action,
		RecordID:   recordID,
		Payload:    raw,
		QueuedAt:   time.Now().UTC(),
	}
	if err := s.queue.Enqueue(op); err != nil {
		s.logger.Printf("Failed to enqueue sync op for %s: %v", recordID, err)
	}
}
