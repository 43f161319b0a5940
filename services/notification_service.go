package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"lostfound/models"
	"lostfound/storage"

	"github.com/google/uuid"
)

// NotificationService owns the per-user notification ledger. Listing is
// pure and marking viewed is a separate, explicit operation; the HTTP
// layer composes the two so that viewing a list still acknowledges it,
// as the original client did implicitly.
type NotificationService struct {
	cache   *storage.Cache
	matcher *MatcherClient // nil disables read acks to the external service
	logger  *log.Logger
}

func NewNotificationService(cache *storage.Cache, matcher *MatcherClient) *NotificationService {
	return &NotificationService{
		cache:   cache,
		matcher: matcher,
		logger:  log.New(log.Writer(), "[NOTIFICATIONS] ", log.LstdFlags),
	}
}

// ListForItem returns the user's notifications for one item, newest
// first. It never mutates the ledger.
func (s *NotificationService) ListForItem(itemID, userID string) ([]models.Notification, error) {
	var all []models.Notification
	if _, err := s.cache.Read(storage.CollectionNotifications, &all); err != nil {
		return nil, err
	}

	matched := make([]models.Notification, 0, len(all))
	for _, n := range all {
		if n.ItemID == itemID && n.UserID == userID {
			matched = append(matched, n)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})
	return matched, nil
}

// MarkViewed flips the read flag for the user's notifications with the
// given ids and returns how many actually transitioned. The flag is
// monotonic; already-read entries are untouched, so a second call is a
// no-op. Each transition is best-effort acknowledged to the external
// service.
func (s *NotificationService) MarkViewed(ctx context.Context, userID string, ids []string) (int, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var flippedIDs []string
	for attempt := 0; attempt < casRetries; attempt++ {
		var all []models.Notification
		version, err := s.cache.Read(storage.CollectionNotifications, &all)
		if err != nil {
			return 0, err
		}

		flippedIDs = flippedIDs[:0]
		for i := range all {
			if wanted[all[i].ID] && all[i].UserID == userID && !all[i].Read {
				all[i].Read = true
				flippedIDs = append(flippedIDs, all[i].ID)
			}
		}

		if len(flippedIDs) == 0 {
			return 0, nil
		}

		_, err = s.cache.Write(ctx, storage.CollectionNotifications, all, version)
		if errors.Is(err, storage.ErrConflict) {
			continue
		}
		if err != nil {
			return 0, err
		}

		if s.matcher != nil {
			for _, id := range flippedIDs {
				if err := s.matcher.MarkNotificationRead(ctx, id); err != nil {
					s.logger.Printf("Read ack for notification %s failed: %v", id, err)
				}
			}
		}
		return len(flippedIDs), nil
	}

	return 0, storage.ErrConflict
}

// Dismiss removes a notification permanently. A dismissed entry is
// never returned again; an unknown id returns ErrNotFound with no
// mutation.
func (s *NotificationService) Dismiss(ctx context.Context, id string) (bool, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		var all []models.Notification
		version, err := s.cache.Read(storage.CollectionNotifications, &all)
		if err != nil {
			return false, err
		}

		idx := -1
		for i := range all {
			if all[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return false, ErrNotFound
		}

		all = append(all[:idx], all[idx+1:]...)

		offline, err := s.cache.Write(ctx, storage.CollectionNotifications, all, version)
		if errors.Is(err, storage.ErrConflict) {
			continue
		}
		if err != nil {
			return false, err
		}
		return offline, nil
	}

	return false, storage.ErrConflict
}

// UnreadCountFor counts the user's unread notifications.
func (s *NotificationService) UnreadCountFor(userID string) (int, error) {
	var all []models.Notification
	if _, err := s.cache.Read(storage.CollectionNotifications, &all); err != nil {
		return 0, err
	}

	count := 0
	for _, n := range all {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// RecordMatch materializes match notifications in the local ledger for
// both parties of a confirmed match. Reads always serve from the local
// cache, so records created remotely by the matching service must be
// mirrored here to become visible. Parties without a local account are
// skipped.
func (s *NotificationService) RecordMatch(ctx context.Context, lost, found models.MatchItem) error {
	var users []models.User
	if _, err := s.cache.Read(storage.CollectionUsers, &users); err != nil {
		return err
	}

	byEmail := make(map[string]models.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}

	now := time.Now().UTC()
	var created []models.Notification

	if owner, ok := byEmail[lost.Email]; ok {
		created = append(created, models.Notification{
			ID:      uuid.NewString(),
			UserID:  owner.ID,
			ItemID:  s.localItemID(owner.ID, models.KindLost, lost.ItemName),
			Title:   fmt.Sprintf("Great News! Your Lost Item '%s' Has Been Found!", lost.ItemName),
			Message: ownerMessage(lost, found),
			Date:    now,
			Read:    false,
		})
	} else {
		s.logger.Printf("No local account for lost-item reporter %s, skipping ledger entry", lost.Email)
	}

	if finder, ok := byEmail[found.Email]; ok {
		created = append(created, models.Notification{
			ID:      uuid.NewString(),
			UserID:  finder.ID,
			ItemID:  s.localItemID(finder.ID, models.KindFound, found.ItemName),
			Title:   fmt.Sprintf("The Item '%s' You Found May Have an Owner!", found.ItemName),
			Message: finderMessage(lost, found),
			Date:    now,
			Read:    false,
		})
	} else {
		s.logger.Printf("No local account for found-item reporter %s, skipping ledger entry", found.Email)
	}

	if len(created) == 0 {
		return nil
	}

	for attempt := 0; attempt < casRetries; attempt++ {
		var all []models.Notification
		version, err := s.cache.Read(storage.CollectionNotifications, &all)
		if err != nil {
			return err
		}

		all = append(all, created...)

		_, err = s.cache.Write(ctx, storage.CollectionNotifications, all, version)
		if errors.Is(err, storage.ErrConflict) {
			continue
		}
		return err
	}

	return storage.ErrConflict
}

// localItemID resolves a party's own report for the matched item name,
// so the notification links to the report page they already have. Falls
// back to the item name when no local report matches.
func (s *NotificationService) localItemID(userID string, kind models.ReportKind, itemName string) string {
	col := storage.CollectionLostItems
	if kind == models.KindFound {
		col = storage.CollectionFoundItems
	}

	var reports []models.Report
	if _, err := s.cache.Read(col, &reports); err != nil {
		return itemName
	}

	for _, r := range reports {
		if r.UserID == userID && r.ItemName == itemName {
			return r.ID
		}
	}
	return itemName
}

func ownerMessage(lost, found models.MatchItem) string {
	return fmt.Sprintf(`Dear %s,

Excellent news! We found a match for your lost item:

YOUR LOST ITEM:
- Item: %s
- Description: %s
- Lost at: %s

FOUND ITEM DETAILS:
- Item: %s
- Description: %s
- Found at: %s

FINDER CONTACT:
- Name: %s
- Phone: %s
- Email: %s

Please contact the finder to arrange pickup.

Best regards,
Lost & Found System`,
		lost.Name,
		lost.ItemName, lost.Description, lost.Location,
		found.ItemName, found.Description, found.Location,
		found.Name, found.Phone, found.Email)
}

func finderMessage(lost, found models.MatchItem) string {
	return fmt.Sprintf(`Dear %s,

The item '%s' you reported found matches a lost report:

- Item: %s
- Description: %s
- Lost at: %s

The owner (%s, %s) has been given your contact details and may reach
out to arrange pickup.

Best regards,
Lost & Found System`,
		found.Name, found.ItemName,
		lost.ItemName, lost.Description, lost.Location,
		lost.Name, lost.Email)
}
