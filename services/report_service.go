package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"time"

	"lostfound/models"
	"lostfound/storage"
	"lostfound/utils"

	"github.com/google/uuid"
)

// casRetries bounds the read-modify-write cycles a mutation may spend
// losing compare-and-swap races before giving up.
const casRetries = 3

type ReportService struct {
	cache          *storage.Cache
	images         *ImageService // nil when image storage is not configured
	allowedDomains []string
}

func NewReportService(cache *storage.Cache, images *ImageService, allowedDomains []string) *ReportService {
	return &ReportService{
		cache:          cache,
		images:         images,
		allowedDomains: allowedDomains,
	}
}

type ReportInput struct {
	ReporterName string `json:"reporterName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ItemName     string `json:"itemName"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Date         string `json:"date"`
	ContactInfo  string `json:"contactInfo"`
}

// Report validates and persists a new lost or found item report. The
// returned offline flag is true when the remote mirror was unreachable
// and the write degraded to local-only persistence.
func (s *ReportService) Report(ctx context.Context, userID string, kind models.ReportKind, in ReportInput) (*models.Report, bool, error) {
	if err := utils.ValidateReportFields(in.ReporterName, in.ItemName, in.Description, in.Location); err != nil {
		return nil, false, err
	}
	if err := utils.ValidateEmail(in.Email, s.allowedDomains); err != nil {
		return nil, false, err
	}
	if err := utils.ValidatePhone(in.Phone); err != nil {
		return nil, false, err
	}

	report := models.Report{
		ID:           uuid.NewString(),
		UserID:       userID,
		ReporterName: in.ReporterName,
		Email:        in.Email,
		Phone:        in.Phone,
		ItemName:     in.ItemName,
		Category:     in.Category,
		Description:  in.Description,
		Location:     in.Location,
		Status:       kind.DefaultStatus(),
		Images:       []string{},
		ContactInfo:  in.ContactInfo,
		CreatedAt:    time.Now().UTC(),
	}
	if kind == models.KindLost {
		report.DateLost = in.Date
	} else {
		report.DateFound = in.Date
	}

	col := collectionFor(kind)

	var offline bool
	for attempt := 0; attempt < casRetries; attempt++ {
		var reports []models.Report
		version, err := s.cache.Read(col, &reports)
		if err != nil {
			return nil, false, err
		}

		reports = append(reports, report)

		offline, err = s.cache.Write(ctx, col, reports, version)
		if errors.Is(err, storage.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, false, err
		}
		return &report, offline, nil
	}

	return nil, false, storage.ErrConflict
}

// ListByUser returns the user's reports of one kind, newest first.
func (s *ReportService) ListByUser(userID string, kind models.ReportKind) ([]models.Report, error) {
	var reports []models.Report
	if _, err := s.cache.Read(collectionFor(kind), &reports); err != nil {
		return nil, err
	}

	mine := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if r.UserID == userID {
			mine = append(mine, r)
		}
	}

	sort.Slice(mine, func(i, j int) bool {
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	return mine, nil
}

// ToggleStatus flips a report between its two-state enum, setting
// resolvedAt on the resolving transition and clearing it on reopen.
// Applying it twice restores the original state. An unknown id returns
// ErrNotFound with no mutation.
func (s *ReportService) ToggleStatus(ctx context.Context, id string, kind models.ReportKind) (*models.Report, bool, error) {
	col := collectionFor(kind)

	for attempt := 0; attempt < casRetries; attempt++ {
		var reports []models.Report
		version, err := s.cache.Read(col, &reports)
		if err != nil {
			return nil, false, err
		}

		idx := -1
		for i := range reports {
			if reports[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, false, ErrNotFound
		}

		report := &reports[idx]
		if report.Resolved(kind) {
			report.Status = kind.DefaultStatus()
			report.ResolvedAt = nil
		} else {
			report.Status = kind.ResolvedStatus()
			now := time.Now().UTC()
			report.ResolvedAt = &now
		}

		offline, err := s.cache.Write(ctx, col, reports, version)
		if errors.Is(err, storage.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, false, err
		}

		updated := reports[idx]
		return &updated, offline, nil
	}

	return nil, false, storage.ErrConflict
}

// AttachImage uploads an item photo and appends its URL to the report.
func (s *ReportService) AttachImage(ctx context.Context, id string, kind models.ReportKind, userID string, file multipart.File, header *multipart.FileHeader) (*models.Report, error) {
	if s.images == nil {
		return nil, fmt.Errorf("image storage is not configured")
	}
	if err := utils.ValidateImageHeader(header); err != nil {
		return nil, err
	}

	imageURL, err := s.images.UploadReportImage(ctx, file, header.Filename, userID)
	if err != nil {
		return nil, err
	}

	col := collectionFor(kind)
	for attempt := 0; attempt < casRetries; attempt++ {
		var reports []models.Report
		version, err := s.cache.Read(col, &reports)
		if err != nil {
			return nil, err
		}

		idx := -1
		for i := range reports {
			if reports[i].ID == id && reports[i].UserID == userID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, ErrNotFound
		}

		reports[idx].Images = append(reports[idx].Images, imageURL)

		_, err = s.cache.Write(ctx, col, reports, version)
		if errors.Is(err, storage.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}

		updated := reports[idx]
		return &updated, nil
	}

	return nil, storage.ErrConflict
}

// UserStats computes the dashboard counters for one user.
func (s *ReportService) UserStats(userID string) (models.UserStats, error) {
	var stats models.UserStats

	var lost []models.Report
	if _, err := s.cache.Read(storage.CollectionLostItems, &lost); err != nil {
		return stats, err
	}
	var found []models.Report
	if _, err := s.cache.Read(storage.CollectionFoundItems, &found); err != nil {
		return stats, err
	}

	for _, r := range lost {
		if r.UserID != userID {
			continue
		}
		stats.TotalLost++
		if r.Resolved(models.KindLost) {
			stats.TotalResolved++
		}
	}
	for _, r := range found {
		if r.UserID != userID {
			continue
		}
		stats.TotalFound++
		if r.Resolved(models.KindFound) {
			stats.TotalResolved++
		}
	}

	return stats, nil
}

func collectionFor(kind models.ReportKind) storage.Collection {
	if kind == models.KindLost {
		return storage.CollectionLostItems
	}
	return storage.CollectionFoundItems
}
