package services

import (
	"context"
	"log"
	"sync"

	"lostfound/models"
)

// MatchService holds the match list for the current admin session.
// Fetching replaces the list wholesale; indices into it are only valid
// until the next fetch. A failed fetch leaves the prior list untouched.
type MatchService struct {
	matcher       *MatcherClient
	notifications *NotificationService
	logger        *log.Logger

	mu      sync.Mutex
	current []models.Match
}

func NewMatchService(matcher *MatcherClient, notifications *NotificationService) *MatchService {
	return &MatchService{
		matcher:       matcher,
		notifications: notifications,
		logger:        log.New(log.Writer(), "[MATCHES] ", log.LstdFlags),
	}
}

// FetchMatches retrieves the standard match list. Single attempt.
func (s *MatchService) FetchMatches(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matcher.FindMatches(ctx)
	if err != nil {
		return nil, err
	}
	return s.replace(matches), nil
}

// FetchAIMatches retrieves the AI match list, which carries urgency and
// image-match fields in addition to the score.
func (s *MatchService) FetchAIMatches(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matcher.AIFindMatches(ctx)
	if err != nil {
		return nil, err
	}
	return s.replace(matches), nil
}

// Current returns the match list held from the last successful fetch.
func (s *MatchService) Current() []models.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Match, len(s.current))
	copy(out, s.current)
	return out
}

// SendNotification dispatches match notifications for the match at the
// given position in the currently held list. An out-of-range index
// returns ErrMatchNotFound without calling the service.
func (s *MatchService) SendNotification(ctx context.Context, index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.current) {
		s.mu.Unlock()
		return ErrMatchNotFound
	}
	match := s.current[index]
	s.mu.Unlock()

	if err := s.matcher.SendNotification(ctx, match.Lost, match.Found); err != nil {
		return err
	}

	// Mirror the service-created records into the local ledger so the
	// parties see them; a mirror failure does not undo the send.
	if err := s.notifications.RecordMatch(ctx, match.Lost, match.Found); err != nil {
		s.logger.Printf("Failed to record match notifications locally: %v", err)
	}
	return nil
}

// AdminReports proxies the admin report listing, including the
// urgency_score and urgency_level fields the service computes.
func (s *MatchService) AdminReports(ctx context.Context) ([]models.AdminReport, error) {
	return s.matcher.AdminReports(ctx)
}

func (s *MatchService) replace(matches []models.Match) []models.Match {
	if matches == nil {
		matches = []models.Match{}
	}
	s.mu.Lock()
	s.current = matches
	s.mu.Unlock()

	out := make([]models.Match, len(matches))
	copy(out, matches)
	return out
}
