package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"lostfound/models"
	"lostfound/storage"

	"github.com/google/uuid"
)

// RewardService submits token grants to the external reward endpoints
// and keeps a local copy for the finder's dashboard. The external
// service owns the one-reward-per-item rule; when it is unreachable a
// grant degrades to local-only persistence.
type RewardService struct {
	cache   *storage.Cache
	matcher *MatcherClient
	logger  *log.Logger
}

func NewRewardService(cache *storage.Cache, matcher *MatcherClient) *RewardService {
	return &RewardService{
		cache:   cache,
		matcher: matcher,
		logger:  log.New(log.Writer(), "[REWARDS] ", log.LstdFlags),
	}
}

type GiveRewardInput struct {
	FinderEmail string `json:"finder_email"`
	FinderName  string `json:"finder_name"`
	Tokens      int    `json:"tokens"`
	ItemName    string `json:"item_name"`
	Message     string `json:"message"`
}

// CheckGiven reports whether the giver already rewarded this finder for
// this item. On a network failure the local copy answers.
func (s *RewardService) CheckGiven(ctx context.Context, giverEmail, finderEmail, itemName string) (bool, error) {
	if s.matcher != nil {
		given, err := s.matcher.CheckRewardGiven(ctx, finderEmail, itemName)
		if err == nil {
			return given, nil
		}
		s.logger.Printf("Reward check unavailable, answering from local copy: %v", err)
	}

	var rewards []models.Reward
	if _, err := s.cache.Read(storage.CollectionRewards, &rewards); err != nil {
		return false, err
	}

	for _, r := range rewards {
		if r.GiverEmail == giverEmail && r.FinderEmail == finderEmail && r.ItemName == itemName {
			return true, nil
		}
	}
	return false, nil
}

// Give submits a reward. Duplicates are rejected; the returned offline
// flag is true when the external service was unreachable and the grant
// was persisted locally only.
func (s *RewardService) Give(ctx context.Context, giverEmail, giverName string, in GiveRewardInput) (*models.Reward, bool, error) {
	if strings.TrimSpace(in.FinderEmail) == "" || strings.TrimSpace(in.ItemName) == "" {
		return nil, false, fmt.Errorf("finder email and item name are required")
	}
	if in.Tokens <= 0 {
		return nil, false, fmt.Errorf("token amount must be positive")
	}

	reward := models.Reward{
		ID:          uuid.NewString(),
		FinderEmail: in.FinderEmail,
		FinderName:  in.FinderName,
		GiverEmail:  giverEmail,
		GiverName:   giverName,
		Tokens:      in.Tokens,
		ItemName:    in.ItemName,
		Message:     in.Message,
		CreatedAt:   time.Now().UTC(),
	}

	offline := false
	if s.matcher != nil {
		accepted, err := s.matcher.GiveReward(ctx, reward)
		if err != nil {
			s.logger.Printf("Reward service unavailable, persisting locally: %v", err)
			offline = true
		} else if !accepted {
			return nil, false, ErrRewardAlreadyGiven
		}
	}

	// The local duplicate check covers the offline path.
	for attempt := 0; attempt < casRetries; attempt++ {
		var rewards []models.Reward
		version, err := s.cache.Read(storage.CollectionRewards, &rewards)
		if err != nil {
			return nil, false, err
		}

		for _, r := range rewards {
			if r.GiverEmail == giverEmail && r.FinderEmail == in.FinderEmail && r.ItemName == in.ItemName {
				return nil, false, ErrRewardAlreadyGiven
			}
		}

		rewards = append(rewards, reward)

		_, err = s.cache.Write(ctx, storage.CollectionRewards, rewards, version)
		if errors.Is(err, storage.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, false, err
		}
		return &reward, offline, nil
	}

	return nil, false, storage.ErrConflict
}

// ListForFinder returns the rewards earned by one finder, newest first,
// along with the token total.
func (s *RewardService) ListForFinder(finderEmail string) ([]models.Reward, int, error) {
	var rewards []models.Reward
	if _, err := s.cache.Read(storage.CollectionRewards, &rewards); err != nil {
		return nil, 0, err
	}

	mine := make([]models.Reward, 0, len(rewards))
	total := 0
	for _, r := range rewards {
		if r.FinderEmail == finderEmail {
			mine = append(mine, r)
			total += r.Tokens
		}
	}

	sort.Slice(mine, func(i, j int) bool {
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	return mine, total, nil
}
