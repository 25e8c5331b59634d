package achievements

import (
	"log"
	"time"

	"github.com/learnhub/backend/internal/models"
)

// Store is the persistence surface the evaluator and awarder run against.
// *PostgresStore implements it; tests substitute an in-memory fake.
type Store interface {
	CounterSource
	ListCatalog() ([]models.Achievement, error)
	ListEarnedIDs(userID int64) (map[int64]bool, error)
	InsertGrant(userID, achievementID int64) (time.Time, bool, error)
	GetUserAchievements(userID int64) ([]models.EarnedAchievement, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Evaluate returns the achievements the user currently qualifies for but has
// not yet earned. It is read-only: running it twice with no intervening state
// change yields the same set. Already-earned achievements are never
// re-evaluated, so counter cost stays bounded by the un-earned catalog.
func (s *Service) Evaluate(userID int64) ([]models.Achievement, error) {
	catalog, err := s.store.ListCatalog()
	if err != nil {
		return nil, err
	}
	earned, err := s.store.ListEarnedIDs(userID)
	if err != nil {
		return nil, err
	}

	var qualifying []models.Achievement
	for _, a := range catalog {
		if earned[a.ID] {
			continue
		}
		if !Registered(a.Criterion.Type) {
			log.Printf("[achievements] achievement %d (%s) has unregistered criterion type %q; skipping",
				a.ID, a.Name, a.Criterion.Type)
			continue
		}
		count, err := Count(s.store, a.Criterion.Type, userID)
		if err != nil {
			// A failed count means "not yet" for this pass only; the next
			// trigger retries it. Never fail open to a grant.
			log.Printf("[achievements] count %q for user %d failed: %v", a.Criterion.Type, userID, err)
			continue
		}
		if count >= a.Criterion.Threshold {
			qualifying = append(qualifying, a)
		}
	}
	return qualifying, nil
}

// Award inserts grants for the qualifying achievements and returns unlock
// events for exactly those newly inserted in this call. A duplicate-key
// rejection from the store means a concurrent pass won the race; that grant
// is silently excluded.
func (s *Service) Award(userID int64, qualifying []models.Achievement) []models.AchievementUnlocked {
	var granted []grant
	for _, a := range qualifying {
		earnedAt, inserted, err := s.store.InsertGrant(userID, a.ID)
		if err != nil {
			log.Printf("[achievements] grant %d for user %d failed: %v", a.ID, userID, err)
			continue
		}
		if inserted {
			granted = append(granted, grant{achievement: a, earnedAt: earnedAt})
		}
	}
	return relayUnlocks(granted)
}

// EvaluateAndAward runs the full pipeline for one trigger. Callers invoke it
// after any action that can move a criterion count: forum post created, quiz
// attempt submitted, enrollment created, certificate issued, course reaching
// 100%.
func (s *Service) EvaluateAndAward(userID int64) ([]models.AchievementUnlocked, error) {
	qualifying, err := s.Evaluate(userID)
	if err != nil {
		return nil, err
	}
	return s.Award(userID, qualifying), nil
}

// ── Read surface ────────────────────────────────────────

func (s *Service) ListCatalog() ([]models.Achievement, error) {
	return s.store.ListCatalog()
}

func (s *Service) ListUserAchievements(userID int64) (*models.UserAchievementsResponse, error) {
	earned, err := s.store.GetUserAchievements(userID)
	if err != nil {
		return nil, err
	}
	if earned == nil {
		earned = []models.EarnedAchievement{}
	}
	total := 0
	for _, e := range earned {
		total += e.Points
	}
	return &models.UserAchievementsResponse{Achievements: earned, TotalPoints: total}, nil
}
