package quizzes

import (
	"fmt"
	"log"

	"github.com/learnhub/backend/internal/models"
)

// Evaluator is the achievement pipeline fired after an attempt is recorded.
type Evaluator interface {
	EvaluateAndAward(userID int64) ([]models.AchievementUnlocked, error)
}

type Service struct {
	store        *Store
	achievements Evaluator
}

func NewService(store *Store, achievements Evaluator) *Service {
	return &Service{store: store, achievements: achievements}
}

func (s *Service) SubmitAttempt(quizID, userID int64, score int) (*models.SubmitAttemptResponse, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("score must be between 0 and 100, got %d", score)
	}

	exists, err := s.store.QuizExists(quizID)
	if err != nil {
		return nil, fmt.Errorf("check quiz: %w", err)
	}
	if !exists {
		return nil, ErrQuizNotFound
	}

	attempt, err := s.store.InsertAttempt(quizID, userID, score)
	if err != nil {
		return nil, err
	}

	resp := &models.SubmitAttemptResponse{
		Attempt:              *attempt,
		AchievementsUnlocked: []models.AchievementUnlocked{},
	}

	unlocked, err := s.achievements.EvaluateAndAward(userID)
	if err != nil {
		log.Printf("[quizzes] achievement pass after attempt failed: %v", err)
	} else if unlocked != nil {
		resp.AchievementsUnlocked = unlocked
	}
	return resp, nil
}

func (s *Service) ListAttempts(userID int64) ([]models.QuizAttempt, error) {
	attempts, err := s.store.ListAttempts(userID)
	if err != nil {
		return nil, err
	}
	if attempts == nil {
		attempts = []models.QuizAttempt{}
	}
	return attempts, nil
}
