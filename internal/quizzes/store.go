package quizzes

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnhub/backend/internal/models"
)

// ErrQuizNotFound is returned when the referenced quiz does not exist.
var ErrQuizNotFound = errors.New("quiz not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) QuizExists(quizID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM quizzes WHERE id = $1)`, quizID,
	).Scan(&exists)
	return exists, err
}

func (s *Store) InsertAttempt(quizID, userID int64, score int) (*models.QuizAttempt, error) {
	attempt := models.QuizAttempt{QuizID: quizID, UserID: userID, Score: score}
	err := s.db.QueryRow(
		`INSERT INTO quiz_attempts (quiz_id, user_id, score)
		 VALUES ($1, $2, $3)
		 RETURNING id, submitted_at`,
		quizID, userID, score,
	).Scan(&attempt.ID, &attempt.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("insert attempt: %w", err)
	}
	return &attempt, nil
}

func (s *Store) ListAttempts(userID int64) ([]models.QuizAttempt, error) {
	rows, err := s.db.Query(
		`SELECT id, quiz_id, user_id, score, submitted_at FROM quiz_attempts
		 WHERE user_id = $1 ORDER BY submitted_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.QuizAttempt
	for rows.Next() {
		var a models.QuizAttempt
		if err := rows.Scan(&a.ID, &a.QuizID, &a.UserID, &a.Score, &a.SubmittedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
