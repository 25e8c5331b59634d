package achievements

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/learnhub/backend/internal/models"
	"github.com/lib/pq"
)

type PostgresStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ── Catalog & grants ────────────────────────────────────

func (s *PostgresStore) ListCatalog() ([]models.Achievement, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, icon, category, criterion_type, threshold, points, created_at
		 FROM achievements ORDER BY points ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()

	var catalog []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Icon, &a.Category,
			&a.Criterion.Type, &a.Criterion.Threshold, &a.Points, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		catalog = append(catalog, a)
	}
	return catalog, rows.Err()
}

func (s *PostgresStore) ListEarnedIDs(userID int64) (map[int64]bool, error) {
	rows, err := s.db.Query(
		`SELECT achievement_id FROM user_achievements WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list earned: %w", err)
	}
	defer rows.Close()

	earned := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		earned[id] = true
	}
	return earned, rows.Err()
}

// InsertGrant attempts to record that the user earned the achievement. The
// UNIQUE(user_id, achievement_id) constraint is the concurrency control: a
// duplicate insert — including one racing from another process — comes back
// as a unique violation, reported here as (zero, false, nil).
func (s *PostgresStore) InsertGrant(userID, achievementID int64) (time.Time, bool, error) {
	var earnedAt time.Time
	err := s.db.QueryRow(
		`INSERT INTO user_achievements (user_id, achievement_id) VALUES ($1, $2)
		 RETURNING earned_at`,
		userID, achievementID,
	).Scan(&earnedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("insert grant: %w", err)
	}
	return earnedAt, true, nil
}

func (s *PostgresStore) GetUserAchievements(userID int64) ([]models.EarnedAchievement, error) {
	rows, err := s.db.Query(
		`SELECT a.id, a.name, a.description, a.icon, a.category,
		        a.criterion_type, a.threshold, a.points, a.created_at, ua.earned_at
		 FROM user_achievements ua
		 JOIN achievements a ON a.id = ua.achievement_id
		 WHERE ua.user_id = $1
		 ORDER BY ua.earned_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get user achievements: %w", err)
	}
	defer rows.Close()

	var earned []models.EarnedAchievement
	for rows.Next() {
		var e models.EarnedAchievement
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Icon, &e.Category,
			&e.Criterion.Type, &e.Criterion.Threshold, &e.Points, &e.CreatedAt, &e.EarnedAt); err != nil {
			return nil, fmt.Errorf("scan earned achievement: %w", err)
		}
		earned = append(earned, e)
	}
	return earned, rows.Err()
}

// ── Counting queries (CounterSource) ────────────────────

func (s *PostgresStore) CountForumPosts(userID int64) (int, error) {
	return s.count(`SELECT COUNT(*) FROM forum_posts WHERE author_id = $1`, userID)
}

func (s *PostgresStore) CountEnrollments(userID int64) (int, error) {
	return s.count(`SELECT COUNT(*) FROM enrollments WHERE user_id = $1`, userID)
}

func (s *PostgresStore) CountQuizAttempts(userID int64) (int, error) {
	return s.count(`SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1`, userID)
}

func (s *PostgresStore) CountPerfectQuizzes(userID int64) (int, error) {
	return s.count(`SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1 AND score = 100`, userID)
}

func (s *PostgresStore) CountCertificates(userID int64) (int, error) {
	return s.count(`SELECT COUNT(*) FROM certificates WHERE user_id = $1`, userID)
}

func (s *PostgresStore) CountAcceptedAnswers(userID int64) (int, error) {
	return s.count(`SELECT COUNT(*) FROM forum_replies WHERE author_id = $1 AND is_accepted`, userID)
}

func (s *PostgresStore) count(query string, userID int64) (int, error) {
	var n int
	if err := s.db.QueryRow(query, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
