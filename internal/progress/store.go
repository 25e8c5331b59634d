package progress

import (
	"database/sql"
	"fmt"

	"github.com/learnhub/backend/internal/models"
	"github.com/lib/pq"
)

type PostgresStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureProgress(userID, courseID int64) error {
	_, err := s.db.Exec(
		`INSERT INTO course_progress (user_id, course_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, course_id) DO NOTHING`,
		userID, courseID,
	)
	if err != nil {
		return fmt.Errorf("ensure progress: %w", err)
	}
	return nil
}

// MergeCompletedPosition adds the lesson position to the completed set and
// recomputes the cached percentage, all in one statement. The SET expressions
// read the row's current value under its lock, so concurrent completions
// union rather than overwrite each other. Percentage uses
// round(100 * |set| / total) clamped to [0, 100], with 0 for an empty course.
func (s *PostgresStore) MergeCompletedPosition(userID, courseID int64, position, totalLessons int) (*models.CourseProgress, error) {
	prog := models.CourseProgress{UserID: userID, CourseID: courseID}
	err := s.db.QueryRow(
		`UPDATE course_progress SET
		    completed_positions = ARRAY(
		        SELECT DISTINCT p FROM unnest(completed_positions || $3::int) AS p ORDER BY p),
		    percentage = CASE WHEN $4::int <= 0 THEN 0
		        ELSE LEAST(100, ROUND(100.0 * cardinality(ARRAY(
		            SELECT DISTINCT p FROM unnest(completed_positions || $3::int) AS p)) / $4::int)::int)
		        END,
		    last_accessed_at = NOW()
		 WHERE user_id = $1 AND course_id = $2
		 RETURNING completed_positions, percentage, last_accessed_at`,
		userID, courseID, position, totalLessons,
	).Scan(pq.Array(&prog.CompletedPositions), &prog.Percentage, &prog.LastAccessedAt)
	if err != nil {
		return nil, fmt.Errorf("merge completed position: %w", err)
	}
	return &prog, nil
}

// GetProgress returns the stored record, or (nil, nil) when the user has not
// touched the course yet.
func (s *PostgresStore) GetProgress(userID, courseID int64) (*models.CourseProgress, error) {
	prog := models.CourseProgress{UserID: userID, CourseID: courseID}
	err := s.db.QueryRow(
		`SELECT completed_positions, percentage, last_accessed_at
		 FROM course_progress WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	).Scan(pq.Array(&prog.CompletedPositions), &prog.Percentage, &prog.LastAccessedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return &prog, nil
}
