package progress

import (
	"fmt"
	"log"
	"math"

	"github.com/learnhub/backend/internal/models"
)

// Store is the persistence surface for per-(user, course) progress records.
type Store interface {
	EnsureProgress(userID, courseID int64) error
	MergeCompletedPosition(userID, courseID int64, position, totalLessons int) (*models.CourseProgress, error)
	GetProgress(userID, courseID int64) (*models.CourseProgress, error)
}

// LessonCounter reports the size of a course's flattened curriculum.
type LessonCounter interface {
	CountLessons(courseID int64) (int, error)
}

// Evaluator is the achievement pipeline triggered when a course hits 100%.
type Evaluator interface {
	EvaluateAndAward(userID int64) ([]models.AchievementUnlocked, error)
}

type Service struct {
	store        Store
	lessons      LessonCounter
	achievements Evaluator
}

func NewService(store Store, lessons LessonCounter, achievements Evaluator) *Service {
	return &Service{store: store, lessons: lessons, achievements: achievements}
}

// CompletionPercentage is the canonical completion formula:
// round(100 * completed / total), clamped to [0, 100]. A course with no
// lessons is never complete.
func CompletionPercentage(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(completed) / float64(total)))
	if pct > 100 {
		return 100
	}
	return pct
}

// RecordLessonComplete marks the lesson position done for the user.
// Re-marking an already-completed position is a no-op, not an error. When the
// merge brings the course to 100%, the achievement pipeline fires; a failure
// there is logged, not surfaced, since the grant will be retried on the next
// trigger while the completion itself is already durable.
func (s *Service) RecordLessonComplete(userID, courseID int64, position int) (*models.CompleteLessonResponse, error) {
	if position < 0 {
		return nil, fmt.Errorf("lesson position must be non-negative, got %d", position)
	}

	total, err := s.lessons.CountLessons(courseID)
	if err != nil {
		return nil, fmt.Errorf("count lessons: %w", err)
	}

	if err := s.store.EnsureProgress(userID, courseID); err != nil {
		return nil, err
	}

	prog, err := s.store.MergeCompletedPosition(userID, courseID, position, total)
	if err != nil {
		return nil, err
	}

	resp := &models.CompleteLessonResponse{
		Progress:             *prog,
		AchievementsUnlocked: []models.AchievementUnlocked{},
	}

	if prog.Percentage == 100 {
		unlocked, err := s.achievements.EvaluateAndAward(userID)
		if err != nil {
			log.Printf("[progress] achievement pass after course %d completion failed: %v", courseID, err)
		} else if unlocked != nil {
			resp.AchievementsUnlocked = unlocked
		}
	}

	return resp, nil
}

// GetCourseProgress returns the user's progress for a course. A course the
// user never touched reads as an empty completion set at 0%.
func (s *Service) GetCourseProgress(userID, courseID int64) (*models.CourseProgress, error) {
	prog, err := s.store.GetProgress(userID, courseID)
	if err != nil {
		return nil, err
	}
	if prog == nil {
		return &models.CourseProgress{
			UserID:             userID,
			CourseID:           courseID,
			CompletedPositions: []int64{},
			Percentage:         CompletionPercentage(0, 0),
		}, nil
	}
	if prog.CompletedPositions == nil {
		prog.CompletedPositions = []int64{}
	}
	return prog, nil
}
