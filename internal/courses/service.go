package courses

import (
	"errors"
	"fmt"
	"log"

	"github.com/learnhub/backend/internal/models"
)

// ErrCourseNotFound is returned when the referenced course does not exist.
var ErrCourseNotFound = errors.New("course not found")

// ErrCourseIncomplete is returned when a certificate is requested before the
// course reaches 100%.
var ErrCourseIncomplete = errors.New("course not complete")

// Evaluator is the achievement pipeline fired after enrollment and
// certificate issuance.
type Evaluator interface {
	EvaluateAndAward(userID int64) ([]models.AchievementUnlocked, error)
}

// ProgressReader looks up course completion when issuing certificates.
type ProgressReader interface {
	GetCourseProgress(userID, courseID int64) (*models.CourseProgress, error)
}

type Service struct {
	store        *Store
	achievements Evaluator
	progress     ProgressReader
}

func NewService(store *Store, achievements Evaluator, progress ProgressReader) *Service {
	return &Service{store: store, achievements: achievements, progress: progress}
}

func (s *Service) ListCourses() ([]models.Course, error) {
	return s.store.ListCourses()
}

func (s *Service) Enroll(userID, courseID int64) (*models.EnrollResponse, error) {
	exists, err := s.store.CourseExists(courseID)
	if err != nil {
		return nil, fmt.Errorf("check course: %w", err)
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	created, err := s.store.CreateEnrollment(userID, courseID)
	if err != nil {
		return nil, err
	}

	resp := &models.EnrollResponse{
		CourseID:             courseID,
		AlreadyEnrolled:      !created,
		AchievementsUnlocked: []models.AchievementUnlocked{},
	}

	if created {
		unlocked, err := s.achievements.EvaluateAndAward(userID)
		if err != nil {
			log.Printf("[courses] achievement pass after enrollment failed: %v", err)
		} else if unlocked != nil {
			resp.AchievementsUnlocked = unlocked
		}
	}
	return resp, nil
}

// IssueCertificate records a certificate once the course is fully complete,
// then fires the achievement pipeline.
func (s *Service) IssueCertificate(userID, courseID int64) (*models.IssueCertificateResponse, error) {
	prog, err := s.progress.GetCourseProgress(userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	if prog == nil || prog.Percentage < 100 {
		return nil, ErrCourseIncomplete
	}

	cert, err := s.store.InsertCertificate(userID, courseID)
	if err != nil {
		return nil, err
	}

	resp := &models.IssueCertificateResponse{
		Certificate:          *cert,
		AchievementsUnlocked: []models.AchievementUnlocked{},
	}

	unlocked, err := s.achievements.EvaluateAndAward(userID)
	if err != nil {
		log.Printf("[courses] achievement pass after certificate failed: %v", err)
	} else if unlocked != nil {
		resp.AchievementsUnlocked = unlocked
	}
	return resp, nil
}

func (s *Service) ListCertificates(userID int64) ([]models.Certificate, error) {
	certs, err := s.store.ListCertificates(userID)
	if err != nil {
		return nil, err
	}
	if certs == nil {
		certs = []models.Certificate{}
	}
	return certs, nil
}
