package achievements

import (
	"errors"
	"testing"

	"github.com/learnhub/backend/internal/models"
)

// stubCounters returns a distinct value per counting query so dispatch
// mistakes are visible.
type stubCounters struct{}

func (stubCounters) CountForumPosts(int64) (int, error)      { return 1, nil }
func (stubCounters) CountEnrollments(int64) (int, error)     { return 2, nil }
func (stubCounters) CountQuizAttempts(int64) (int, error)    { return 3, nil }
func (stubCounters) CountPerfectQuizzes(int64) (int, error)  { return 4, nil }
func (stubCounters) CountCertificates(int64) (int, error)    { return 5, nil }
func (stubCounters) CountAcceptedAnswers(int64) (int, error) { return 6, nil }

func TestRegistryCoversAllCriterionTypes(t *testing.T) {
	types := []models.CriterionType{
		models.CriterionForumPosts,
		models.CriterionEnrollments,
		models.CriterionQuizAttempts,
		models.CriterionPerfectQuiz,
		models.CriterionCertificates,
		models.CriterionAcceptedAnswers,
	}
	for _, ct := range types {
		if !Registered(ct) {
			t.Errorf("criterion type %q has no registered counter", ct)
		}
	}
}

func TestCountDispatch(t *testing.T) {
	tests := []struct {
		criterion models.CriterionType
		want      int
	}{
		{models.CriterionForumPosts, 1},
		{models.CriterionEnrollments, 2},
		{models.CriterionQuizAttempts, 3},
		{models.CriterionPerfectQuiz, 4},
		{models.CriterionCertificates, 5},
		{models.CriterionAcceptedAnswers, 6},
	}

	for _, tt := range tests {
		got, err := Count(stubCounters{}, tt.criterion, 42)
		if err != nil {
			t.Errorf("Count(%q) returned error: %v", tt.criterion, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.criterion, got, tt.want)
		}
	}
}

func TestCountUnknownCriterion(t *testing.T) {
	if Registered("polls_voted") {
		t.Fatal("unexpected counter registered for made-up criterion type")
	}
	_, err := Count(stubCounters{}, "polls_voted", 42)
	if !errors.Is(err, ErrUnknownCriterion) {
		t.Errorf("Count(unknown) error = %v, want ErrUnknownCriterion", err)
	}
}
