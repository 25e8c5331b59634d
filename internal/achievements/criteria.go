package achievements

import (
	"errors"

	"github.com/learnhub/backend/internal/models"
)

// ErrUnknownCriterion is returned when a catalog row names a criterion type
// with no registered counting query. Such an achievement can never be
// satisfied; the evaluator skips it rather than failing the pass.
var ErrUnknownCriterion = errors.New("unknown criterion type")

// CounterSource provides the per-user aggregate counts that achievement
// criteria are evaluated against. The facts being counted (posts, attempts,
// enrollments, certificates) are owned by the surrounding CRUD subsystems;
// this engine only reads them.
type CounterSource interface {
	CountForumPosts(userID int64) (int, error)
	CountEnrollments(userID int64) (int, error)
	CountQuizAttempts(userID int64) (int, error)
	CountPerfectQuizzes(userID int64) (int, error)
	CountCertificates(userID int64) (int, error)
	CountAcceptedAnswers(userID int64) (int, error)
}

type counterFunc func(src CounterSource, userID int64) (int, error)

// registry maps each criterion type to its counting query. Adding a new
// criterion type means adding one CounterSource method and one entry here;
// the evaluator itself is agnostic to the set of types.
var registry = map[models.CriterionType]counterFunc{
	models.CriterionForumPosts: func(src CounterSource, userID int64) (int, error) {
		return src.CountForumPosts(userID)
	},
	models.CriterionEnrollments: func(src CounterSource, userID int64) (int, error) {
		return src.CountEnrollments(userID)
	},
	models.CriterionQuizAttempts: func(src CounterSource, userID int64) (int, error) {
		return src.CountQuizAttempts(userID)
	},
	models.CriterionPerfectQuiz: func(src CounterSource, userID int64) (int, error) {
		return src.CountPerfectQuizzes(userID)
	},
	models.CriterionCertificates: func(src CounterSource, userID int64) (int, error) {
		return src.CountCertificates(userID)
	},
	models.CriterionAcceptedAnswers: func(src CounterSource, userID int64) (int, error) {
		return src.CountAcceptedAnswers(userID)
	},
}

// Registered reports whether a counting query exists for the criterion type.
func Registered(t models.CriterionType) bool {
	_, ok := registry[t]
	return ok
}

// Count runs the counting query for the given criterion type against src.
func Count(src CounterSource, t models.CriterionType, userID int64) (int, error) {
	counter, ok := registry[t]
	if !ok {
		return 0, ErrUnknownCriterion
	}
	return counter(src, userID)
}
