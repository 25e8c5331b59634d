package models

import "time"

// CriterionType identifies the counting query an achievement's criterion is
// evaluated against. The set is closed: a catalog row carrying a type with no
// registered counter can never be satisfied.
type CriterionType string

const (
	CriterionForumPosts      CriterionType = "forum_posts"
	CriterionEnrollments     CriterionType = "enrollments"
	CriterionQuizAttempts    CriterionType = "quiz_attempts"
	CriterionPerfectQuiz     CriterionType = "perfect_quiz"
	CriterionCertificates    CriterionType = "certificates"
	CriterionAcceptedAnswers CriterionType = "accepted_answers"
)

// Criterion is the rule that earns an achievement: the user's count for Type
// must reach Threshold.
type Criterion struct {
	Type      CriterionType `json:"type"`
	Threshold int           `json:"threshold"`
}

// Achievement is a catalog entry. The catalog is admin-authored and rarely
// changes; grants reference it by id.
type Achievement struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"`
	Criterion   Criterion `json:"criterion"`
	Points      int       `json:"points"`
	CreatedAt   time.Time `json:"created_at"`
}

// EarnedAchievement is a grant joined with its catalog detail.
type EarnedAchievement struct {
	Achievement
	EarnedAt time.Time `json:"earned_at"`
}

// AchievementUnlocked is the user-visible unlock event surfaced when a grant
// is newly inserted. It is never emitted twice for the same (user, achievement).
type AchievementUnlocked struct {
	AchievementID int64     `json:"achievement_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Points        int       `json:"points"`
	EarnedAt      time.Time `json:"earned_at"`
}

type UserAchievementsResponse struct {
	Achievements []EarnedAchievement `json:"achievements"`
	TotalPoints  int                 `json:"total_points"`
}
