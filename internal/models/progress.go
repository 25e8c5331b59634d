package models

import "time"

// CourseProgress tracks a user's completion of one course. The completed
// position set is the source of truth; Percentage is a cache recomputed on
// every write. Positions index the course's flattened curriculum (module
// order, then lesson order within the module).
type CourseProgress struct {
	UserID             int64     `json:"user_id"`
	CourseID           int64     `json:"course_id"`
	CompletedPositions []int64   `json:"completed_positions"`
	Percentage         int       `json:"percentage"`
	LastAccessedAt     time.Time `json:"last_accessed_at"`
}

type CompleteLessonRequest struct {
	CourseID int64 `json:"course_id"`
	Position int   `json:"position"`
}

type CompleteLessonResponse struct {
	Progress             CourseProgress        `json:"progress"`
	AchievementsUnlocked []AchievementUnlocked `json:"achievements_unlocked"`
}
