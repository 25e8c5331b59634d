package models

import "time"

// ── Courses & enrollment ──────────────────────────────────

type Course struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	LessonCount int       `json:"lesson_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type EnrollRequest struct {
	CourseID int64 `json:"course_id"`
}

type EnrollResponse struct {
	CourseID             int64                 `json:"course_id"`
	AlreadyEnrolled      bool                  `json:"already_enrolled"`
	AchievementsUnlocked []AchievementUnlocked `json:"achievements_unlocked"`
}

// ── Certificates ──────────────────────────────────────────

type Certificate struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	CourseID int64     `json:"course_id"`
	IssuedAt time.Time `json:"issued_at"`
}

type IssueCertificateRequest struct {
	CourseID int64 `json:"course_id"`
}

type IssueCertificateResponse struct {
	Certificate          Certificate           `json:"certificate"`
	AchievementsUnlocked []AchievementUnlocked `json:"achievements_unlocked"`
}

// ── Forum ─────────────────────────────────────────────────

type ForumPost struct {
	ID        int64     `json:"id"`
	CourseID  *int64    `json:"course_id,omitempty"`
	AuthorID  int64     `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type ForumReply struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	AuthorID   int64     `json:"author_id"`
	Body       string    `json:"body"`
	IsAccepted bool      `json:"is_accepted"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreatePostRequest struct {
	CourseID *int64 `json:"course_id,omitempty"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

type CreatePostResponse struct {
	Post                 ForumPost             `json:"post"`
	AchievementsUnlocked []AchievementUnlocked `json:"achievements_unlocked"`
}

type CreateReplyRequest struct {
	Body string `json:"body"`
}

type AcceptAnswerRequest struct {
	ReplyID int64 `json:"reply_id"`
}

type AcceptAnswerResponse struct {
	PostID               int64                 `json:"post_id"`
	ReplyID              int64                 `json:"reply_id"`
	AchievementsUnlocked []AchievementUnlocked `json:"achievements_unlocked"`
}

// ── Quizzes ───────────────────────────────────────────────

type QuizAttempt struct {
	ID          int64     `json:"id"`
	QuizID      int64     `json:"quiz_id"`
	UserID      int64     `json:"user_id"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type SubmitAttemptRequest struct {
	Score int `json:"score"`
}

type SubmitAttemptResponse struct {
	Attempt              QuizAttempt           `json:"attempt"`
	AchievementsUnlocked []AchievementUnlocked `json:"achievements_unlocked"`
}
