package forum

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnhub/backend/internal/models"
)

var (
	// ErrPostNotFound is returned when the referenced post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotPostAuthor is returned when someone other than the post author
	// tries to accept an answer.
	ErrNotPostAuthor = errors.New("only the post author can accept an answer")
	// ErrAnswerExists is returned when the post already has an accepted answer.
	ErrAnswerExists = errors.New("post already has an accepted answer")
	// ErrReplyNotFound is returned when the reply does not belong to the post.
	ErrReplyNotFound = errors.New("reply not found")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreatePost(authorID int64, courseID *int64, title, body string) (*models.ForumPost, error) {
	post := models.ForumPost{AuthorID: authorID, CourseID: courseID, Title: title, Body: body}
	err := s.db.QueryRow(
		`INSERT INTO forum_posts (course_id, author_id, title, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		courseID, authorID, title, body,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

func (s *Store) CreateReply(postID, authorID int64, body string) (*models.ForumReply, error) {
	reply := models.ForumReply{PostID: postID, AuthorID: authorID, Body: body}
	err := s.db.QueryRow(
		`INSERT INTO forum_replies (post_id, author_id, body)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		postID, authorID, body,
	).Scan(&reply.ID, &reply.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}
	return &reply, nil
}

func (s *Store) GetPostAuthor(postID int64) (int64, error) {
	var authorID int64
	err := s.db.QueryRow(
		`SELECT author_id FROM forum_posts WHERE id = $1`, postID,
	).Scan(&authorID)
	if err == sql.ErrNoRows {
		return 0, ErrPostNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get post author: %w", err)
	}
	return authorID, nil
}

// AcceptAnswer flags the reply as the post's accepted answer and returns the
// reply author. The partial unique index on (post_id) WHERE is_accepted
// guards against two answers being accepted concurrently.
func (s *Store) AcceptAnswer(postID, replyID int64) (int64, error) {
	var replyAuthorID int64
	err := s.db.QueryRow(
		`UPDATE forum_replies SET is_accepted = TRUE
		 WHERE id = $1 AND post_id = $2
		   AND NOT EXISTS (
		       SELECT 1 FROM forum_replies WHERE post_id = $2 AND is_accepted)
		 RETURNING author_id`,
		replyID, postID,
	).Scan(&replyAuthorID)
	if err == sql.ErrNoRows {
		var accepted bool
		if e := s.db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM forum_replies WHERE post_id = $1 AND is_accepted)`,
			postID,
		).Scan(&accepted); e == nil && accepted {
			return 0, ErrAnswerExists
		}
		return 0, ErrReplyNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("accept answer: %w", err)
	}
	return replyAuthorID, nil
}
