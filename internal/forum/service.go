package forum

import (
	"log"
	"strings"

	"github.com/learnhub/backend/internal/models"
)

// Evaluator is the achievement pipeline fired after a post is created and
// after a reply is accepted as the answer.
type Evaluator interface {
	EvaluateAndAward(userID int64) ([]models.AchievementUnlocked, error)
}

type Service struct {
	store        *Store
	achievements Evaluator
}

func NewService(store *Store, achievements Evaluator) *Service {
	return &Service{store: store, achievements: achievements}
}

func (s *Service) CreatePost(authorID int64, req models.CreatePostRequest) (*models.CreatePostResponse, error) {
	post, err := s.store.CreatePost(authorID, req.CourseID, strings.TrimSpace(req.Title), req.Body)
	if err != nil {
		return nil, err
	}

	resp := &models.CreatePostResponse{
		Post:                 *post,
		AchievementsUnlocked: []models.AchievementUnlocked{},
	}

	unlocked, err := s.achievements.EvaluateAndAward(authorID)
	if err != nil {
		log.Printf("[forum] achievement pass after post failed: %v", err)
	} else if unlocked != nil {
		resp.AchievementsUnlocked = unlocked
	}
	return resp, nil
}

func (s *Service) CreateReply(postID, authorID int64, body string) (*models.ForumReply, error) {
	if _, err := s.store.GetPostAuthor(postID); err != nil {
		return nil, err
	}
	return s.store.CreateReply(postID, authorID, body)
}

// AcceptAnswer marks the reply as the accepted answer. Only the post author
// may accept; the achievement pass runs for the reply author, whose
// accepted_answers count just moved.
func (s *Service) AcceptAnswer(postID, replyID, userID int64) (*models.AcceptAnswerResponse, error) {
	postAuthor, err := s.store.GetPostAuthor(postID)
	if err != nil {
		return nil, err
	}
	if postAuthor != userID {
		return nil, ErrNotPostAuthor
	}

	replyAuthor, err := s.store.AcceptAnswer(postID, replyID)
	if err != nil {
		return nil, err
	}

	resp := &models.AcceptAnswerResponse{
		PostID:               postID,
		ReplyID:              replyID,
		AchievementsUnlocked: []models.AchievementUnlocked{},
	}

	unlocked, err := s.achievements.EvaluateAndAward(replyAuthor)
	if err != nil {
		log.Printf("[forum] achievement pass after accepted answer failed: %v", err)
	} else if unlocked != nil {
		resp.AchievementsUnlocked = unlocked
	}
	return resp, nil
}
