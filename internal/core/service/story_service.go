package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
	"github.com/sthaniya/sthaniya-api/internal/core/ports"
)

// StoryService implements story CRUD with per-resource ownership checks.
type StoryService struct {
	repo ports.StoryRepository
	log  zerolog.Logger
}

func NewStoryService(repo ports.StoryRepository, log zerolog.Logger) *StoryService {
	return &StoryService{repo: repo, log: log}
}

// Create persists a new story authored by the given user.
func (s *StoryService) Create(ctx context.Context, author *domain.User, content ports.StoryContent) (*domain.Story, error) {
	if err := validateContent(&content); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	story := &domain.Story{
		Title:                content.Title,
		FoodItem:             content.FoodItem,
		Origin:               content.Origin,
		CulturalSignificance: content.CulturalSignificance,
		PersonalStory:        content.PersonalStory,
		Ingredients:          content.Ingredients,
		PreparationMethod:    content.PreparationMethod,
		ModernAdaptation:     content.ModernAdaptation,
		Category:             content.Category,
		Author:               author.ID,
		AuthorName:           author.Name,
		Images:               content.Images,
		Tags:                 content.Tags,
		Likes:                []domain.Like{},
		Comments:             []domain.Comment{},
		Status:               content.Status,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	created, err := s.repo.Create(ctx, story)
	if err != nil {
		s.log.Error().Err(err).Str("author", author.ID).Msg("failed to create story")
		return nil, err
	}

	s.log.Info().Str("story_id", created.ID).Str("author", author.ID).Str("category", string(created.Category)).Msg("story created")
	return created, nil
}

// Get returns a single story and counts the view.
func (s *StoryService) Get(ctx context.Context, id string) (*domain.Story, error) {
	return s.repo.FindByIDAndBumpViews(ctx, id)
}

// ListByAuthor returns the author's stories, newest first.
func (s *StoryService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Story, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

// Update replaces the editable content of a story the caller owns. A miss on
// id or ownership is reported identically as not found.
func (s *StoryService) Update(ctx context.Context, id, authorID string, content ports.StoryContent) (*domain.Story, error) {
	if err := validateContent(&content); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, authorID, content, time.Now().UTC())
}

// Delete removes a story the caller owns.
func (s *StoryService) Delete(ctx context.Context, id, authorID string) error {
	if err := s.repo.Delete(ctx, id, authorID); err != nil {
		return err
	}
	s.log.Info().Str("story_id", id).Str("author", authorID).Msg("story deleted")
	return nil
}

// Like appends a like for the user. Repeated likes from the same user are
// absorbed by the repository's guarded append, so the call is idempotent.
func (s *StoryService) Like(ctx context.Context, id string, user *domain.User) (*domain.Story, error) {
	return s.repo.AddLike(ctx, id, user.ID, time.Now().UTC())
}

// Comment appends a comment with the user's denormalised display name.
func (s *StoryService) Comment(ctx context.Context, id string, user *domain.User, text string) (*domain.Story, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", domain.ErrValidation)
	}

	comment := domain.Comment{
		ID:        newCommentID(),
		User:      user.ID,
		UserName:  user.Name,
		Comment:   text,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.AddComment(ctx, id, comment)
}

// DeleteComment removes a comment when the requester authored the comment or
// owns the story. Anything else, including a nonexistent story or comment,
// reads as not found.
func (s *StoryService) DeleteComment(ctx context.Context, id, commentID, requesterID string) (*domain.Story, error) {
	story, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var target *domain.Comment
	for i := range story.Comments {
		if story.Comments[i].ID == commentID {
			target = &story.Comments[i]
			break
		}
	}
	if target == nil {
		return nil, domain.ErrCommentNotFound
	}
	if target.User != requesterID && story.Author != requesterID {
		return nil, domain.ErrCommentNotFound
	}

	return s.repo.RemoveComment(ctx, id, commentID, time.Now().UTC())
}

func validateContent(content *ports.StoryContent) error {
	if content.Title == "" || content.FoodItem == "" || content.PersonalStory == "" {
		return fmt.Errorf("%w: title, food item and personal story are required", domain.ErrValidation)
	}
	if content.Category == "" {
		content.Category = domain.CategoryTraditional
	}
	if !domain.ValidCategory(content.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, content.Category)
	}
	if content.Status == "" {
		content.Status = domain.StatusPublished
	}
	if !domain.ValidStatus(content.Status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, content.Status)
	}
	return nil
}

// newCommentID returns a random 12-byte hex id for an embedded comment.
func newCommentID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%024x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
