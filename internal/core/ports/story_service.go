package ports

import (
	"context"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

// StoryService defines use-case operations for authored stories. Mutation and
// deletion are restricted to the story's author; a non-owner receives the same
// domain.ErrStoryNotFound a nonexistent id produces.
type StoryService interface {
	Create(ctx context.Context, author *domain.User, content StoryContent) (*domain.Story, error)
	// Get returns the story and counts the view.
	Get(ctx context.Context, id string) (*domain.Story, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Story, error)
	Update(ctx context.Context, id, authorID string, content StoryContent) (*domain.Story, error)
	Delete(ctx context.Context, id, authorID string) error
	Like(ctx context.Context, id string, user *domain.User) (*domain.Story, error)
	Comment(ctx context.Context, id string, user *domain.User, text string) (*domain.Story, error)
	// DeleteComment removes a comment when the requester authored either the
	// comment or the story.
	DeleteComment(ctx context.Context, id, commentID, requesterID string) (*domain.Story, error)
}
