package ports

import (
	"context"
	"time"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

// StoryContent carries the author-editable fields of a story. It is used both
// for creation and for full updates.
type StoryContent struct {
	Title                string
	FoodItem             string
	Origin               string
	CulturalSignificance string
	PersonalStory        string
	Ingredients          string
	PreparationMethod    string
	ModernAdaptation     string
	Category             domain.StoryCategory
	Images               []domain.StoryImage
	Tags                 []string
	Status               domain.StoryStatus
}

// StoryRepository defines persistence for stories. All array mutations (likes,
// comments) are single atomic document updates; there is no read-modify-write
// path that could lose a concurrent writer's change.
type StoryRepository interface {
	Create(ctx context.Context, story *domain.Story) (*domain.Story, error)
	FindByID(ctx context.Context, id string) (*domain.Story, error)
	// FindByIDAndBumpViews returns the story after atomically incrementing its
	// view counter.
	FindByIDAndBumpViews(ctx context.Context, id string) (*domain.Story, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Story, error)
	// Update replaces the editable content of the story matching both id and
	// author. A miss on either condition yields domain.ErrStoryNotFound.
	Update(ctx context.Context, id, authorID string, content StoryContent, at time.Time) (*domain.Story, error)
	// Delete removes the story matching both id and author.
	Delete(ctx context.Context, id, authorID string) error
	// AddLike appends a like unless the user already liked the story. Returns
	// the story either way; the append is guarded inside a single update.
	AddLike(ctx context.Context, id, userID string, at time.Time) (*domain.Story, error)
	AddComment(ctx context.Context, id string, comment domain.Comment) (*domain.Story, error)
	// RemoveComment pulls the comment with the given id from the story.
	RemoveComment(ctx context.Context, id, commentID string, at time.Time) (*domain.Story, error)
}
