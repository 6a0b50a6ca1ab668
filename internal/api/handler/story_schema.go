package handler

import "github.com/sthaniya/sthaniya-api/internal/core/domain"

type storyImageRequest struct {
	URL     string `json:"url"     validate:"required"`
	Caption string `json:"caption"`
}

// storyRequest carries the author-editable fields; used for both create and
// full update.
type storyRequest struct {
	Title                string              `json:"title"         validate:"required"`
	FoodItem             string              `json:"foodItem"      validate:"required"`
	Origin               string              `json:"origin"`
	CulturalSignificance string              `json:"culturalSignificance"`
	PersonalStory        string              `json:"personalStory" validate:"required"`
	Ingredients          string              `json:"ingredients"`
	PreparationMethod    string              `json:"preparationMethod"`
	ModernAdaptation     string              `json:"modernAdaptation"`
	Category             string              `json:"category"      validate:"omitempty,oneof=traditional street-food festival family-recipe regional-specialty modern-fusion"`
	Images               []storyImageRequest `json:"images"`
	Tags                 []string            `json:"tags"`
	Status               string              `json:"status"        validate:"omitempty,oneof=draft published archived"`
}

type commentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

type storyResponse struct {
	Message string        `json:"message,omitempty"`
	Story   *domain.Story `json:"story"`
}

type storyListResponse struct {
	Stories []*domain.Story `json:"stories"`
}

type messageResponse struct {
	Message string `json:"message"`
}
