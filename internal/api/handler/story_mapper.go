package handler

import (
	"github.com/sthaniya/sthaniya-api/internal/core/domain"
	"github.com/sthaniya/sthaniya-api/internal/core/ports"
)

// toStoryContent maps the HTTP request to the service DTO.
func toStoryContent(req storyRequest) ports.StoryContent {
	images := make([]domain.StoryImage, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, domain.StoryImage{URL: img.URL, Caption: img.Caption})
	}
	return ports.StoryContent{
		Title:                req.Title,
		FoodItem:             req.FoodItem,
		Origin:               req.Origin,
		CulturalSignificance: req.CulturalSignificance,
		PersonalStory:        req.PersonalStory,
		Ingredients:          req.Ingredients,
		PreparationMethod:    req.PreparationMethod,
		ModernAdaptation:     req.ModernAdaptation,
		Category:             domain.StoryCategory(req.Category),
		Images:               images,
		Tags:                 req.Tags,
		Status:               domain.StoryStatus(req.Status),
	}
}
