package domain

import "time"

// StoryCategory tags a story with the kind of food tradition it describes.
type StoryCategory string

const (
	CategoryTraditional       StoryCategory = "traditional"
	CategoryStreetFood        StoryCategory = "street-food"
	CategoryFestival          StoryCategory = "festival"
	CategoryFamilyRecipe      StoryCategory = "family-recipe"
	CategoryRegionalSpecialty StoryCategory = "regional-specialty"
	CategoryModernFusion      StoryCategory = "modern-fusion"
)

var storyCategories = map[StoryCategory]struct{}{
	CategoryTraditional:       {},
	CategoryStreetFood:        {},
	CategoryFestival:          {},
	CategoryFamilyRecipe:      {},
	CategoryRegionalSpecialty: {},
	CategoryModernFusion:      {},
}

// ValidCategory reports whether c is one of the fixed category tags.
func ValidCategory(c StoryCategory) bool {
	_, ok := storyCategories[c]
	return ok
}

// StoryStatus is the lifecycle state of a story.
type StoryStatus string

const (
	StatusDraft     StoryStatus = "draft"
	StatusPublished StoryStatus = "published"
	StatusArchived  StoryStatus = "archived"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s StoryStatus) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// StoryImage is an image reference embedded in a story.
type StoryImage struct {
	URL     string `json:"url" bson:"url"`
	Caption string `json:"caption,omitempty" bson:"caption,omitempty"`
}

// Like records that a user liked a story. At most one like per user is kept;
// the repository enforces this with a guarded array append.
type Like struct {
	User      string    `json:"user" bson:"user"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Comment is a user comment embedded in a story. UserName is denormalised at
// write time so reads never need a join.
type Comment struct {
	ID        string    `json:"_id" bson:"_id"`
	User      string    `json:"user" bson:"user"`
	UserName  string    `json:"userName" bson:"user_name"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Story is a user-authored food story. Only the author may mutate or delete it.
type Story struct {
	ID                   string        `json:"_id"`
	Title                string        `json:"title"`
	FoodItem             string        `json:"foodItem"`
	Origin               string        `json:"origin,omitempty"`
	CulturalSignificance string        `json:"culturalSignificance,omitempty"`
	PersonalStory        string        `json:"personalStory"`
	Ingredients          string        `json:"ingredients,omitempty"`
	PreparationMethod    string        `json:"preparationMethod,omitempty"`
	ModernAdaptation     string        `json:"modernAdaptation,omitempty"`
	Category             StoryCategory `json:"category"`
	Author               string        `json:"author"`
	AuthorName           string        `json:"authorName"`
	Images               []StoryImage  `json:"images"`
	Tags                 []string      `json:"tags"`
	Likes                []Like        `json:"likes"`
	Comments             []Comment     `json:"comments"`
	Status               StoryStatus   `json:"status"`
	Views                int64         `json:"views"`
	CreatedAt            time.Time     `json:"createdAt"`
	UpdatedAt            time.Time     `json:"updatedAt"`
}
