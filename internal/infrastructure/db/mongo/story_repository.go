package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
	"github.com/sthaniya/sthaniya-api/internal/core/ports"
)

const collectionStories = "stories"

// StoryRepository implements ports.StoryRepository on MongoDB. Likes and
// comments live as embedded arrays; every mutation is a single update document
// so concurrent writers cannot lose each other's changes.
type StoryRepository struct {
	col *mongo.Collection
}

func NewStoryRepository(db *mongo.Database) *StoryRepository {
	return &StoryRepository{col: db.Collection(collectionStories)}
}

type mongoLike struct {
	User      primitive.ObjectID `bson:"user"`
	CreatedAt time.Time          `bson:"created_at"`
}

type mongoComment struct {
	ID        primitive.ObjectID `bson:"_id"`
	User      primitive.ObjectID `bson:"user"`
	UserName  string             `bson:"user_name"`
	Comment   string             `bson:"comment"`
	CreatedAt time.Time          `bson:"created_at"`
}

type mongoStory struct {
	ID                   primitive.ObjectID  `bson:"_id,omitempty"`
	Title                string              `bson:"title"`
	FoodItem             string              `bson:"food_item"`
	Origin               string              `bson:"origin,omitempty"`
	CulturalSignificance string              `bson:"cultural_significance,omitempty"`
	PersonalStory        string              `bson:"personal_story"`
	Ingredients          string              `bson:"ingredients,omitempty"`
	PreparationMethod    string              `bson:"preparation_method,omitempty"`
	ModernAdaptation     string              `bson:"modern_adaptation,omitempty"`
	Category             string              `bson:"category"`
	Author               primitive.ObjectID  `bson:"author"`
	AuthorName           string              `bson:"author_name"`
	Images               []domain.StoryImage `bson:"images"`
	Tags                 []string            `bson:"tags"`
	Likes                []mongoLike         `bson:"likes"`
	Comments             []mongoComment      `bson:"comments"`
	Status               string              `bson:"status"`
	Views                int64               `bson:"views"`
	CreatedAt            time.Time           `bson:"created_at"`
	UpdatedAt            time.Time           `bson:"updated_at"`
}

func (ms mongoStory) toDomain() *domain.Story {
	likes := make([]domain.Like, 0, len(ms.Likes))
	for _, l := range ms.Likes {
		likes = append(likes, domain.Like{User: l.User.Hex(), CreatedAt: l.CreatedAt})
	}
	comments := make([]domain.Comment, 0, len(ms.Comments))
	for _, c := range ms.Comments {
		comments = append(comments, domain.Comment{
			ID:        c.ID.Hex(),
			User:      c.User.Hex(),
			UserName:  c.UserName,
			Comment:   c.Comment,
			CreatedAt: c.CreatedAt,
		})
	}
	images := ms.Images
	if images == nil {
		images = []domain.StoryImage{}
	}
	tags := ms.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Story{
		ID:                   ms.ID.Hex(),
		Title:                ms.Title,
		FoodItem:             ms.FoodItem,
		Origin:               ms.Origin,
		CulturalSignificance: ms.CulturalSignificance,
		PersonalStory:        ms.PersonalStory,
		Ingredients:          ms.Ingredients,
		PreparationMethod:    ms.PreparationMethod,
		ModernAdaptation:     ms.ModernAdaptation,
		Category:             domain.StoryCategory(ms.Category),
		Author:               ms.Author.Hex(),
		AuthorName:           ms.AuthorName,
		Images:               images,
		Tags:                 tags,
		Likes:                likes,
		Comments:             comments,
		Status:               domain.StoryStatus(ms.Status),
		Views:                ms.Views,
		CreatedAt:            ms.CreatedAt,
		UpdatedAt:            ms.UpdatedAt,
	}
}

func contentToSet(content ports.StoryContent, at time.Time) bson.M {
	images := content.Images
	if images == nil {
		images = []domain.StoryImage{}
	}
	tags := content.Tags
	if tags == nil {
		tags = []string{}
	}
	return bson.M{
		"title":                 content.Title,
		"food_item":             content.FoodItem,
		"origin":                content.Origin,
		"cultural_significance": content.CulturalSignificance,
		"personal_story":        content.PersonalStory,
		"ingredients":           content.Ingredients,
		"preparation_method":    content.PreparationMethod,
		"modern_adaptation":     content.ModernAdaptation,
		"category":              string(content.Category),
		"images":                images,
		"tags":                  tags,
		"status":                string(content.Status),
		"updated_at":            at,
	}
}

// Create inserts a new story document.
func (r *StoryRepository) Create(ctx context.Context, story *domain.Story) (*domain.Story, error) {
	authorID, err := primitive.ObjectIDFromHex(story.Author)
	if err != nil {
		return nil, fmt.Errorf("invalid author id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoStory{
		Title:                story.Title,
		FoodItem:             story.FoodItem,
		Origin:               story.Origin,
		CulturalSignificance: story.CulturalSignificance,
		PersonalStory:        story.PersonalStory,
		Ingredients:          story.Ingredients,
		PreparationMethod:    story.PreparationMethod,
		ModernAdaptation:     story.ModernAdaptation,
		Category:             string(story.Category),
		Author:               authorID,
		AuthorName:           story.AuthorName,
		Images:               story.Images,
		Tags:                 story.Tags,
		Likes:                []mongoLike{},
		Comments:             []mongoComment{},
		Status:               string(story.Status),
		Views:                0,
		CreatedAt:            story.CreatedAt,
		UpdatedAt:            story.UpdatedAt,
	}
	if doc.Images == nil {
		doc.Images = []domain.StoryImage{}
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert story: %w", err)
	}

	created := *story
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *StoryRepository) FindByID(ctx context.Context, id string) (*domain.Story, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStoryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoStory
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoryNotFound
		}
		return nil, fmt.Errorf("find story: %w", err)
	}
	return ms.toDomain(), nil
}

// FindByIDAndBumpViews increments the view counter and returns the updated
// story in one round trip.
func (r *StoryRepository) FindByIDAndBumpViews(ctx context.Context, id string) (*domain.Story, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStoryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$inc": bson.M{"views": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ms mongoStory
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoryNotFound
		}
		return nil, fmt.Errorf("find story: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *StoryRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Story, error) {
	oid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return []*domain.Story{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"author": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	defer cur.Close(ctx)

	stories := []*domain.Story{}
	for cur.Next(ctx) {
		var ms mongoStory
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode story: %w", err)
		}
		stories = append(stories, ms.toDomain())
	}
	return stories, cur.Err()
}

// Update replaces the editable content of a story. The filter matches both id
// and author, so a non-owner sees the same miss a nonexistent id produces.
func (r *StoryRepository) Update(ctx context.Context, id, authorID string, content ports.StoryContent, at time.Time) (*domain.Story, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStoryNotFound
	}
	aid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return nil, domain.ErrStoryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "author": aid}
	update := bson.M{"$set": contentToSet(content, at)}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ms mongoStory
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoryNotFound
		}
		return nil, fmt.Errorf("update story: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *StoryRepository) Delete(ctx context.Context, id, authorID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrStoryNotFound
	}
	aid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return domain.ErrStoryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "author": aid})
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrStoryNotFound
	}
	return nil
}

// AddLike appends a like unless the user already liked the story. The guard
// lives in the filter ("likes.user" $ne), so two concurrent likes from
// different users both land and a repeat from the same user is a no-op.
func (r *StoryRepository) AddLike(ctx context.Context, id, userID string, at time.Time) (*domain.Story, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStoryNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrStoryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "likes.user": bson.M{"$ne": uid}}
	update := bson.M{
		"$push": bson.M{"likes": mongoLike{User: uid, CreatedAt: at}},
		"$set":  bson.M{"updated_at": at},
	}

	if _, err := r.col.UpdateOne(ctx, filter, update); err != nil {
		return nil, fmt.Errorf("add like: %w", err)
	}

	// Matched zero documents either because the story is gone or because the
	// like already exists; the read below distinguishes the two.
	return r.FindByID(ctx, id)
}

func (r *StoryRepository) AddComment(ctx context.Context, id string, comment domain.Comment) (*domain.Story, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStoryNotFound
	}
	uid, err := primitive.ObjectIDFromHex(comment.User)
	if err != nil {
		return nil, domain.ErrStoryNotFound
	}
	cid, err := primitive.ObjectIDFromHex(comment.ID)
	if err != nil {
		cid = primitive.NewObjectID()
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoComment{
		ID:        cid,
		User:      uid,
		UserName:  comment.UserName,
		Comment:   comment.Comment,
		CreatedAt: comment.CreatedAt,
	}
	update := bson.M{
		"$push": bson.M{"comments": doc},
		"$set":  bson.M{"updated_at": comment.CreatedAt},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ms mongoStory
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoryNotFound
		}
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return ms.toDomain(), nil
}

// RemoveComment pulls the comment with the given id from the story's array.
func (r *StoryRepository) RemoveComment(ctx context.Context, id, commentID string, at time.Time) (*domain.Story, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStoryNotFound
	}
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": cid}},
		"$set":  bson.M{"updated_at": at},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ms mongoStory
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoryNotFound
		}
		return nil, fmt.Errorf("remove comment: %w", err)
	}
	return ms.toDomain(), nil
}

// EnsureIndexes creates the author index and the declared text index on
// title/food_item/origin.
func (r *StoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "food_item", Value: "text"},
			{Key: "origin", Value: "text"},
		}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
