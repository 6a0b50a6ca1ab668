package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

const collectionUploads = "uploads"

// UploadRepository implements ports.UploadRepository on MongoDB.
type UploadRepository struct {
	col *mongo.Collection
}

func NewUploadRepository(db *mongo.Database) *UploadRepository {
	return &UploadRepository{col: db.Collection(collectionUploads)}
}

type mongoUpload struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Description string             `bson:"description"`
	Image       string             `bson:"image"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mu mongoUpload) toDomain() *domain.Upload {
	return &domain.Upload{
		ID:          mu.ID.Hex(),
		Name:        mu.Name,
		Email:       mu.Email,
		Description: mu.Description,
		Image:       mu.Image,
		CreatedAt:   mu.CreatedAt,
		UpdatedAt:   mu.UpdatedAt,
	}
}

func (r *UploadRepository) Create(ctx context.Context, upload *domain.Upload) (*domain.Upload, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUpload{
		Name:        upload.Name,
		Email:       upload.Email,
		Description: upload.Description,
		Image:       upload.Image,
		CreatedAt:   upload.CreatedAt,
		UpdatedAt:   upload.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert upload: %w", err)
	}

	created := *upload
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UploadRepository) ListRecent(ctx context.Context, limit int64) ([]*domain.Upload, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	return r.list(ctx, bson.M{}, opts)
}

func (r *UploadRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Upload, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.list(ctx, bson.M{"email": email}, opts)
}

func (r *UploadRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Upload, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer cur.Close(ctx)

	uploads := []*domain.Upload{}
	for cur.Next(ctx) {
		var mu mongoUpload
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode upload: %w", err)
		}
		uploads = append(uploads, mu.toDomain())
	}
	return uploads, cur.Err()
}

// EnsureIndexes creates the email lookup index for the my-uploads route.
func (r *UploadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
