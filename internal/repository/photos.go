package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/models"
)

type PhotoRepo struct {
	col *mongo.Collection
}

func NewPhotoRepo(db *mongo.Database) *PhotoRepo {
	return &PhotoRepo{col: db.Collection("photos")}
}

func (r *PhotoRepo) Insert(ctx context.Context, p *models.Photo) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.UploadedAt.IsZero() {
		p.UploadedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, p)
	return err
}

// List returns every photo, newest upload first. Ties fall back to _id so
// equal timestamps still list by insertion recency.
func (r *PhotoRepo) List(ctx context.Context) ([]models.Photo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Photo{}
	for cur.Next(ctx) {
		var p models.Photo
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

func (r *PhotoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Photo, error) {
	var p models.Photo
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PhotoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
