package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/models"
)

type AwardRepo struct {
	col *mongo.Collection
}

func NewAwardRepo(db *mongo.Database) *AwardRepo {
	return &AwardRepo{col: db.Collection("awards")}
}

func (r *AwardRepo) Insert(ctx context.Context, a *models.Award) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}

// List returns awards by year descending; years are free-form strings so
// this is a lexicographic sort, with _id breaking ties by recency.
func (r *AwardRepo) List(ctx context.Context) ([]models.Award, error) {
	opts := options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Award{}
	for cur.Next(ctx) {
		var a models.Award
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, cur.Err()
}

func (r *AwardRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
