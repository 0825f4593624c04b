package repository

import (
	"context"

	"mind-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SavedResultRepository struct {
	Col *mongo.Collection
}

func NewSavedResultRepository(db *mongo.Database) *SavedResultRepository {
	return &SavedResultRepository{Col: db.Collection("saved_results")}
}

func (r *SavedResultRepository) Create(ctx context.Context, rec *models.SavedResult) error {
	res, err := r.Col.InsertOne(ctx, rec)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid
	}
	return nil
}

// FindRecentByMember returns up to limit saved results, newest first.
func (r *SavedResultRepository) FindRecentByMember(ctx context.Context, memberID string, limit int) ([]models.SavedResult, error) {
	opts := options.Find().
		SetSort(bson.M{"time_date": -1}).
		SetLimit(int64(limit))

	cur, err := r.Col.Find(ctx, bson.M{"member_id": memberID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var saved []models.SavedResult
	for cur.Next(ctx) {
		var rec models.SavedResult
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		saved = append(saved, rec)
	}
	return saved, cur.Err()
}
