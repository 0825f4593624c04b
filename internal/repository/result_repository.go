package repository

import (
	"context"
	"errors"

	"mind-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ResultRepository struct {
	Col *mongo.Collection
}

func NewResultRepository(db *mongo.Database) *ResultRepository {
	return &ResultRepository{Col: db.Collection("results")}
}

func (r *ResultRepository) Create(ctx context.Context, rec *models.ResultRecord) error {
	res, err := r.Col.InsertOne(ctx, rec)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid
	}
	return nil
}

// FindByToken returns the most recent result for a progress token, or
// (nil, nil) when none exists.
func (r *ResultRepository) FindByToken(ctx context.Context, token string) (*models.ResultRecord, error) {
	var rec models.ResultRecord
	err := r.Col.FindOne(ctx, bson.M{"token": token}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *ResultRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ResultRecord, error) {
	var rec models.ResultRecord
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
