package repository

import (
	"context"
	"errors"

	"mind-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TestRepository struct {
	Col *mongo.Collection
}

func NewTestRepository(db *mongo.Database) *TestRepository {
	return &TestRepository{Col: db.Collection("tests")}
}

// FindByID returns (nil, nil) for an unknown test id.
func (r *TestRepository) FindByID(ctx context.Context, id int) (*models.TestDefinition, error) {
	var def models.TestDefinition
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&def)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &def, nil
}

func (r *TestRepository) FindAll(ctx context.Context) ([]models.TestDefinition, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var defs []models.TestDefinition
	for cur.Next(ctx) {
		var def models.TestDefinition
		if err := cur.Decode(&def); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, cur.Err()
}
