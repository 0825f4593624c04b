package repository

import (
	"context"
	"errors"

	"mind-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TokenRepository struct {
	Col *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{Col: db.Collection("access_tokens")}
}

func (r *TokenRepository) Create(ctx context.Context, tok *models.AccessToken) error {
	res, err := r.Col.InsertOne(ctx, tok)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		tok.ID = oid
	}
	return nil
}

func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*models.AccessToken, error) {
	var tok models.AccessToken
	err := r.Col.FindOne(ctx, bson.M{"token": token}).Decode(&tok)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tok, nil
}
