package repository

import (
	"context"
	"errors"

	"mind-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type LinkedUserRepository struct {
	Col *mongo.Collection
}

func NewLinkedUserRepository(db *mongo.Database) *LinkedUserRepository {
	return &LinkedUserRepository{Col: db.Collection("linked_users")}
}

func (r *LinkedUserRepository) Create(ctx context.Context, link *models.LinkedUser) error {
	res, err := r.Col.InsertOne(ctx, link)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		link.ID = oid
	}
	return nil
}

// FindByLogin matches the full provider identity used on social login.
func (r *LinkedUserRepository) FindByLogin(ctx context.Context, providerUserID, nickname, service string) (*models.LinkedUser, error) {
	return r.findOne(ctx, bson.M{
		"provider_user_id": providerUserID,
		"user_nickname":    nickname,
		"linked_service":   service,
	})
}

func (r *LinkedUserRepository) FindByProviderUserID(ctx context.Context, providerUserID string) (*models.LinkedUser, error) {
	return r.findOne(ctx, bson.M{"provider_user_id": providerUserID})
}

func (r *LinkedUserRepository) findOne(ctx context.Context, filter bson.M) (*models.LinkedUser, error) {
	var link models.LinkedUser
	err := r.Col.FindOne(ctx, filter).Decode(&link)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}
