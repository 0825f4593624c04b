package repository

import (
	"context"
	"errors"

	"mind-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AccountRepository struct {
	Col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{Col: db.Collection("accounts")}
}

func (r *AccountRepository) Create(ctx context.Context, acc *models.Account) error {
	res, err := r.Col.InsertOne(ctx, acc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		acc.ID = oid
	}
	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByUserIDOrNickname backs the duplicate check on registration.
func (r *AccountRepository) FindByUserIDOrNickname(ctx context.Context, userID, nickname string) (*models.Account, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"user_id": userID},
		bson.M{"nickname": nickname},
	}})
}

func (r *AccountRepository) FindByCredentials(ctx context.Context, userID, hashedPW string) (*models.Account, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "user_pw": hashedPW})
}

func (r *AccountRepository) FindBySocialLinkedID(ctx context.Context, linkedID string) (*models.Account, error) {
	return r.findOne(ctx, bson.M{"social_linked_id": linkedID})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*models.Account, error) {
	var acc models.Account
	err := r.Col.FindOne(ctx, filter).Decode(&acc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}
