package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"mind-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProgressRepository struct {
	Col *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{Col: db.Collection("progress")}
}

// Find returns (nil, nil) when no record exists for the pair.
func (r *ProgressRepository) Find(ctx context.Context, token string, selectTest int) (*models.ProgressRecord, error) {
	var rec models.ProgressRecord
	err := r.Col.FindOne(ctx, bson.M{"token": token, "select_test": selectTest}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *ProgressRepository) Create(ctx context.Context, rec *models.ProgressRecord) error {
	res, err := r.Col.InsertOne(ctx, rec)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid
	}
	return nil
}

// AppendSelection concatenates one selection digit onto the progress
// string. Returns false when no record matched the pair.
func (r *ProgressRepository) AppendSelection(ctx context.Context, token string, selectTest int, selection int) (bool, error) {
	update := bson.A{
		bson.M{"$set": bson.M{
			"progress": bson.M{"$concat": bson.A{
				bson.M{"$ifNull": bson.A{"$progress", ""}},
				strconv.Itoa(selection),
			}},
		}},
	}
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"token": token, "select_test": selectTest, "status": models.ProgressInProgress},
		update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// ClaimFinalize is the conditional status 0 -> 1 transition. The filter
// includes status=0, so of two racing callers exactly one gets the
// record back; the other sees (nil, nil). The returned record is the
// pre-transition document.
func (r *ProgressRepository) ClaimFinalize(ctx context.Context, token string, selectTest int) (*models.ProgressRecord, error) {
	var rec models.ProgressRecord
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"token": token, "select_test": selectTest, "status": models.ProgressInProgress},
		bson.M{"$set": bson.M{"status": models.ProgressFinalized}},
	).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ReleaseFinalize undoes a claim after a failed pipeline so the attempt
// stays retryable.
func (r *ProgressRepository) ReleaseFinalize(ctx context.Context, token string, selectTest int) error {
	_, err := r.Col.UpdateOne(ctx,
		bson.M{"token": token, "select_test": selectTest, "status": models.ProgressFinalized},
		bson.M{"$set": bson.M{"status": models.ProgressInProgress}})
	return err
}

// DeleteStale drops abandoned in-progress records older than the cutoff.
func (r *ProgressRepository) DeleteStale(ctx context.Context, olderThan time.Time) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{
		"status":    models.ProgressInProgress,
		"time_date": bson.M{"$lt": olderThan},
	})
	return err
}
