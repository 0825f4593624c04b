package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProgressInProgress = 0
	ProgressFinalized  = 1
)

// ProgressRecord tracks one quiz attempt, keyed by (token, select_test).
// Progress holds one selection digit per answered question, in question
// order. Status moves 0 -> 1 exactly once when the result is generated.
type ProgressRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token      string             `bson:"token" json:"token"`
	SelectTest int                `bson:"select_test" json:"select_test"`
	Progress   string             `bson:"progress" json:"progress"`
	Status     int                `bson:"status" json:"status"`
	TimeDate   time.Time          `bson:"time_date" json:"time_date"`
}
