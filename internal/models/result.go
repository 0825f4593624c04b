package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResultRecord stores the generated result text for a finalized attempt.
// Insert-only; never mutated after creation.
type ResultRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token      string             `bson:"token" json:"token"`
	SelectTest int                `bson:"select_test" json:"select_test"`
	Content    string             `bson:"content" json:"content"`
	TimeDate   time.Time          `bson:"time_date" json:"time_date"`
}

// SavedResult links a ResultRecord to a member account.
type SavedResult struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ResultID primitive.ObjectID `bson:"result_id" json:"result_id"`
	MemberID string             `bson:"member_id" json:"member_id"`
	TimeDate time.Time          `bson:"time_date" json:"time_date"`
}

// SavedResultView is one row of a member's result history.
type SavedResultView struct {
	SelectTest     int       `json:"select_test"`
	SelectTestName string    `json:"select_test_name"`
	Content        string    `json:"content"`
	TimeDate       time.Time `json:"time_date"`
}
