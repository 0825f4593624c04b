package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserTypeLocal  = 0
	UserTypeSocial = 1
)

type Account struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"user_id,omitempty" json:"user_id"`
	UserPW         string             `bson:"user_pw,omitempty" json:"-"`
	Nickname       string             `bson:"nickname" json:"nickname"`
	SocialLinkedID string             `bson:"social_linked_id,omitempty" json:"social_linked_id,omitempty"`
	UserType       int                `bson:"user_type" json:"user_type"`
}

// LinkedUser records a social-login identity. ProviderUserID is the id
// the provider reports for the user, not one of our access tokens.
type LinkedUser struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProviderUserID string             `bson:"provider_user_id" json:"provider_user_id"`
	UserNickname   string             `bson:"user_nickname" json:"user_nickname"`
	LinkedService  string             `bson:"linked_service" json:"linked_service"`
}

// AccessToken is an opaque session token resolved by lookup.
type AccessToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AccountID string             `bson:"account_id" json:"account_id"`
	Token     string             `bson:"token" json:"token"`
	TimeDate  time.Time          `bson:"time_date" json:"time_date"`
}

// MemberInfo is the resolved identity attached to a request.
type MemberInfo struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}
