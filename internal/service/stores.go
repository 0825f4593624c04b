package service

import (
	"context"
	"time"

	"mind-service/internal/kakao"
	"mind-service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage and collaborator contracts consumed by the services. The
// repository package provides the Mongo implementations; tests use
// in-memory fakes.

type TestStore interface {
	FindByID(ctx context.Context, id int) (*models.TestDefinition, error)
	FindAll(ctx context.Context) ([]models.TestDefinition, error)
}

type ProgressStore interface {
	Find(ctx context.Context, token string, selectTest int) (*models.ProgressRecord, error)
	Create(ctx context.Context, rec *models.ProgressRecord) error
	AppendSelection(ctx context.Context, token string, selectTest, selection int) (bool, error)
	ClaimFinalize(ctx context.Context, token string, selectTest int) (*models.ProgressRecord, error)
	ReleaseFinalize(ctx context.Context, token string, selectTest int) error
	DeleteStale(ctx context.Context, olderThan time.Time) error
}

type ResultStore interface {
	Create(ctx context.Context, rec *models.ResultRecord) error
	FindByToken(ctx context.Context, token string) (*models.ResultRecord, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ResultRecord, error)
}

type SavedResultStore interface {
	Create(ctx context.Context, rec *models.SavedResult) error
	FindRecentByMember(ctx context.Context, memberID string, limit int) ([]models.SavedResult, error)
}

type AccountStore interface {
	Create(ctx context.Context, acc *models.Account) error
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByUserIDOrNickname(ctx context.Context, userID, nickname string) (*models.Account, error)
	FindByCredentials(ctx context.Context, userID, hashedPW string) (*models.Account, error)
	FindBySocialLinkedID(ctx context.Context, linkedID string) (*models.Account, error)
}

type LinkedUserStore interface {
	Create(ctx context.Context, link *models.LinkedUser) error
	FindByLogin(ctx context.Context, providerUserID, nickname, service string) (*models.LinkedUser, error)
}

type TokenStore interface {
	Create(ctx context.Context, tok *models.AccessToken) error
	FindByToken(ctx context.Context, token string) (*models.AccessToken, error)
}

// TextGenerator produces result text from a system message and a
// composed prompt.
type TextGenerator interface {
	Generate(ctx context.Context, systemMessage, prompt string) (string, error)
}

// SocialLogin exchanges a provider authorization code for a profile.
type SocialLogin interface {
	Login(ctx context.Context, code string) (*kakao.Profile, error)
}
