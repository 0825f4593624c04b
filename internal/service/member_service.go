package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"mind-service/internal/apperr"
	"mind-service/internal/models"
)

const kakaoService = "kakao"

type MemberService struct {
	Accounts AccountStore
	Linked   LinkedUserStore
	Tokens   TokenStore
	Social   SocialLogin
	salt     string
}

func NewMemberService(accounts AccountStore, linked LinkedUserStore, tokens TokenStore, social SocialLogin, salt string) *MemberService {
	return &MemberService{Accounts: accounts, Linked: linked, Tokens: tokens, Social: social, salt: salt}
}

// Join registers a local account. Duplicate user id or nickname is
// reported as DuplicateData.
func (s *MemberService) Join(ctx context.Context, userID, password, nickname string) *apperr.Error {
	if userID == "" || password == "" || nickname == "" {
		return apperr.New(apperr.CodeUserInvalid, "params missing")
	}

	existing, err := s.Accounts.FindByUserIDOrNickname(ctx, userID, nickname)
	if err != nil {
		return apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}
	if existing != nil {
		return apperr.New(apperr.CodeDuplicateData, "ID or nickname already exists")
	}

	acc := &models.Account{
		UserID:   userID,
		UserPW:   s.hashPassword(password),
		Nickname: nickname,
		UserType: models.UserTypeLocal,
	}
	if err := s.Accounts.Create(ctx, acc); err != nil {
		return apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}
	return nil
}

// Login checks local credentials and issues a fresh access token.
func (s *MemberService) Login(ctx context.Context, userID, password string) (string, *apperr.Error) {
	if userID == "" || password == "" {
		return "", apperr.New(apperr.CodeUserInvalid, "ID or password is missing")
	}

	acc, err := s.Accounts.FindByCredentials(ctx, userID, s.hashPassword(password))
	if err != nil {
		return "", apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}
	if acc == nil {
		return "", apperr.New(apperr.CodeUserInvalid, "ID or password is missing")
	}

	return s.issueToken(ctx, acc.ID.Hex())
}

// KakaoLogin exchanges an authorization code, finds or creates the
// linked account and issues an access token.
func (s *MemberService) KakaoLogin(ctx context.Context, code string) (string, *apperr.Error) {
	if code == "" {
		return "", apperr.New(apperr.CodeMissingValue, "Missing value")
	}

	profile, err := s.Social.Login(ctx, code)
	if err != nil {
		return "", apperr.New(apperr.CodeBadRequest, "Bad request")
	}
	if profile.ID == "" || profile.Nickname == "" {
		return "", apperr.New(apperr.CodeBadRequest, "Bad request")
	}

	link, err := s.Linked.FindByLogin(ctx, profile.ID, profile.Nickname, kakaoService)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}

	if link == nil {
		link = &models.LinkedUser{
			ProviderUserID: profile.ID,
			UserNickname:   profile.Nickname,
			LinkedService:  kakaoService,
		}
		if err := s.Linked.Create(ctx, link); err != nil {
			return "", apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
		}
		acc := &models.Account{
			SocialLinkedID: link.ID.Hex(),
			Nickname:       profile.Nickname,
			UserType:       models.UserTypeSocial,
		}
		if err := s.Accounts.Create(ctx, acc); err != nil {
			return "", apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
		}
		return s.issueToken(ctx, acc.ID.Hex())
	}

	acc, err := s.Accounts.FindBySocialLinkedID(ctx, link.ID.Hex())
	if err != nil {
		return "", apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}
	if acc == nil {
		return "", apperr.New(apperr.CodeBadRequest, "Bad request")
	}
	return s.issueToken(ctx, acc.ID.Hex())
}

// ResolveAccessToken maps an opaque token to the member it belongs to.
// Returns (nil, nil) for an unknown token; the caller decides whether
// that is an error.
func (s *MemberService) ResolveAccessToken(ctx context.Context, accessToken string) (*models.MemberInfo, error) {
	if accessToken == "" {
		return nil, nil
	}

	tok, err := s.Tokens.FindByToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}

	acc, err := s.Accounts.FindByID(ctx, tok.AccountID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, nil
	}
	return &models.MemberInfo{ID: acc.ID.Hex(), Nickname: acc.Nickname}, nil
}

func (s *MemberService) issueToken(ctx context.Context, accountID string) (string, *apperr.Error) {
	if accountID == "" {
		return "", apperr.New(apperr.CodeBadRequest, "Bad request")
	}
	tok := &models.AccessToken{
		AccountID: accountID,
		Token:     randomToken(accountID),
		TimeDate:  time.Now(),
	}
	if err := s.Tokens.Create(ctx, tok); err != nil {
		return "", apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}
	return tok.Token, nil
}

func (s *MemberService) hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password + s.salt))
	return hex.EncodeToString(sum[:])
}
