package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"mind-service/internal/kakao"
	"mind-service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func progressKey(token string, selectTest int) string {
	return fmt.Sprintf("%s|%d", token, selectTest)
}

type fakeProgressStore struct {
	recs map[string]*models.ProgressRecord
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{recs: make(map[string]*models.ProgressRecord)}
}

func (f *fakeProgressStore) Find(_ context.Context, token string, selectTest int) (*models.ProgressRecord, error) {
	rec, ok := f.recs[progressKey(token, selectTest)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeProgressStore) Create(_ context.Context, rec *models.ProgressRecord) error {
	rec.ID = primitive.NewObjectID()
	cp := *rec
	f.recs[progressKey(rec.Token, rec.SelectTest)] = &cp
	return nil
}

func (f *fakeProgressStore) AppendSelection(_ context.Context, token string, selectTest, selection int) (bool, error) {
	rec, ok := f.recs[progressKey(token, selectTest)]
	if !ok || rec.Status != models.ProgressInProgress {
		return false, nil
	}
	rec.Progress += fmt.Sprintf("%d", selection)
	return true, nil
}

func (f *fakeProgressStore) ClaimFinalize(_ context.Context, token string, selectTest int) (*models.ProgressRecord, error) {
	rec, ok := f.recs[progressKey(token, selectTest)]
	if !ok || rec.Status != models.ProgressInProgress {
		return nil, nil
	}
	before := *rec
	rec.Status = models.ProgressFinalized
	return &before, nil
}

func (f *fakeProgressStore) ReleaseFinalize(_ context.Context, token string, selectTest int) error {
	rec, ok := f.recs[progressKey(token, selectTest)]
	if ok && rec.Status == models.ProgressFinalized {
		rec.Status = models.ProgressInProgress
	}
	return nil
}

func (f *fakeProgressStore) DeleteStale(_ context.Context, olderThan time.Time) error {
	for key, rec := range f.recs {
		if rec.Status == models.ProgressInProgress && rec.TimeDate.Before(olderThan) {
			delete(f.recs, key)
		}
	}
	return nil
}

func (f *fakeProgressStore) status(token string, selectTest int) int {
	return f.recs[progressKey(token, selectTest)].Status
}

type fakeTestStore struct {
	defs map[int]*models.TestDefinition
}

func (f *fakeTestStore) FindByID(_ context.Context, id int) (*models.TestDefinition, error) {
	return f.defs[id], nil
}

func (f *fakeTestStore) FindAll(_ context.Context) ([]models.TestDefinition, error) {
	ids := make([]int, 0, len(f.defs))
	for id := range f.defs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var defs []models.TestDefinition
	for _, id := range ids {
		defs = append(defs, *f.defs[id])
	}
	return defs, nil
}

type fakeResultStore struct {
	recs []*models.ResultRecord
}

func (f *fakeResultStore) Create(_ context.Context, rec *models.ResultRecord) error {
	rec.ID = primitive.NewObjectID()
	cp := *rec
	f.recs = append(f.recs, &cp)
	return nil
}

func (f *fakeResultStore) FindByToken(_ context.Context, token string) (*models.ResultRecord, error) {
	for _, rec := range f.recs {
		if rec.Token == token {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeResultStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.ResultRecord, error) {
	for _, rec := range f.recs {
		if rec.ID == id {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeSavedResultStore struct {
	recs []*models.SavedResult
}

func (f *fakeSavedResultStore) Create(_ context.Context, rec *models.SavedResult) error {
	rec.ID = primitive.NewObjectID()
	cp := *rec
	f.recs = append(f.recs, &cp)
	return nil
}

func (f *fakeSavedResultStore) FindRecentByMember(_ context.Context, memberID string, limit int) ([]models.SavedResult, error) {
	var matched []models.SavedResult
	for _, rec := range f.recs {
		if rec.MemberID == memberID {
			matched = append(matched, *rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].TimeDate.After(matched[j].TimeDate)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

type fakeGenerator struct {
	content string
	err     error
	calls   int
	system  string
	prompt  string
}

func (f *fakeGenerator) Generate(_ context.Context, systemMessage, prompt string) (string, error) {
	f.calls++
	f.system = systemMessage
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

type fakeAccountStore struct {
	accs []*models.Account
}

func (f *fakeAccountStore) Create(_ context.Context, acc *models.Account) error {
	acc.ID = primitive.NewObjectID()
	cp := *acc
	f.accs = append(f.accs, &cp)
	return nil
}

func (f *fakeAccountStore) FindByID(_ context.Context, id string) (*models.Account, error) {
	return f.find(func(a *models.Account) bool { return a.ID.Hex() == id }), nil
}

func (f *fakeAccountStore) FindByUserIDOrNickname(_ context.Context, userID, nickname string) (*models.Account, error) {
	return f.find(func(a *models.Account) bool { return a.UserID == userID || a.Nickname == nickname }), nil
}

func (f *fakeAccountStore) FindByCredentials(_ context.Context, userID, hashedPW string) (*models.Account, error) {
	return f.find(func(a *models.Account) bool { return a.UserID == userID && a.UserPW == hashedPW }), nil
}

func (f *fakeAccountStore) FindBySocialLinkedID(_ context.Context, linkedID string) (*models.Account, error) {
	return f.find(func(a *models.Account) bool { return a.SocialLinkedID == linkedID }), nil
}

func (f *fakeAccountStore) find(match func(*models.Account) bool) *models.Account {
	for _, acc := range f.accs {
		if match(acc) {
			cp := *acc
			return &cp
		}
	}
	return nil
}

type fakeLinkedUserStore struct {
	links []*models.LinkedUser
}

func (f *fakeLinkedUserStore) Create(_ context.Context, link *models.LinkedUser) error {
	link.ID = primitive.NewObjectID()
	cp := *link
	f.links = append(f.links, &cp)
	return nil
}

func (f *fakeLinkedUserStore) FindByLogin(_ context.Context, providerUserID, nickname, service string) (*models.LinkedUser, error) {
	for _, link := range f.links {
		if link.ProviderUserID == providerUserID && link.UserNickname == nickname && link.LinkedService == service {
			cp := *link
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeTokenStore struct {
	toks []*models.AccessToken
}

func (f *fakeTokenStore) Create(_ context.Context, tok *models.AccessToken) error {
	tok.ID = primitive.NewObjectID()
	cp := *tok
	f.toks = append(f.toks, &cp)
	return nil
}

func (f *fakeTokenStore) FindByToken(_ context.Context, token string) (*models.AccessToken, error) {
	for _, tok := range f.toks {
		if tok.Token == token {
			cp := *tok
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeSocial struct {
	profile *kakao.Profile
	err     error
}

func (f *fakeSocial) Login(_ context.Context, code string) (*kakao.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}
