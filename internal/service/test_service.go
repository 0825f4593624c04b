package service

import (
	"context"
	"time"

	"mind-service/internal/apperr"
	"mind-service/internal/models"
)

type TestService struct {
	Tests    TestStore
	Progress ProgressStore
}

func NewTestService(tests TestStore, progress ProgressStore) *TestService {
	return &TestService{Tests: tests, Progress: progress}
}

// StartTestResult carries what the handler needs to answer a start or
// resume request.
type StartTestResult struct {
	Test    *models.TestDefinition
	Record  *models.ProgressRecord
	Created bool
}

type TestListItem struct {
	ID       int    `json:"id"`
	TestName string `json:"test_name"`
}

// StartTest loads a test and either resumes the progress record for the
// supplied token or creates a new one. With no token, a fresh random
// token is issued.
func (s *TestService) StartTest(ctx context.Context, token string, selectTest int) (*StartTestResult, *apperr.Error) {
	def, err := s.Tests.FindByID(ctx, selectTest)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}
	if def == nil || len(def.Questions) == 0 {
		return nil, apperr.New(apperr.CodeMissingValue, "Missing test file")
	}
	if def.TestName == "" {
		return nil, apperr.New(apperr.CodeMissingValue, "Missing value")
	}

	if token != "" {
		rec, err := s.Progress.Find(ctx, token, selectTest)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
		}
		if rec != nil {
			return &StartTestResult{Test: def, Record: rec}, nil
		}
		return s.createProgress(ctx, def, token, selectTest)
	}

	return s.createProgress(ctx, def, randomToken(""), selectTest)
}

func (s *TestService) createProgress(ctx context.Context, def *models.TestDefinition, token string, selectTest int) (*StartTestResult, *apperr.Error) {
	rec := &models.ProgressRecord{
		Token:      token,
		SelectTest: selectTest,
		Status:     models.ProgressInProgress,
		TimeDate:   time.Now(),
	}
	if err := s.Progress.Create(ctx, rec); err != nil {
		return nil, apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}
	return &StartTestResult{Test: def, Record: rec, Created: true}, nil
}

// TestList returns id and name of every stored test.
func (s *TestService) TestList(ctx context.Context) ([]TestListItem, *apperr.Error) {
	defs, err := s.Tests.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}
	if len(defs) == 0 {
		return nil, apperr.Internal(apperr.CodeMissingValue, "Missing value")
	}

	items := make([]TestListItem, 0, len(defs))
	for _, def := range defs {
		items = append(items, TestListItem{ID: def.ID, TestName: def.TestName})
	}
	return items, nil
}

// UpdateProgress appends one selection digit to an in-progress record.
func (s *TestService) UpdateProgress(ctx context.Context, token string, selectTest, selection int) *apperr.Error {
	if token == "" || selection < 0 || selection > 9 {
		return apperr.New(apperr.CodeMissingValue, "params missing")
	}

	ok, err := s.Progress.AppendSelection(ctx, token, selectTest, selection)
	if err != nil {
		return apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}
	if !ok {
		return apperr.New(apperr.CodeInvalidResult, "Invalid token value")
	}
	return nil
}
