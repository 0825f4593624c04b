package service

import (
	"context"
	"errors"
	"log"
	"time"

	"mind-service/internal/apperr"
	"mind-service/internal/generator"
	"mind-service/internal/models"
	"mind-service/internal/scoring"
)

const historyLimit = 5

type ResultService struct {
	Tests    TestStore
	Progress ProgressStore
	Results  ResultStore
	Saved    SavedResultStore
	Gen      TextGenerator
}

func NewResultService(tests TestStore, progress ProgressStore, results ResultStore, saved SavedResultStore, gen TextGenerator) *ResultService {
	return &ResultService{Tests: tests, Progress: progress, Results: results, Saved: saved, Gen: gen}
}

// GenerateResult runs the scoring pipeline for one (token, test) pair:
// claim the finalize transition, aggregate the answers, compose the
// prompt, call the generator and persist the result. When member is
// non-nil the result is additionally linked to the member account.
//
// The claim happens before the generation call so two racing requests
// cannot both score; it is released again on every failure after it, so
// a record only stays finalized once a result exists.
func (s *ResultService) GenerateResult(ctx context.Context, token string, selectTest int, member *models.MemberInfo) (string, *apperr.Error) {
	if token == "" {
		return "", apperr.New(apperr.CodeMissingValue, "Missing progressToken or selectTest")
	}

	rec, err := s.Progress.ClaimFinalize(ctx, token, selectTest)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}
	if rec == nil {
		return "", apperr.New(apperr.CodeInvalidResult, "Invalid token value")
	}

	if rec.Progress == "" || rec.TimeDate.IsZero() {
		return s.fail(ctx, token, selectTest, apperr.New(apperr.CodeMissingValue, "Missing progress value"))
	}

	// Abandoned attempts older than one month relative to this record
	// are garbage collected as a side effect of scoring.
	if err := s.Progress.DeleteStale(ctx, rec.TimeDate.AddDate(0, -1, 0)); err != nil {
		return s.fail(ctx, token, selectTest, apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err))
	}

	def, err := s.Tests.FindByID(ctx, selectTest)
	if err != nil {
		return s.fail(ctx, token, selectTest, apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err))
	}
	if def == nil || len(def.Questions) == 0 {
		return s.fail(ctx, token, selectTest, apperr.New(apperr.CodeMissingValue, "Missing test file"))
	}

	score, err := scoring.Aggregate(rec.Progress, def)
	if err != nil {
		var rangeErr *scoring.SelectionRangeError
		if errors.As(err, &rangeErr) {
			return s.fail(ctx, token, selectTest, apperr.New(apperr.CodeNotMatched, rangeErr.Error()))
		}
		return s.fail(ctx, token, selectTest, apperr.Wrap(apperr.CodeBadRequest, "An error occurred during your request.", err))
	}

	content, err := s.Gen.Generate(ctx, def.SystemMessage, score.Prompt())
	if err != nil {
		if errors.Is(err, generator.ErrAPIKeyMissing) {
			return s.fail(ctx, token, selectTest, apperr.Internal(apperr.CodeAPIKeyInvalid, "Generation API key is missing"))
		}
		return s.fail(ctx, token, selectTest, apperr.Wrap(apperr.CodeBadRequest, "An error occurred during your request.", err))
	}
	if content == "" {
		return s.fail(ctx, token, selectTest, apperr.Internal(apperr.CodeBadRequest, "An error occurred during your request."))
	}

	result := &models.ResultRecord{
		Token:      token,
		SelectTest: selectTest,
		Content:    content,
		TimeDate:   time.Now(),
	}
	if err := s.Results.Create(ctx, result); err != nil {
		return s.fail(ctx, token, selectTest, apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err))
	}

	if member != nil && member.ID != "" {
		// Re-read by token: a zero-row lookup right after the insert is
		// a consistency fault and must be surfaced.
		stored, err := s.Results.FindByToken(ctx, token)
		if err != nil {
			return "", apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
		}
		if stored == nil {
			return "", apperr.Internal(apperr.CodeMissingValue, "Missing result value")
		}
		saved := &models.SavedResult{
			ResultID: stored.ID,
			MemberID: member.ID,
			TimeDate: time.Now(),
		}
		if err := s.Saved.Create(ctx, saved); err != nil {
			return "", apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
		}
	}

	return content, nil
}

// fail releases the finalize claim and passes the pipeline error through.
func (s *ResultService) fail(ctx context.Context, token string, selectTest int, e *apperr.Error) (string, *apperr.Error) {
	if err := s.Progress.ReleaseFinalize(ctx, token, selectTest); err != nil {
		log.Printf("release finalize for token %s failed: %v", token, err)
	}
	return "", e
}

// History returns the member's most recent saved results with test
// names resolved. No saved results is a valid empty history, not an
// error.
func (s *ResultService) History(ctx context.Context, memberID string) ([]models.SavedResultView, *apperr.Error) {
	saved, err := s.Saved.FindRecentByMember(ctx, memberID, historyLimit)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}
	if len(saved) == 0 {
		return []models.SavedResultView{}, nil
	}

	defs, err := s.Tests.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}
	if len(defs) == 0 {
		return nil, apperr.New(apperr.CodeMissingValue, "Missing testListResult value")
	}
	names := make(map[int]string, len(defs))
	for _, def := range defs {
		names[def.ID] = def.TestName
	}

	views := make([]models.SavedResultView, 0, len(saved))
	for _, rec := range saved {
		result, err := s.Results.FindByID(ctx, rec.ResultID)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
		}
		if result == nil {
			log.Printf("saved result %s points at a missing result %s", rec.ID.Hex(), rec.ResultID.Hex())
			continue
		}
		views = append(views, models.SavedResultView{
			SelectTest:     result.SelectTest,
			SelectTestName: names[result.SelectTest],
			Content:        result.Content,
			TimeDate:       result.TimeDate,
		})
	}
	return views, nil
}

// SaveResult links an already generated result to a member account.
func (s *ResultService) SaveResult(ctx context.Context, token, memberID string) *apperr.Error {
	if token == "" {
		return apperr.New(apperr.CodeMissingValue, "Missing saveResultToken")
	}
	if memberID == "" {
		return apperr.New(apperr.CodeMissingValue, "Missing memberID")
	}

	result, err := s.Results.FindByToken(ctx, token)
	if err != nil {
		return apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}
	if result == nil {
		return apperr.Internal(apperr.CodeMissingValue, "Missing saveResultID")
	}

	saved := &models.SavedResult{
		ResultID: result.ID,
		MemberID: memberID,
		TimeDate: time.Now(),
	}
	if err := s.Saved.Create(ctx, saved); err != nil {
		return apperr.Wrap(apperr.CodeDBInvalid, "DB connection failed", err)
	}
	return nil
}
