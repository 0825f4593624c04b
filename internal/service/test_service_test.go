package service

import (
	"context"
	"testing"

	"mind-service/internal/apperr"
	"mind-service/internal/models"
)

func newTestFixture() (*TestService, *fakeProgressStore) {
	progress := newFakeProgressStore()
	tests := &fakeTestStore{defs: map[int]*models.TestDefinition{1: sampleDefinition()}}
	return NewTestService(tests, progress), progress
}

func TestStartTestIssuesToken(t *testing.T) {
	svc, _ := newTestFixture()

	res, appErr := svc.StartTest(context.Background(), "", 1)
	if appErr != nil {
		t.Fatalf("Unexpected error: %v", appErr)
	}
	if !res.Created {
		t.Error("Expected a fresh progress record")
	}
	if res.Record.Token == "" {
		t.Error("Expected a generated token")
	}
	if res.Test.TestName != "mind type" {
		t.Errorf("Unexpected test name: %q", res.Test.TestName)
	}
}

func TestStartTestResumesExistingProgress(t *testing.T) {
	svc, progress := newTestFixture()

	first, appErr := svc.StartTest(context.Background(), "known-token", 1)
	if appErr != nil {
		t.Fatalf("Unexpected error: %v", appErr)
	}
	if !first.Created {
		t.Fatal("Expected first call to create the record")
	}

	if _, err := progress.AppendSelection(context.Background(), "known-token", 1, 1); err != nil {
		t.Fatalf("Failed to append selection: %v", err)
	}

	second, appErr := svc.StartTest(context.Background(), "known-token", 1)
	if appErr != nil {
		t.Fatalf("Unexpected error: %v", appErr)
	}
	if second.Created {
		t.Error("Expected resume, not creation")
	}
	if second.Record.Progress != "1" {
		t.Errorf("Expected resumed progress %q, got %q", "1", second.Record.Progress)
	}
}

func TestStartTestUnknownTest(t *testing.T) {
	svc, _ := newTestFixture()

	_, appErr := svc.StartTest(context.Background(), "", 99)
	if appErr == nil || appErr.Code != apperr.CodeMissingValue {
		t.Fatalf("Expected MissingValue for unknown test, got %v", appErr)
	}
}

func TestTestList(t *testing.T) {
	svc, _ := newTestFixture()

	items, appErr := svc.TestList(context.Background())
	if appErr != nil {
		t.Fatalf("Unexpected error: %v", appErr)
	}
	if len(items) != 1 || items[0].ID != 1 || items[0].TestName != "mind type" {
		t.Errorf("Unexpected list: %+v", items)
	}
}

func TestUpdateProgress(t *testing.T) {
	svc, progress := newTestFixture()

	if _, appErr := svc.StartTest(context.Background(), "tok", 1); appErr != nil {
		t.Fatalf("Unexpected error: %v", appErr)
	}

	if appErr := svc.UpdateProgress(context.Background(), "tok", 1, 0); appErr != nil {
		t.Fatalf("Unexpected error: %v", appErr)
	}
	if appErr := svc.UpdateProgress(context.Background(), "tok", 1, 1); appErr != nil {
		t.Fatalf("Unexpected error: %v", appErr)
	}

	rec, _ := progress.Find(context.Background(), "tok", 1)
	if rec.Progress != "01" {
		t.Errorf("Expected progress %q, got %q", "01", rec.Progress)
	}
}

func TestUpdateProgressValidation(t *testing.T) {
	svc, _ := newTestFixture()

	testCases := []struct {
		name         string
		token        string
		selection    int
		expectedCode int
	}{
		{"missing token", "", 1, apperr.CodeMissingValue},
		{"negative selection", "tok", -1, apperr.CodeMissingValue},
		{"multi-digit selection", "tok", 10, apperr.CodeMissingValue},
		{"unknown token", "no-such-token", 1, apperr.CodeInvalidResult},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := svc.UpdateProgress(context.Background(), tc.token, 1, tc.selection)
			if appErr == nil || appErr.Code != tc.expectedCode {
				t.Errorf("Expected code %d, got %v", tc.expectedCode, appErr)
			}
		})
	}
}

func TestUpdateProgressRejectedAfterFinalize(t *testing.T) {
	svc, progress := newTestFixture()

	if _, appErr := svc.StartTest(context.Background(), "tok", 1); appErr != nil {
		t.Fatalf("Unexpected error: %v", appErr)
	}
	if _, err := progress.ClaimFinalize(context.Background(), "tok", 1); err != nil {
		t.Fatalf("Failed to finalize: %v", err)
	}

	appErr := svc.UpdateProgress(context.Background(), "tok", 1, 1)
	if appErr == nil || appErr.Code != apperr.CodeInvalidResult {
		t.Fatalf("Expected InvalidResult after finalize, got %v", appErr)
	}
}
