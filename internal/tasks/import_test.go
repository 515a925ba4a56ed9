package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/liftlog/internal/formatter"
	"github.com/desertthunder/liftlog/internal/forms"
	"github.com/desertthunder/liftlog/internal/shared"
	tu "github.com/desertthunder/liftlog/internal/testing"
)

func importRows() []formatter.LiftRow {
	return []formatter.LiftRow{
		{Line: 2, Form: forms.LiftForm{LiftType: "squat", Weight: "140", Reps: "5", Date: "2025-03-01"}},
		{Line: 3, Form: forms.LiftForm{LiftType: "curl", Weight: "20", Reps: "10", Date: "2025-03-01"}},
		{Line: 4, Form: forms.LiftForm{LiftType: "bench", Weight: "100", Reps: "3"}},
		{Line: 5, Form: forms.LiftForm{LiftType: "deadlift", Weight: "abc", Reps: "1", Date: "2025-03-02"}},
	}
}

func TestBulkImport(t *testing.T) {
	ctx := context.Background()

	t.Run("imports valid rows in order", func(t *testing.T) {
		svc := &tu.MockLiftService{}
		prog := make(chan ProgressUpdate, 16)

		result, err := BulkImport(ctx, prog, svc, importRows(), BulkImportOpts{RateLimit: 1000, DefaultDate: "2025-03-15"})
		if err != nil {
			t.Fatalf("BulkImport failed: %v", err)
		}

		if result.TotalRows != 4 || result.Imported != 2 || result.Invalid != 2 || result.Failed != 0 {
			t.Errorf("unexpected counts %+v", result)
		}
		if len(svc.Logged) != 2 {
			t.Fatalf("expected 2 requests, got %d", len(svc.Logged))
		}
		if svc.Logged[0].Weight != 140 || svc.Logged[1].Date != "2025-03-15" {
			t.Errorf("unexpected submitted lifts %+v", svc.Logged)
		}
		if len(prog) == 0 {
			t.Error("expected progress updates")
		}
	})

	t.Run("records invalid rows with reasons", func(t *testing.T) {
		svc := &tu.MockLiftService{}

		result, err := BulkImport(ctx, nil, svc, importRows(), BulkImportOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("BulkImport failed: %v", err)
		}

		reasons := map[int]forms.Reason{}
		for _, r := range result.Results {
			if ve, ok := forms.AsValidation(r.Error); ok {
				reasons[r.Line] = ve.Reason
			}
		}
		if reasons[3] != forms.ReasonInvalidChoice {
			t.Errorf("expected invalid choice on line 3, got %v", reasons[3])
		}
		if reasons[4] != forms.ReasonEmpty {
			t.Errorf("expected empty date on line 4 without a default, got %v", reasons[4])
		}
		if reasons[5] != forms.ReasonNonNumeric {
			t.Errorf("expected non-numeric on line 5, got %v", reasons[5])
		}
	})

	t.Run("request failures do not stop the import", func(t *testing.T) {
		svc := &tu.MockLiftService{LogErr: statusErr()}

		result, err := BulkImport(ctx, nil, svc, importRows(), BulkImportOpts{RateLimit: 1000, DefaultDate: "2025-03-15"})
		if err != nil {
			t.Fatalf("BulkImport failed: %v", err)
		}
		if result.Failed != 2 || result.Imported != 0 {
			t.Errorf("unexpected counts %+v", result)
		}
		for _, r := range result.Results {
			if r.Lift.Weight == 140 && !errors.Is(r.Error, shared.ErrUnexpectedStatus) {
				t.Errorf("expected status error, got %v", r.Error)
			}
		}
	})

	t.Run("dry run sends nothing", func(t *testing.T) {
		svc := &tu.MockLiftService{}

		result, err := BulkImport(ctx, nil, svc, importRows(), BulkImportOpts{DryRun: true, DefaultDate: "2025-03-15"})
		if err != nil {
			t.Fatalf("BulkImport failed: %v", err)
		}
		if svc.LoggedCount() != 0 {
			t.Errorf("expected no requests, got %d", svc.LoggedCount())
		}
		if result.Imported != 0 || result.Invalid != 2 {
			t.Errorf("unexpected counts %+v", result)
		}
	})

	t.Run("refresh fetches history", func(t *testing.T) {
		svc := &tu.MockLiftService{}

		result, err := BulkImport(ctx, nil, svc, importRows(), BulkImportOpts{RateLimit: 1000, Refresh: true, DefaultDate: "2025-03-15"})
		if err != nil {
			t.Fatalf("BulkImport failed: %v", err)
		}
		if svc.FetchCalls != 1 || result.History.Count() != 2 {
			t.Errorf("expected refreshed history of 2, got %d after %d fetches", result.History.Count(), svc.FetchCalls)
		}
	})

	t.Run("cancelled context stops", func(t *testing.T) {
		svc := &tu.MockLiftService{}
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		result, err := BulkImport(cctx, nil, svc, importRows(), BulkImportOpts{RateLimit: 1000, DefaultDate: "2025-03-15"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if result == nil || svc.LoggedCount() != 0 {
			t.Errorf("expected partial result and no requests")
		}
	})

	t.Run("nil service", func(t *testing.T) {
		_, err := BulkImport(ctx, nil, nil, importRows(), BulkImportOpts{})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestSendProgress(t *testing.T) {
	t.Run("nil channel", func(t *testing.T) {
		sendProgress(nil, refreshingUpdate())
	})

	t.Run("full channel does not block", func(t *testing.T) {
		ch := make(chan ProgressUpdate, 1)
		sendProgress(ch, refreshingUpdate())
		sendProgress(ch, refreshingUpdate())
		if len(ch) != 1 {
			t.Errorf("expected 1 buffered update, got %d", len(ch))
		}
	})
}
