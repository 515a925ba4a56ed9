package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/liftlog/internal/formatter"
	"github.com/desertthunder/liftlog/internal/forms"
	"github.com/desertthunder/liftlog/internal/models"
	"github.com/desertthunder/liftlog/internal/services"
	"github.com/desertthunder/liftlog/internal/shared"
	"golang.org/x/time/rate"
)

// BulkImportOpts contains configuration for bulk lift imports.
type BulkImportOpts struct {
	RateLimit float64 // Requests per second (default: 2)
	DryRun    bool    // Validate rows without submitting
	Refresh   bool    // Fetch history once the import finishes
	// DefaultDate fills rows with an empty date, typically today.
	DefaultDate string
}

// RowResult is the outcome of importing one CSV row.
type RowResult struct {
	Line    int
	Lift    models.Lift
	Success bool
	Error   error
}

// BulkImportResult summarizes a bulk import.
type BulkImportResult struct {
	TotalRows int
	Imported  int
	Invalid   int
	Failed    int
	Results   []RowResult
	History   models.History // populated when BulkImportOpts.Refresh is set
}

// BulkImport validates every row with [forms.ParseLift] and submits the valid ones
// one at a time through the log-lift endpoint.
//
// Rows are submitted sequentially so the backend sees them in file order; a
// [rate.Limiter] spaces the requests. Invalid rows and failed requests are recorded
// per row and do not stop the import. Cancelling ctx stops before the next request.
func BulkImport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	svc services.LiftService,
	rows []formatter.LiftRow,
	opts BulkImportOpts,
) (*BulkImportResult, error) {
	if svc == nil {
		return nil, fmt.Errorf("%w: lift service not initialized", shared.ErrServiceUnavailable)
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	result := &BulkImportResult{
		TotalRows: len(rows),
		Results:   make([]RowResult, 0, len(rows)),
	}

	type pending struct {
		line int
		lift models.Lift
	}
	valid := make([]pending, 0, len(rows))
	for _, row := range rows {
		if row.Form.Date == "" {
			row.Form.Date = opts.DefaultDate
		}
		lift, err := forms.ParseLift(row.Form)
		if err != nil {
			result.Invalid++
			result.Results = append(result.Results, RowResult{Line: row.Line, Error: err})
			continue
		}
		valid = append(valid, pending{line: row.Line, lift: lift})
	}
	sendProgress(prog, validatedRowsUpdate(len(valid), len(rows)))

	if opts.DryRun {
		for _, p := range valid {
			result.Results = append(result.Results, RowResult{Line: p.line, Lift: p.lift, Success: true})
		}
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	for i, p := range valid {
		if err := limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("import interrupted after %d of %d lifts: %w", i, len(valid), err)
		}

		sendProgress(prog, importingLiftUpdate(i+1, len(valid), p.lift))

		if err := svc.LogLift(ctx, p.lift); err != nil {
			result.Failed++
			result.Results = append(result.Results, RowResult{Line: p.line, Lift: p.lift, Error: err})
			sendProgress(prog, importFailedUpdate(i+1, len(valid), p.line, err))
			continue
		}

		result.Imported++
		result.Results = append(result.Results, RowResult{Line: p.line, Lift: p.lift, Success: true})
	}

	if opts.Refresh && result.Imported > 0 {
		sendProgress(prog, refreshingUpdate())
		lifts, err := svc.FetchLifts(ctx)
		if err != nil {
			return result, fmt.Errorf("failed to refresh history: %w", err)
		}
		result.History = lifts
	}

	return result, nil
}
