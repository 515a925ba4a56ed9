package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/liftlog/internal/formatter"
	"github.com/desertthunder/liftlog/internal/forms"
	"github.com/desertthunder/liftlog/internal/models"
	"github.com/desertthunder/liftlog/internal/shared"
	"github.com/desertthunder/liftlog/internal/tasks"
	"github.com/dustin/go-humanize/english"
	"github.com/urfave/cli/v3"
)

// fetchHistory runs the history flow and reports its failure as an error.
//
// The TUI keeps a failed fetch silent; on the command line there is nothing else to show.
func (r *Runner) fetchHistory(ctx context.Context) (models.History, error) {
	lifts, err := r.lifts.FetchLifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lifts: %w", err)
	}
	return lifts, nil
}

// LiftsList prints every logged lift.
func (r *Runner) LiftsList(ctx context.Context, cmd *cli.Command) error {
	lifts, err := r.fetchHistory(ctx)
	if err != nil {
		return err
	}
	r.logger.Debug("fetched lifts", "count", len(lifts))

	if cmd.Bool("json") {
		if lifts == nil {
			lifts = models.History{}
		}
		return r.writeJSON(lifts, cmd.Bool("pretty"))
	}

	if len(lifts) == 0 {
		return r.writePlain("No lifts logged yet.\n")
	}

	text, err := formatter.ExportToText(lifts)
	if err != nil {
		return err
	}
	r.writePlainHeader(fmt.Sprintf("Lift History (%d)", len(lifts)))
	return r.writePlain("%s", text)
}

// LiftsLog submits one lift through the same controller the TUI form uses.
func (r *Runner) LiftsLog(ctx context.Context, cmd *cli.Command) error {
	ctrl := r.newController()

	edits := []tasks.EditForm{
		{Field: forms.FieldLiftType, Value: cmd.String("type")},
		{Field: forms.FieldWeight, Value: cmd.String("weight")},
		{Field: forms.FieldReps, Value: cmd.String("reps")},
	}
	if date := cmd.String("date"); date != "" {
		edits = append(edits, tasks.EditForm{Field: forms.FieldDate, Value: date})
	}
	for _, e := range edits {
		ctrl.Apply(e)
	}

	r.drive(ctx, ctrl, tasks.SubmitLift{})

	switch {
	case ctrl.Log.Status == tasks.Succeeded:
	case ctrl.Log.Message == tasks.MsgLogFailed, ctrl.Log.Message == tasks.MsgLogOffline:
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, ctrl.Log.Message)
	default:
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, ctrl.Log.Message)
	}

	r.writePlain("✓ %s\n", ctrl.Log.Message)
	if ctrl.History.Status == tasks.Succeeded {
		r.writePlain("%s logged in total\n", english.Plural(ctrl.Lifts.Count(), "lift", ""))
	}
	return nil
}

// LiftsExport fetches the history and writes it in the requested format.
func (r *Runner) LiftsExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")

	lifts, err := r.fetchHistory(ctx)
	if err != nil {
		return err
	}

	if output == "-" {
		data, err := formatter.Export(format, lifts, r.now())
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	path, err := formatter.WriteExport(format, lifts, r.now(), output)
	if err != nil {
		return err
	}

	r.logger.Info("exported lifts", "format", format, "count", len(lifts), "path", path)
	return r.writePlain("✓ Exported %s to %s\n", english.Plural(len(lifts), "lift", ""), path)
}

// LiftsImport reads a CSV file and submits every valid row, printing progress as it goes.
func (r *Runner) LiftsImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")
	dryRun := cmd.Bool("dry-run")

	rate := r.config.Import.RateLimit
	if cmd.IsSet("rate") {
		rate = cmd.Float("rate")
	}
	if rate < 0 {
		return fmt.Errorf("%w: --rate must not be negative", shared.ErrInvalidArgument)
	}

	rows, err := formatter.ReadCSVFile(path)
	if err != nil {
		return err
	}
	r.logger.Info("importing lifts", "file", path, "rows", len(rows), "rate", rate, "dry_run", dryRun)

	progress := make(chan tasks.ProgressUpdate, 32)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := tasks.BulkImport(ctx, progress, r.lifts, rows, tasks.BulkImportOpts{
		RateLimit:   rate,
		DryRun:      dryRun,
		Refresh:     true,
		DefaultDate: models.Today(r.now()),
	})
	close(progress)
	wg.Wait()

	if result != nil {
		r.printImportResult(result, dryRun)
	}
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("%w: %d of %d lifts were rejected", shared.ErrAPIRequest, result.Failed, result.TotalRows-result.Invalid)
	}
	return nil
}

func (r *Runner) printImportResult(result *tasks.BulkImportResult, dryRun bool) {
	for _, row := range result.Results {
		if row.Error == nil {
			continue
		}
		msg := row.Error.Error()
		if ve, ok := forms.AsValidation(row.Error); ok {
			msg = ve.Message()
		}
		r.writePlain("✗ line %d: %s\n", row.Line, msg)
	}

	r.writePlainln("Import summary")
	r.writePlain("  Rows:     %d\n", result.TotalRows)
	r.writePlain("  Invalid:  %d\n", result.Invalid)
	if dryRun {
		r.writePlain("  Valid:    %d (dry run, nothing submitted)\n", result.TotalRows-result.Invalid)
		return
	}
	r.writePlain("  Imported: %d\n", result.Imported)
	r.writePlain("  Failed:   %d\n", result.Failed)
	if result.History != nil {
		r.writePlain("  History:  %s\n", english.Plural(result.History.Count(), "lift", ""))
	}
}
