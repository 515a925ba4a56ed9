package main

import (
	"context"

	"github.com/desertthunder/liftlog/internal/models"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

// Stats prints the dashboard statistics.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	lifts, err := r.fetchHistory(ctx)
	if err != nil {
		return err
	}

	summary := lifts.Summarize(r.now())
	if cmd.Bool("json") {
		return r.writeJSON(summary, true)
	}

	r.writePlainHeader("Dashboard")
	r.writePlain("Total Lifts: %d\n", summary.Count)
	r.writePlain("This Month:  %d\n", summary.ThisMonth)
	r.writePlain("Max Weight:  %s kg\n", humanize.Ftoa(summary.MaxWeight))

	if len(summary.Best) > 0 {
		r.writePlainln("Personal Bests")
		for _, best := range summary.Best {
			r.writePlain("  %-11s %s kg x %d (%s)\n", best.LiftType.Label(), best.WeightString(), best.Reps, best.Date)
		}
	}

	if latest, ok := lifts.Latest(); ok {
		r.writePlainln("Last lift: %s on %s", describe(latest), latest.Date)
	}
	return nil
}

func describe(l models.Lift) string {
	return l.LiftType.Label() + " " + l.WeightString() + " kg"
}
