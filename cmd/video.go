package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/liftlog/internal/forms"
	"github.com/desertthunder/liftlog/internal/shared"
	"github.com/desertthunder/liftlog/internal/tasks"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

// VideoUpload selects the file at the path argument and runs the upload flow.
func (r *Runner) VideoUpload(ctx context.Context, cmd *cli.Command) error {
	path := strings.TrimSpace(cmd.StringArg("path"))
	if path == "" {
		return fmt.Errorf("%w: video path", shared.ErrMissingArgument)
	}

	ctrl := r.newController()
	if cmd.IsSet("ai") && cmd.Bool("ai") != ctrl.EnableAI {
		ctrl.Apply(tasks.ToggleAI{})
	}

	selection, err := forms.DetectVideo(path)
	ctrl.Apply(tasks.SelectVideo{Selection: selection, Err: err})
	switch {
	case ctrl.Upload.Status != tasks.Failed:
	case ctrl.Upload.Message == tasks.MsgBadVideo:
		return fmt.Errorf("%w: %s", shared.ErrUnsupportedVideo, ctrl.Upload.Message)
	default:
		return fmt.Errorf("%w: %s: %v", shared.ErrInvalidInput, ctrl.Upload.Message, err)
	}
	if ctrl.Selection != nil {
		r.logger.Info("uploading video",
			"name", ctrl.Selection.Name,
			"type", ctrl.Selection.MIMEType,
			"size", humanize.Bytes(uint64(ctrl.Selection.Size)),
			"ai", ctrl.EnableAI,
		)
	}

	r.drive(ctx, ctrl, tasks.SubmitUpload{})

	if ctrl.Upload.Status != tasks.Succeeded {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, ctrl.Upload.Message)
	}
	return r.writePlain("✓ %s\n", ctrl.Upload.Message)
}
