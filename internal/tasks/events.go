package tasks

import (
	"context"

	"github.com/desertthunder/liftlog/internal/forms"
	"github.com/desertthunder/liftlog/internal/models"
	"github.com/desertthunder/liftlog/internal/services"
)

// Event is a user action or request completion fed to [Controller.Apply].
type Event interface{ event() }

// Mounted is sent once when the view starts.
type Mounted struct{}

// RefreshHistory asks for the history list to be fetched again.
type RefreshHistory struct{}

// HistoryLoaded completes a [FetchLifts] effect.
type HistoryLoaded struct {
	Lifts []models.Lift
	Err   error
}

// EditForm assigns a raw value to one log form field.
type EditForm struct {
	Field forms.Field
	Value string
}

// SubmitLift submits the log form.
type SubmitLift struct{}

// LiftLogged completes a [LogLift] effect.
type LiftLogged struct{ Err error }

// SelectVideo records the result of picking a file.
// Err is set when the file could not be inspected.
type SelectVideo struct {
	Selection *models.VideoSelection
	Err       error
}

// ClearVideo drops the current selection.
type ClearVideo struct{}

// ToggleAI flips the AI analysis flag.
type ToggleAI struct{}

// SubmitUpload submits the selected video.
type SubmitUpload struct{}

// VideoUploaded completes an [UploadVideo] effect.
type VideoUploaded struct{ Err error }

// SwitchTab changes the visible tab.
type SwitchTab struct{ Tab Tab }

func (Mounted) event()        {}
func (RefreshHistory) event() {}
func (HistoryLoaded) event()  {}
func (EditForm) event()       {}
func (SubmitLift) event()     {}
func (LiftLogged) event()     {}
func (SelectVideo) event()    {}
func (ClearVideo) event()     {}
func (ToggleAI) event()       {}
func (SubmitUpload) event()   {}
func (VideoUploaded) event()  {}
func (SwitchTab) event()      {}

// EffectKind names the work an [Effect] asks for.
type EffectKind int

const (
	NoEffect EffectKind = iota
	FetchLifts
	LogLift
	UploadVideo
	// ResetFile tells the view to clear its file picker; no request is made.
	ResetFile
)

func (k EffectKind) String() string {
	switch k {
	case NoEffect:
		return "none"
	case FetchLifts:
		return "fetch_lifts"
	case LogLift:
		return "log_lift"
	case UploadVideo:
		return "upload_video"
	case ResetFile:
		return "reset_file"
	default:
		return ""
	}
}

// FlowID identifies a request flow for cancellation.
type FlowID int

const (
	HistoryFlow FlowID = iota
	LogFlow
	UploadFlow
)

// Effect is the follow-up work returned by [Controller.Apply].
type Effect struct {
	Kind     EffectKind
	Lift     models.Lift
	Video    models.VideoSelection
	EnableAI bool
}

// None reports whether the effect requires no work.
func (e Effect) None() bool { return e.Kind == NoEffect }

// Request reports whether performing the effect issues an HTTP request.
func (e Effect) Request() bool {
	return e.Kind == FetchLifts || e.Kind == LogLift || e.Kind == UploadVideo
}

// Flow returns the flow the effect belongs to.
func (e Effect) Flow() FlowID {
	switch e.Kind {
	case LogLift:
		return LogFlow
	case UploadVideo, ResetFile:
		return UploadFlow
	default:
		return HistoryFlow
	}
}

// Perform executes a request effect and returns its completion event.
// Effects that issue no request return nil.
func Perform(ctx context.Context, svc services.LiftService, e Effect) Event {
	switch e.Kind {
	case FetchLifts:
		lifts, err := svc.FetchLifts(ctx)
		return HistoryLoaded{Lifts: lifts, Err: err}
	case LogLift:
		return LiftLogged{Err: svc.LogLift(ctx, e.Lift)}
	case UploadVideo:
		return VideoUploaded{Err: svc.UploadVideo(ctx, e.Video, e.EnableAI)}
	default:
		return nil
	}
}
