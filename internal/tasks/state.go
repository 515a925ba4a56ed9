package tasks

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/liftlog/internal/forms"
	"github.com/desertthunder/liftlog/internal/models"
	"github.com/desertthunder/liftlog/internal/shared"
)

// Status messages shown per flow.
const (
	MsgLiftLogged    = "Lift logged successfully!"
	MsgLogFailed     = "Failed to log lift. Please try again."
	MsgLogOffline    = "Error connecting to server. Please try again."
	MsgNoVideo       = "Please select a video file first."
	MsgBadVideo      = "Please select a valid video file (MP4, AVI, MOV, WMV, or WEBM)."
	MsgUnreadable    = "Could not read the selected file."
	MsgUploaded      = "Video uploaded successfully!"
	MsgUploadFailed  = "Failed to upload video. Please try again."
	MsgUploadOffline = "Error uploading video. Please check your connection."
)

// Tab is one of the four top-level views.
type Tab int

const (
	DashboardTab Tab = iota
	LogLiftTab
	UploadVideoTab
	HistoryTab
)

// Tabs lists every [Tab] in display order.
var Tabs = []Tab{DashboardTab, LogLiftTab, UploadVideoTab, HistoryTab}

func (t Tab) String() string {
	switch t {
	case DashboardTab:
		return "Dashboard"
	case LogLiftTab:
		return "Log Lift"
	case UploadVideoTab:
		return "Upload Video"
	case HistoryTab:
		return "History"
	default:
		return ""
	}
}

// Next returns the tab to the right, wrapping around.
func (t Tab) Next() Tab { return Tabs[(int(t)+1)%len(Tabs)] }

// Prev returns the tab to the left, wrapping around.
func (t Tab) Prev() Tab { return Tabs[(int(t)+len(Tabs)-1)%len(Tabs)] }

// Status is the lifecycle position of a flow.
type Status int

const (
	Idle Status = iota
	Pending
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// Flow holds the status and last message of one request flow.
type Flow struct {
	Status  Status
	Message string
}

// Loading reports whether the flow has a request in flight.
func (f Flow) Loading() bool { return f.Status == Pending }

func (f *Flow) settle(status Status, msg string) {
	f.Status = status
	f.Message = msg
}

// State is everything the views render.
type State struct {
	Tab       Tab
	Lifts     models.History
	History   Flow
	Log       Flow
	Upload    Flow
	Form      forms.LiftForm
	Selection *models.VideoSelection
	EnableAI  bool

	// set when a refresh was requested while a fetch was already in flight
	refetch bool
}

// Controller applies events to a [State].
type Controller struct {
	State

	now    func() time.Time
	logger *log.Logger
}

// ControllerOpts configures a [Controller].
type ControllerOpts struct {
	EnableAI bool
	Now      func() time.Time
	Logger   *log.Logger
}

// NewController creates a [Controller] on the dashboard tab with an empty form dated today.
func NewController(opts ControllerOpts) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	c := &Controller{now: opts.Now, logger: opts.Logger}
	c.Tab = DashboardTab
	c.EnableAI = opts.EnableAI
	c.Lifts = models.History{}
	c.Form = forms.LiftForm{LiftType: string(models.Squat), Date: models.Today(c.now())}
	return c
}

// Now returns the controller's current time.
func (c *Controller) Now() time.Time {
	return c.now()
}

// Today returns the current date in [models.DateLayout].
func (c *Controller) Today() string {
	return models.Today(c.now())
}

// Summary computes dashboard statistics over the cached history.
func (c *Controller) Summary() models.Summary {
	return c.Lifts.Summarize(c.now())
}

// Apply is the single update function: it mutates the state in response to e
// and returns the request to issue, if any.
func (c *Controller) Apply(e Event) Effect {
	switch e := e.(type) {
	case Mounted, RefreshHistory:
		return c.fetchHistory()

	case HistoryLoaded:
		return c.historyLoaded(e)

	case SwitchTab:
		c.Tab = e.Tab

	case EditForm:
		c.editForm(e.Field, e.Value)

	case SubmitLift:
		return c.submitLift()

	case LiftLogged:
		return c.liftLogged(e.Err)

	case SelectVideo:
		if !c.Upload.Loading() {
			c.selectVideo(e)
		}

	case ClearVideo:
		if !c.Upload.Loading() {
			c.Selection = nil
			c.Upload.settle(Idle, "")
		}

	case ToggleAI:
		c.EnableAI = !c.EnableAI

	case SubmitUpload:
		return c.submitUpload()

	case VideoUploaded:
		return c.videoUploaded(e.Err)
	}

	return Effect{}
}

func (c *Controller) fetchHistory() Effect {
	if c.History.Loading() {
		c.refetch = true
		return Effect{}
	}
	c.History.Status = Pending
	return Effect{Kind: FetchLifts}
}

func (c *Controller) historyLoaded(e HistoryLoaded) Effect {
	if e.Err != nil {
		c.logger.Warn("failed to fetch lift history", "error", e.Err)
		c.History.settle(Failed, "")
	} else {
		lifts := make(models.History, len(e.Lifts))
		copy(lifts, e.Lifts)
		c.Lifts = lifts
		c.History.settle(Succeeded, "")
		c.logger.Debug("lift history loaded", "count", len(lifts))
	}

	if c.refetch {
		c.refetch = false
		return c.fetchHistory()
	}
	return Effect{}
}

func (c *Controller) editForm(field forms.Field, value string) {
	switch field {
	case forms.FieldLiftType:
		c.Form.LiftType = value
	case forms.FieldWeight:
		c.Form.Weight = value
	case forms.FieldReps:
		c.Form.Reps = value
	case forms.FieldDate:
		c.Form.Date = value
	}
}

func (c *Controller) submitLift() Effect {
	if c.Log.Loading() {
		return Effect{}
	}
	c.Log.settle(Idle, "")

	lift, err := forms.ParseLift(c.Form)
	if err != nil {
		msg := MsgLogFailed
		if ve, ok := forms.AsValidation(err); ok {
			msg = ve.Message()
		}
		c.Log.settle(Failed, msg)
		return Effect{}
	}

	c.Log.Status = Pending
	return Effect{Kind: LogLift, Lift: lift}
}

func (c *Controller) liftLogged(err error) Effect {
	if err != nil {
		c.logger.Error("failed to log lift", "error", err)
		if errors.Is(err, shared.ErrUnexpectedStatus) {
			c.Log.settle(Failed, MsgLogFailed)
		} else {
			c.Log.settle(Failed, MsgLogOffline)
		}
		return Effect{}
	}

	c.Log.settle(Succeeded, MsgLiftLogged)
	c.Form.Weight = ""
	c.Form.Reps = ""
	c.Form.Date = c.Today()
	return c.fetchHistory()
}

func (c *Controller) selectVideo(e SelectVideo) {
	switch {
	case e.Err != nil && errors.Is(e.Err, shared.ErrUnsupportedVideo):
		c.Selection = nil
		c.Upload.settle(Failed, MsgBadVideo)
	case e.Err != nil && errors.Is(e.Err, shared.ErrNoVideoSelected):
		c.Selection = nil
		c.Upload.settle(Idle, "")
	case e.Err != nil:
		c.Selection = nil
		c.Upload.settle(Failed, MsgUnreadable)
	case e.Selection == nil:
		c.Selection = nil
		c.Upload.settle(Idle, "")
	case forms.CheckVideoType(e.Selection.MIMEType) != nil:
		c.Selection = nil
		c.Upload.settle(Failed, MsgBadVideo)
	default:
		sel := *e.Selection
		c.Selection = &sel
		c.Upload.settle(Idle, "")
	}
}

func (c *Controller) submitUpload() Effect {
	if c.Upload.Loading() {
		return Effect{}
	}
	if c.Selection == nil {
		c.Upload.settle(Failed, MsgNoVideo)
		return Effect{}
	}

	c.Upload.settle(Pending, "")
	return Effect{Kind: UploadVideo, Video: *c.Selection, EnableAI: c.EnableAI}
}

func (c *Controller) videoUploaded(err error) Effect {
	if err != nil {
		c.logger.Error("failed to upload video", "error", err)
		if errors.Is(err, shared.ErrUnexpectedStatus) {
			c.Upload.settle(Failed, MsgUploadFailed)
		} else {
			c.Upload.settle(Failed, MsgUploadOffline)
		}
		return Effect{}
	}

	c.Upload.settle(Succeeded, MsgUploaded)
	c.Selection = nil
	return Effect{Kind: ResetFile}
}
