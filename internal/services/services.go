// package services defines interface LiftService for interacting with the lift HTTP API
package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/liftlog/internal/models"
	"github.com/desertthunder/liftlog/internal/shared"
)

// Endpoint paths of the lift service.
const (
	PathLifts       = "/lifts"
	PathLogLift     = "/log_lift"
	PathUploadVideo = "/upload_video"
)

// Multipart field names for video uploads.
const (
	FieldVideo    = "video"
	FieldEnableAI = "enableAI"
)

// LiftService defines the three request flows against the lift backend.
type LiftService interface {
	// FetchLifts retrieves the full lift list in backend order.
	FetchLifts(ctx context.Context) ([]models.Lift, error)

	// LogLift submits a single lift entry.
	LogLift(ctx context.Context, lift models.Lift) error

	// UploadVideo uploads a training video, optionally requesting AI analysis.
	UploadVideo(ctx context.Context, video models.VideoSelection, enableAI bool) error
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return shared.ErrUnexpectedStatus
}
