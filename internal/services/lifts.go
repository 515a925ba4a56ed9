package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/desertthunder/liftlog/internal/models"
	"github.com/desertthunder/liftlog/internal/shared"
)

var _ LiftService = (*LiftAPI)(nil)

// LiftAPI implements [LiftService] on top of [APIService].
//
// Every call runs under its own timeout so a hung request cannot keep a flow pending forever.
type LiftAPI struct {
	api            *APIService
	requestTimeout time.Duration
	uploadTimeout  time.Duration
}

// LiftAPIOpts configures a [LiftAPI]. Zero timeouts disable the deadline.
type LiftAPIOpts struct {
	RequestTimeout time.Duration
	UploadTimeout  time.Duration
}

// NewLiftAPI creates a [LiftAPI] using the given raw API client.
func NewLiftAPI(api *APIService, opts LiftAPIOpts) *LiftAPI {
	if api == nil {
		api = NewAPIService("", nil)
	}
	return &LiftAPI{
		api:            api,
		requestTimeout: opts.RequestTimeout,
		uploadTimeout:  opts.UploadTimeout,
	}
}

// NewLiftAPIFromConfig creates a [LiftAPI] from the [shared.APIConfig] section.
func NewLiftAPIFromConfig(cfg shared.APIConfig, client *http.Client) *LiftAPI {
	return NewLiftAPI(NewAPIService(cfg.BaseURL, client), LiftAPIOpts{
		RequestTimeout: cfg.RequestTimeout,
		UploadTimeout:  cfg.UploadTimeout,
	})
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// FetchLifts performs GET /lifts and decodes the JSON array.
func (s *LiftAPI) FetchLifts(ctx context.Context) ([]models.Lift, error) {
	ctx, cancel := withTimeout(ctx, s.requestTimeout)
	defer cancel()

	resp, err := s.api.Get(ctx, PathLifts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return nil, &StatusError{Method: http.MethodGet, Path: PathLifts, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	var lifts []models.Lift
	if err := json.Unmarshal(resp.Body, &lifts); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidResponse, err)
	}
	if lifts == nil {
		lifts = []models.Lift{}
	}

	return lifts, nil
}

// LogLift performs POST /log_lift with the lift as JSON.
//
// The identifier is never sent; the backend assigns it.
func (s *LiftAPI) LogLift(ctx context.Context, lift models.Lift) error {
	ctx, cancel := withTimeout(ctx, s.requestTimeout)
	defer cancel()

	lift.ID = ""
	data, err := json.Marshal(lift)
	if err != nil {
		return fmt.Errorf("failed to marshal lift: %w", err)
	}

	resp, err := s.api.Post(ctx, PathLogLift, data)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return &StatusError{Method: http.MethodPost, Path: PathLogLift, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	return nil
}

// UploadVideo performs POST /upload_video with the video and the AI flag as multipart form data.
func (s *LiftAPI) UploadVideo(ctx context.Context, video models.VideoSelection, enableAI bool) error {
	ctx, cancel := withTimeout(ctx, s.uploadTimeout)
	defer cancel()

	f, err := os.Open(video.Path)
	if err != nil {
		return fmt.Errorf("failed to open video: %w", err)
	}
	defer f.Close()

	name := video.Name
	if name == "" {
		name = f.Name()
	}

	resp, err := s.api.PostMultipart(ctx, PathUploadVideo,
		map[string]string{FieldEnableAI: strconv.FormatBool(enableAI)},
		FilePart{Field: FieldVideo, Name: name, MIMEType: video.MIMEType, Content: f},
	)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return &StatusError{Method: http.MethodPost, Path: PathUploadVideo, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	return nil
}
