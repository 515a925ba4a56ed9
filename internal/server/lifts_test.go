package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/liftlog/internal/models"
	"github.com/desertthunder/liftlog/internal/services"
	"github.com/desertthunder/liftlog/internal/shared"
)

func newTestBackend(t *testing.T, maxUpload int64) (*LiftHandler, *httptest.Server) {
	t.Helper()
	logger := shared.NewLogger(io.Discard)
	h := NewLiftHandler(LiftHandlerOpts{Logger: logger, MaxUploadBytes: maxUpload})

	r := NewBasicRouter()
	r.Use(Recoverer(logger), RequestLogger(logger))
	r.Handler(h)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return h, srv
}

func multipartBody(t *testing.T, filename, contentType string, content []byte, enableAI string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if enableAI != "" {
		if err := mw.WriteField(services.FieldEnableAI, enableAI); err != nil {
			t.Fatal(err)
		}
	}
	if filename != "" {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="video"; filename="`+filename+`"`)
		hdr.Set("Content-Type", contentType)
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestLiftHandlerWithClient(t *testing.T) {
	h, srv := newTestBackend(t, 0)
	client := services.NewLiftAPI(services.NewAPIService(srv.URL, srv.Client()), services.LiftAPIOpts{})
	ctx := context.Background()

	t.Run("empty history is an empty array", func(t *testing.T) {
		lifts, err := client.FetchLifts(ctx)
		if err != nil {
			t.Fatalf("FetchLifts failed: %v", err)
		}
		if lifts == nil || len(lifts) != 0 {
			t.Errorf("expected empty slice, got %v", lifts)
		}
	})

	t.Run("logged lifts come back with ids in order", func(t *testing.T) {
		first := models.Lift{LiftType: models.Squat, Weight: 140, Reps: 5, Date: "2025-03-01"}
		second := models.Lift{LiftType: models.Deadlift, Weight: 200.5, Reps: 1, Date: "2025-03-02"}
		for _, l := range []models.Lift{first, second} {
			if err := client.LogLift(ctx, l); err != nil {
				t.Fatalf("LogLift failed: %v", err)
			}
		}

		lifts, err := client.FetchLifts(ctx)
		if err != nil {
			t.Fatalf("FetchLifts failed: %v", err)
		}
		if len(lifts) != 2 {
			t.Fatalf("expected 2 lifts, got %d", len(lifts))
		}
		if lifts[0].ID == "" || lifts[0].ID == lifts[1].ID {
			t.Errorf("expected distinct ids, got %q %q", lifts[0].ID, lifts[1].ID)
		}
		if lifts[1].Weight != 200.5 || lifts[1].LiftType != models.Deadlift {
			t.Errorf("unexpected second lift %+v", lifts[1])
		}
	})

	t.Run("invalid lift is a status error", func(t *testing.T) {
		err := client.LogLift(ctx, models.Lift{LiftType: models.Bench, Weight: -1, Reps: 5, Date: "2025-03-01"})
		if !errors.Is(err, shared.ErrUnexpectedStatus) {
			t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
		}
		var se *services.StatusError
		if !errors.As(err, &se) || se.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %v", err)
		}
	})

	t.Run("video upload", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bench.webm")
		if err := os.WriteFile(path, bytes.Repeat([]byte("x"), 4096), 0644); err != nil {
			t.Fatal(err)
		}

		video := models.VideoSelection{Path: path, Name: "bench.webm", MIMEType: "video/webm", Size: 4096}
		if err := client.UploadVideo(ctx, video, true); err != nil {
			t.Fatalf("UploadVideo failed: %v", err)
		}

		uploads := h.Store().Uploads()
		if len(uploads) != 1 {
			t.Fatalf("expected 1 upload, got %d", len(uploads))
		}
		got := uploads[0]
		if got.Filename != "bench.webm" || got.Size != 4096 || got.ContentType != "video/webm" {
			t.Errorf("unexpected record %+v", got)
		}
		if !got.EnableAI || got.Analysis != "queued" {
			t.Errorf("expected AI queued, got %+v", got)
		}
	})

	t.Run("wrong method", func(t *testing.T) {
		resp, err := http.Post(srv.URL+services.PathLifts, "application/json", strings.NewReader("{}"))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", resp.StatusCode)
		}
	})
}

func TestLogLiftHandler(t *testing.T) {
	h := NewLiftHandler(LiftHandlerOpts{Logger: shared.NewLogger(io.Discard)})

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{name: "valid", body: `{"liftType":"bench","weight":100,"reps":5,"date":"2025-03-01"}`, status: http.StatusCreated},
		{name: "malformed", body: `{"liftType":`, status: http.StatusBadRequest, message: "invalid JSON body"},
		{name: "unknown lift", body: `{"liftType":"curl","weight":20,"reps":10,"date":"2025-03-01"}`, status: http.StatusBadRequest, message: "Lift type is not a supported lift."},
		{name: "too many reps", body: `{"liftType":"squat","weight":100,"reps":500,"date":"2025-03-01"}`, status: http.StatusBadRequest, message: "Reps must be between 1 and 100."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, services.PathLogLift, strings.NewReader(tt.body)))

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if tt.message == "" {
				return
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid error body: %v", err)
			}
			if body["error"] != tt.message {
				t.Errorf("expected %q, got %q", tt.message, body["error"])
			}
		})
	}
}

func TestUploadVideoHandler(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		enableAI    string
		size        int
		maxUpload   int64
		status      int
	}{
		{name: "mp4 without ai", filename: "a.mp4", contentType: "video/mp4", enableAI: "false", size: 10, status: http.StatusCreated},
		{name: "missing flag defaults off", filename: "a.mov", contentType: "video/quicktime", size: 10, status: http.StatusCreated},
		{name: "unsupported type", filename: "a.png", contentType: "image/png", enableAI: "true", size: 10, status: http.StatusUnsupportedMediaType},
		{name: "bad flag", filename: "a.mp4", contentType: "video/mp4", enableAI: "maybe", size: 10, status: http.StatusBadRequest},
		{name: "missing video", enableAI: "true", status: http.StatusBadRequest},
		{name: "too large", filename: "a.mp4", contentType: "video/mp4", enableAI: "true", size: 2048, maxUpload: 1024, status: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLiftHandler(LiftHandlerOpts{Logger: shared.NewLogger(io.Discard), MaxUploadBytes: tt.maxUpload})
			body, ct := multipartBody(t, tt.filename, tt.contentType, bytes.Repeat([]byte("v"), tt.size), tt.enableAI)

			req := httptest.NewRequest(http.MethodPost, services.PathUploadVideo, body)
			req.Header.Set("Content-Type", ct)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if tt.status != http.StatusCreated {
				if n := len(h.Store().Uploads()); n != 0 {
					t.Errorf("expected nothing stored, got %d", n)
				}
				return
			}

			var rec2 UploadRecord
			if err := json.Unmarshal(rec.Body.Bytes(), &rec2); err != nil {
				t.Fatal(err)
			}
			if rec2.ID == "" || rec2.Size != int64(tt.size) || rec2.Analysis != "skipped" {
				t.Errorf("unexpected record %+v", rec2)
			}
		})
	}

	t.Run("not multipart", func(t *testing.T) {
		h := NewLiftHandler(LiftHandlerOpts{Logger: shared.NewLogger(io.Discard)})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, services.PathUploadVideo, strings.NewReader("{}")))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	errCh := make(chan error, 1)

	go func() {
		errCh <- Serve(ctx, "127.0.0.1:0", NewLiftHandler(LiftHandlerOpts{Logger: shared.NewLogger(io.Discard)}), shared.NewLogger(io.Discard), ready)
	}()

	addr := <-ready
	resp, err := http.Get("http://" + addr + services.PathLifts)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Errorf("expected clean shutdown, got %v", err)
	}
}
