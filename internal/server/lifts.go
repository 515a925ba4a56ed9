package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/liftlog/internal/forms"
	"github.com/desertthunder/liftlog/internal/models"
	"github.com/desertthunder/liftlog/internal/services"
	"github.com/desertthunder/liftlog/internal/shared"
)

const maxJSONBody = 1 << 20

// UploadRecord describes a received video. The video bytes are discarded.
type UploadRecord struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	EnableAI    bool      `json:"enableAI"`
	Analysis    string    `json:"analysis"`
	ReceivedAt  time.Time `json:"receivedAt"`
}

// LiftStore keeps lifts and upload records in memory for the lifetime of the process.
type LiftStore struct {
	mu      sync.RWMutex
	lifts   []models.Lift
	uploads []UploadRecord
	newID   func() string
}

// NewLiftStore creates an empty [LiftStore] assigning v4 UUIDs.
func NewLiftStore() *LiftStore {
	return &LiftStore{newID: shared.GenerateID}
}

// Add stores a copy of l with a fresh ID and returns it.
func (s *LiftStore) Add(l models.Lift) models.Lift {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = models.LiftID(s.newID())
	s.lifts = append(s.lifts, l)
	return l
}

// List returns every lift in insertion order. Never nil.
func (s *LiftStore) List() []models.Lift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Lift, len(s.lifts))
	copy(out, s.lifts)
	return out
}

// AddUpload stores u with a fresh ID and returns it.
func (s *LiftStore) AddUpload(u UploadRecord) UploadRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.newID()
	s.uploads = append(s.uploads, u)
	return u
}

// Uploads returns every upload record in arrival order.
func (s *LiftStore) Uploads() []UploadRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]UploadRecord, len(s.uploads))
	copy(out, s.uploads)
	return out
}

// LiftHandler serves GET /lifts, POST /log_lift and POST /upload_video from a [LiftStore].
type LiftHandler struct {
	store     *LiftStore
	logger    *log.Logger
	maxUpload int64
	mux       *http.ServeMux
	now       func() time.Time
}

// LiftHandlerOpts configures a [LiftHandler].
type LiftHandlerOpts struct {
	Store          *LiftStore
	Logger         *log.Logger
	MaxUploadBytes int64 // 0 disables the limit
}

var _ Handler = (*LiftHandler)(nil)

// NewLiftHandler creates a [LiftHandler], allocating a store when none is given.
func NewLiftHandler(opts LiftHandlerOpts) *LiftHandler {
	if opts.Store == nil {
		opts.Store = NewLiftStore()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	h := &LiftHandler{
		store:     opts.Store,
		logger:    opts.Logger,
		maxUpload: opts.MaxUploadBytes,
		mux:       http.NewServeMux(),
		now:       time.Now,
	}
	h.mux.HandleFunc("GET "+services.PathLifts, h.listLifts)
	h.mux.HandleFunc("POST "+services.PathLogLift, h.logLift)
	h.mux.HandleFunc("POST "+services.PathUploadVideo, h.uploadVideo)
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *LiftHandler) Routes() []string {
	return []string{services.PathLifts, services.PathLogLift, services.PathUploadVideo}
}

// ServeHTTP dispatches to the endpoint matching the request method and path.
func (h *LiftHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Store returns the backing store.
func (h *LiftHandler) Store() *LiftStore {
	return h.store
}

func (h *LiftHandler) listLifts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.List())
}

func (h *LiftHandler) logLift(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	var lift models.Lift
	if err := json.NewDecoder(r.Body).Decode(&lift); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := forms.ValidateLift(lift); err != nil {
		msg := err.Error()
		if ve, ok := forms.AsValidation(err); ok {
			msg = ve.Message()
		}
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	stored := h.store.Add(lift)
	h.logger.Debug("lift stored", "id", stored.ID, "lift", stored.LiftType, "weight", stored.Weight, "reps", stored.Reps)
	writeJSON(w, http.StatusCreated, stored)
}

func (h *LiftHandler) uploadVideo(w http.ResponseWriter, r *http.Request) {
	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart/form-data")
		return
	}

	var (
		rec      UploadRecord
		gotVideo bool
	)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			h.writeBodyError(w, err, "malformed multipart body")
			return
		}

		switch part.FormName() {
		case services.FieldVideo:
			if part.FileName() == "" {
				writeError(w, http.StatusBadRequest, "video field must be a file")
				return
			}
			ct, _, _ := mime.ParseMediaType(part.Header.Get("Content-Type"))
			if err := forms.CheckVideoType(ct); err != nil {
				writeError(w, http.StatusUnsupportedMediaType, "unsupported video type "+strconv.Quote(ct))
				return
			}
			n, err := io.Copy(io.Discard, part)
			if err != nil {
				h.writeBodyError(w, err, "failed to read video")
				return
			}
			rec.Filename = part.FileName()
			rec.ContentType = ct
			rec.Size = n
			gotVideo = true

		case services.FieldEnableAI:
			raw, err := io.ReadAll(io.LimitReader(part, 16))
			if err != nil {
				h.writeBodyError(w, err, "failed to read enableAI")
				return
			}
			v, err := strconv.ParseBool(strings.TrimSpace(string(raw)))
			if err != nil {
				writeError(w, http.StatusBadRequest, "enableAI must be true or false")
				return
			}
			rec.EnableAI = v

		default:
			_, _ = io.Copy(io.Discard, part)
		}
		part.Close()
	}

	if !gotVideo {
		writeError(w, http.StatusBadRequest, "missing video file")
		return
	}

	rec.Analysis = "skipped"
	if rec.EnableAI {
		rec.Analysis = "queued"
	}
	rec.ReceivedAt = h.now().UTC()

	stored := h.store.AddUpload(rec)
	h.logger.Info("video received", "id", stored.ID, "file", stored.Filename, "size", stored.Size, "enableAI", stored.EnableAI)
	writeJSON(w, http.StatusCreated, stored)
}

func (h *LiftHandler) writeBodyError(w http.ResponseWriter, err error, msg string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
		return
	}
	h.logger.Warn(msg, "error", err)
	writeError(w, http.StatusBadRequest, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := shared.MarshalJSON(v, false)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
