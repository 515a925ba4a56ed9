// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/liftlog/internal/models"
)

// Upload records a single call to [MockLiftService.UploadVideo].
type Upload struct {
	Video    models.VideoSelection
	EnableAI bool
}

// MockLiftService is a test double for services.LiftService that records every call.
type MockLiftService struct {
	mu sync.Mutex

	Lifts     []models.Lift
	FetchErr  error
	LogErr    error
	UploadErr error

	FetchCalls int
	Logged     []models.Lift
	Uploads    []Upload
}

func (m *MockLiftService) FetchLifts(ctx context.Context) ([]models.Lift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchCalls++
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	out := make([]models.Lift, len(m.Lifts))
	copy(out, m.Lifts)
	return out, nil
}

func (m *MockLiftService) LogLift(ctx context.Context, lift models.Lift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logged = append(m.Logged, lift)
	if m.LogErr != nil {
		return m.LogErr
	}
	m.Lifts = append(m.Lifts, lift)
	return nil
}

func (m *MockLiftService) UploadVideo(ctx context.Context, video models.VideoSelection, enableAI bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Uploads = append(m.Uploads, Upload{Video: video, EnableAI: enableAI})
	return m.UploadErr
}

// LoggedCount returns the number of LogLift calls.
func (m *MockLiftService) LoggedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Logged)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// MustWriteFile writes content to path, failing the test on error.
func MustWriteFile(t *testing.T, path string, content []byte) string {
	t.Helper()
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
