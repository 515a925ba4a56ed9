package forms

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/liftlog/internal/models"
	"github.com/desertthunder/liftlog/internal/shared"
)

// videoTypes maps file extensions to the MIME type a browser reports for them.
var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".qt":   "video/quicktime",
	".wmv":  "video/x-ms-wmv",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".flv":  "video/x-flv",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".3gp":  "video/3gpp",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".txt":  "text/plain",
	".pdf":  "application/pdf",
}

// AllowedVideoTypes is the set of MIME types accepted for upload.
var AllowedVideoTypes = map[string]bool{
	"video/mp4":       true,
	"video/x-msvideo": true,
	"video/avi":       true,
	"video/quicktime": true,
	"video/x-ms-wmv":  true,
	"video/webm":      true,
}

// MIMEType returns the browser-style MIME type for a file name, or
// "application/octet-stream" when the extension is unknown.
func MIMEType(name string) string {
	if t, ok := videoTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}
	return "application/octet-stream"
}

// CheckVideoType rejects any MIME type outside [AllowedVideoTypes].
func CheckVideoType(mimeType string) error {
	if !AllowedVideoTypes[strings.ToLower(mimeType)] {
		return fmt.Errorf("%w: %s", shared.ErrUnsupportedVideo, mimeType)
	}
	return nil
}

// DetectVideo inspects the file at path and returns a [models.VideoSelection].
//
// The type check runs before the selection is returned, so a rejected file is never attached to a request.
func DetectVideo(path string) (*models.VideoSelection, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", shared.ErrNoVideoSelected)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read video file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", shared.ErrInvalidInput, path)
	}

	mimeType := MIMEType(info.Name())
	if err := CheckVideoType(mimeType); err != nil {
		return nil, err
	}

	return &models.VideoSelection{
		Path:     path,
		Name:     info.Name(),
		MIMEType: mimeType,
		Size:     info.Size(),
	}, nil
}
