package client

import (
	"errors"
	"fmt"
	"strings"
)

// MaxUploadSize is the largest media file accepted for upload.
const MaxUploadSize = 10 << 20 // 10MB

var (
	ErrFileTooLarge      = fmt.Errorf("file exceeds %d bytes", int64(MaxUploadSize))
	ErrUnsupportedUpload = errors.New("only image and video files are supported")
	ErrEmptyUpload       = errors.New("file is empty")
)

// ValidateUpload checks a file before it is sent to the server, so the
// user gets immediate feedback instead of a failed upload.
func ValidateUpload(contentType string, size int64) error {
	if size <= 0 {
		return ErrEmptyUpload
	}
	if size > MaxUploadSize {
		return ErrFileTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		return ErrUnsupportedUpload
	}
	return nil
}
