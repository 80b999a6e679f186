package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int64
		wantErr     error
	}{
		{"small image", "image/png", 1 << 20, nil},
		{"video at the limit", "video/mp4", MaxUploadSize, nil},
		{"oversize image", "image/jpeg", MaxUploadSize + 1, ErrFileTooLarge},
		{"text file", "text/plain", 512, ErrUnsupportedUpload},
		{"empty file", "image/png", 0, ErrEmptyUpload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.contentType, tt.size)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
