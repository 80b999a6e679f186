package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HediM1312/twitter-clone/internal/config"
	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/HediM1312/twitter-clone/internal/repository"
	"github.com/HediM1312/twitter-clone/pkg/logger"
	"github.com/google/uuid"
)

var (
	ErrMediaTooLarge        = errors.New("media file too large")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

type MediaService struct {
	mediaRepo *repository.MediaRepository
	config    *config.MediaConfig
	logger    *logger.Logger
}

func NewMediaService(mediaRepo *repository.MediaRepository, config *config.MediaConfig, logger *logger.Logger) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		config:    config,
		logger:    logger,
	}
}

// Upload 校验并落盘上传的文件，返回媒体记录
func (s *MediaService) Upload(ctx context.Context, ownerID string, filename, contentType string, size int64, r io.Reader) (*models.Media, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID: %w", err)
	}

	mediaType, err := mediaTypeOf(contentType)
	if err != nil {
		return nil, err
	}

	if size > s.config.MaxSize {
		return nil, ErrMediaTooLarge
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	id := uuid.New()
	path := filepath.Join(s.config.UploadDir, id.String()+filepath.Ext(filename))

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create media file: %w", err)
	}
	defer dst.Close()

	// 以声明的大小为上限再读一字节，防止写入超限内容
	written, err := io.Copy(dst, io.LimitReader(r, s.config.MaxSize+1))
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write media file: %w", err)
	}
	if written > s.config.MaxSize {
		os.Remove(path)
		return nil, ErrMediaTooLarge
	}

	media := &models.Media{
		ID:          id,
		OwnerID:     ownerUUID,
		Filename:    filename,
		ContentType: contentType,
		MediaType:   mediaType,
		Size:        written,
		Path:        path,
	}

	if err := s.mediaRepo.Create(ctx, media); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to create media record: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"media_id": media.ID,
		"owner_id": ownerID,
		"size":     written,
	}).Info("Media uploaded successfully")
	return media, nil
}

// Get 返回媒体记录，文件路径在 Path 字段中
func (s *MediaService) Get(ctx context.Context, mediaID string) (*models.Media, error) {
	mediaUUID, err := uuid.Parse(mediaID)
	if err != nil {
		return nil, fmt.Errorf("invalid media ID: %w", err)
	}

	media, err := s.mediaRepo.GetByID(ctx, mediaUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	if media == nil {
		return nil, errors.New("media not found")
	}

	return media, nil
}

func mediaTypeOf(contentType string) (string, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaTypeImage, nil
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaTypeVideo, nil
	default:
		return "", ErrUnsupportedMediaType
	}
}
