package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/HediM1312/twitter-clone/internal/config"
	"github.com/HediM1312/twitter-clone/internal/repository"
	"github.com/HediM1312/twitter-clone/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMediaService(t *testing.T, env *testEnv) *MediaService {
	t.Helper()

	cfg := &config.MediaConfig{
		UploadDir: t.TempDir(),
		MaxSize:   10 << 20,
	}
	return NewMediaService(repository.NewMediaRepository(env.db), cfg, logger.NewLogger())
}

func TestUploadImage(t *testing.T) {
	env := newTestEnv(t)
	media := newMediaService(t, env)
	ctx := context.Background()

	bob := env.register(t, "bob")

	data := bytes.Repeat([]byte("x"), 1024)
	uploaded, err := media.Upload(ctx, bob.ID.String(), "photo.png", "image/png", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "image", uploaded.MediaType)
	assert.Equal(t, int64(len(data)), uploaded.Size)

	// 文件已落盘
	info, err := os.Stat(uploaded.Path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), info.Size())
	assert.Equal(t, uploaded.ID.String()+".png", filepath.Base(uploaded.Path))
}

func TestUploadVideo(t *testing.T) {
	env := newTestEnv(t)
	media := newMediaService(t, env)
	ctx := context.Background()

	bob := env.register(t, "bob")

	data := bytes.Repeat([]byte("v"), 5<<20)
	uploaded, err := media.Upload(ctx, bob.ID.String(), "clip.mp4", "video/mp4", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "video", uploaded.MediaType)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	env := newTestEnv(t)
	media := newMediaService(t, env)
	ctx := context.Background()

	bob := env.register(t, "bob")

	_, err := media.Upload(ctx, bob.ID.String(), "notes.txt", "text/plain", 10, bytes.NewReader([]byte("0123456789")))
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
}

func TestUploadRejectsOversize(t *testing.T) {
	env := newTestEnv(t)
	media := newMediaService(t, env)
	ctx := context.Background()

	bob := env.register(t, "bob")

	// 声明的大小超限，不需要真的读 15MB
	_, err := media.Upload(ctx, bob.ID.String(), "big.png", "image/png", 15<<20, bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrMediaTooLarge)
}

func TestTweetWithMedia(t *testing.T) {
	env := newTestEnv(t)
	media := newMediaService(t, env)
	ctx := context.Background()

	bob := env.register(t, "bob")
	alice := env.register(t, "alice")

	data := []byte("fake image bytes")
	uploaded, err := media.Upload(ctx, bob.ID.String(), "photo.jpg", "image/jpeg", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)

	tweet, err := env.tweets.Create(ctx, bob.ID.String(), &CreateTweetRequest{
		Content: "look at this",
		MediaID: uploaded.ID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, tweet.MediaID)
	assert.Equal(t, uploaded.ID, *tweet.MediaID)
	assert.Equal(t, "image", tweet.MediaType)

	// 不能引用别人的媒体
	_, err = env.tweets.Create(ctx, alice.ID.String(), &CreateTweetRequest{
		Content: "stealing",
		MediaID: uploaded.ID.String(),
	})
	assert.EqualError(t, err, "media does not belong to user")
}
