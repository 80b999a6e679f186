package services

import (
	"context"
	"testing"

	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnreadCountAndMarkRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.register(t, "bob")
	alice := env.register(t, "alice")

	tweet, err := env.tweets.Create(ctx, bob.ID.String(), &CreateTweetRequest{Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, env.likes.Like(ctx, alice.ID.String(), tweet.ID.String()))
	_, err = env.comments.Create(ctx, alice.ID.String(), &CreateCommentRequest{
		TweetID: tweet.ID.String(),
		Content: "hi",
	})
	require.NoError(t, err)

	count, err := env.notifications.UnreadCount(ctx, bob.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	notifications, err := env.notifications.List(ctx, bob.ID.String(), 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	// 单条标记已读
	require.NoError(t, env.notifications.MarkAsRead(ctx, bob.ID.String(), notifications[0].ID.String()))

	count, err = env.notifications.UnreadCount(ctx, bob.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 全部标记已读
	require.NoError(t, env.notifications.MarkAllAsRead(ctx, bob.ID.String()))

	count, err = env.notifications.UnreadCount(ctx, bob.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkAsReadPermission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.register(t, "bob")
	alice := env.register(t, "alice")

	tweet, err := env.tweets.Create(ctx, bob.ID.String(), &CreateTweetRequest{Content: "hello"})
	require.NoError(t, err)
	require.NoError(t, env.likes.Like(ctx, alice.ID.String(), tweet.ID.String()))

	notifications, err := env.notifications.List(ctx, bob.ID.String(), 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	// 别人的通知不能标记
	err = env.notifications.MarkAsRead(ctx, alice.ID.String(), notifications[0].ID.String())
	assert.EqualError(t, err, "permission denied")
}

// Notify 跳过发给自己的通知
func TestNotifySkipsSelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.register(t, "bob")

	err := env.notifications.Notify(ctx, &models.Notification{
		RecipientID: bob.ID,
		SenderID:    bob.ID,
		Type:        models.NotificationLike,
	})
	require.NoError(t, err)

	count, err := env.notifications.UnreadCount(ctx, bob.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
