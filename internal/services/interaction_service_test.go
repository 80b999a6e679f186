package services

import (
	"context"
	"testing"

	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/HediM1312/twitter-clone/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeAndUnlike(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.register(t, "bob")
	alice := env.register(t, "alice")

	tweet, err := env.tweets.Create(ctx, bob.ID.String(), &CreateTweetRequest{Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, env.likes.Like(ctx, alice.ID.String(), tweet.ID.String()))

	liked, err := env.likes.IsLiked(ctx, alice.ID.String(), tweet.ID.String())
	require.NoError(t, err)
	assert.True(t, liked)

	// 计数已更新
	current, err := env.tweets.GetByID(ctx, tweet.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), current.LikeCount)

	// 重复点赞
	err = env.likes.Like(ctx, alice.ID.String(), tweet.ID.String())
	assert.EqualError(t, err, "already liked")

	require.NoError(t, env.likes.Unlike(ctx, alice.ID.String(), tweet.ID.String()))

	current, err = env.tweets.GetByID(ctx, tweet.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), current.LikeCount)

	err = env.likes.Unlike(ctx, alice.ID.String(), tweet.ID.String())
	assert.EqualError(t, err, "not liked")
}

func TestLikeNotifiesAuthor(t *testing.T) {
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
	assert.Equal(t, models.NotificationLike, notifications[0].Type)
	require.NotNil(t, notifications[0].TweetID)
	assert.Equal(t, tweet.ID, *notifications[0].TweetID)
}

// 自己点赞自己的推文不产生通知
func TestSelfLikeNoNotification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.register(t, "bob")

	tweet, err := env.tweets.Create(ctx, bob.ID.String(), &CreateTweetRequest{Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, env.likes.Like(ctx, bob.ID.String(), tweet.ID.String()))

	notifications, err := env.notifications.List(ctx, bob.ID.String(), 0, 10)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestRetweet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.register(t, "bob")
	alice := env.register(t, "alice")

	tweet, err := env.tweets.Create(ctx, bob.ID.String(), &CreateTweetRequest{Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, env.retweets.Retweet(ctx, alice.ID.String(), tweet.ID.String(), &RetweetRequest{Comment: "nice"}))

	retweeted, err := env.retweets.IsRetweeted(ctx, alice.ID.String(), tweet.ID.String())
	require.NoError(t, err)
	assert.True(t, retweeted)

	current, err := env.tweets.GetByID(ctx, tweet.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), current.RetweetCount)

	// 事件携带引用评论
	event, ok := env.publisher.lastEvent(queue.EventRetweetCreated)
	require.True(t, ok)
	data, ok := event.Data.(queue.RetweetEventData)
	require.True(t, ok)
	assert.Equal(t, "nice", data.Comment)

	err = env.retweets.Retweet(ctx, alice.ID.String(), tweet.ID.String(), nil)
	assert.EqualError(t, err, "already retweeted")

	require.NoError(t, env.retweets.Unretweet(ctx, alice.ID.String(), tweet.ID.String()))

	current, err = env.tweets.GetByID(ctx, tweet.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), current.RetweetCount)
}

func TestComments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.register(t, "bob")
	alice := env.register(t, "alice")

	tweet, err := env.tweets.Create(ctx, bob.ID.String(), &CreateTweetRequest{Content: "hello"})
	require.NoError(t, err)

	comment, err := env.comments.Create(ctx, alice.ID.String(), &CreateCommentRequest{
		TweetID: tweet.ID.String(),
		Content: "great tweet",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", comment.User.Username)

	comments, err := env.comments.GetByTweetID(ctx, tweet.ID.String(), 0, 10)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	current, err := env.tweets.GetByID(ctx, tweet.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), current.CommentCount)

	// 作者收到评论通知
	notifications, err := env.notifications.List(ctx, bob.ID.String(), 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationComment, notifications[0].Type)

	// 非作者不能删评论
	err = env.comments.Delete(ctx, bob.ID.String(), comment.ID.String())
	assert.EqualError(t, err, "permission denied")

	require.NoError(t, env.comments.Delete(ctx, alice.ID.String(), comment.ID.String()))

	current, err = env.tweets.GetByID(ctx, tweet.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), current.CommentCount)
}

func TestBookmarks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.register(t, "bob")
	alice := env.register(t, "alice")

	tweet, err := env.tweets.Create(ctx, bob.ID.String(), &CreateTweetRequest{Content: "bookmark me"})
	require.NoError(t, err)

	require.NoError(t, env.bookmarks.Bookmark(ctx, alice.ID.String(), tweet.ID.String()))

	err = env.bookmarks.Bookmark(ctx, alice.ID.String(), tweet.ID.String())
	assert.EqualError(t, err, "already bookmarked")

	saved, err := env.bookmarks.List(ctx, alice.ID.String(), 0, 10)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, tweet.ID, saved[0].ID)

	require.NoError(t, env.bookmarks.Unbookmark(ctx, alice.ID.String(), tweet.ID.String()))

	saved, err = env.bookmarks.List(ctx, alice.ID.String(), 0, 10)
	require.NoError(t, err)
	assert.Empty(t, saved)
}
