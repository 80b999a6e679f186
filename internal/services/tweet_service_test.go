package services

import (
	"context"
	"testing"

	"github.com/HediM1312/twitter-clone/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTweet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.register(t, "bob")

	tweet, err := env.tweets.Create(ctx, bob.ID.String(), &CreateTweetRequest{
		Content: "hello world",
		Tags:    []string{"greetings"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", tweet.Content)
	assert.Equal(t, []string{"greetings"}, tweet.Tags)
	assert.Equal(t, int64(0), tweet.LikeCount)
	assert.Equal(t, "bob", tweet.User.Username)

	// 推文数已更新
	bobNow, err := env.users.GetByID(ctx, bob.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), bobNow.TweetCount)

	// 事件携带作者信息，供索引器解析提及
	event, ok := env.publisher.lastEvent(queue.EventTweetCreated)
	require.True(t, ok)
	data, ok := event.Data.(queue.TweetEventData)
	require.True(t, ok)
	assert.Equal(t, bob.ID.String(), data.UserID)
	assert.Equal(t, "bob", data.Username)
	assert.Equal(t, tweet.Content, data.Content)
}

// 注册、登录、发推、时间线可见：核心流程一条龙
func TestTweetVisibleOnTimeline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.register(t, "bob")

	logged, err := env.users.Login(ctx, &LoginRequest{Username: "bob", Password: "password123"})
	require.NoError(t, err)

	_, err = env.tweets.Create(ctx, logged.ID.String(), &CreateTweetRequest{Content: "hello world"})
	require.NoError(t, err)

	timeline, err := env.tweets.GetLatest(ctx, 0, 20)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Equal(t, "hello world", timeline[0].Content)
	assert.Equal(t, bob.ID, timeline[0].UserID)
	assert.Equal(t, int64(0), timeline[0].LikeCount)
}

func TestTimelineOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.register(t, "bob")

	for _, content := range []string{"first", "second", "third"} {
		_, err := env.tweets.Create(ctx, bob.ID.String(), &CreateTweetRequest{Content: content})
		require.NoError(t, err)
	}

	timeline, err := env.tweets.GetLatest(ctx, 0, 20)
	require.NoError(t, err)
	require.Len(t, timeline, 3)
	// 新的在前
	assert.Equal(t, "third", timeline[0].Content)
	assert.Equal(t, "first", timeline[2].Content)
}

func TestDeleteTweet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.register(t, "bob")
	alice := env.register(t, "alice")

	tweet, err := env.tweets.Create(ctx, bob.ID.String(), &CreateTweetRequest{Content: "hello"})
	require.NoError(t, err)

	// 非作者不能删除
	err = env.tweets.Delete(ctx, alice.ID.String(), tweet.ID.String())
	assert.EqualError(t, err, "permission denied")

	require.NoError(t, env.tweets.Delete(ctx, bob.ID.String(), tweet.ID.String()))

	_, err = env.tweets.GetByID(ctx, tweet.ID.String())
	assert.EqualError(t, err, "tweet not found")

	timeline, err := env.tweets.GetLatest(ctx, 0, 20)
	require.NoError(t, err)
	assert.Empty(t, timeline)
}

func TestUserTweetLists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.register(t, "bob")
	alice := env.register(t, "alice")

	tweet, err := env.tweets.Create(ctx, bob.ID.String(), &CreateTweetRequest{Content: "from bob"})
	require.NoError(t, err)
	_, err = env.tweets.Create(ctx, alice.ID.String(), &CreateTweetRequest{Content: "from alice"})
	require.NoError(t, err)

	bobTweets, err := env.tweets.GetByUsername(ctx, "bob", 0, 10)
	require.NoError(t, err)
	require.Len(t, bobTweets, 1)
	assert.Equal(t, "from bob", bobTweets[0].Content)

	// alice 点赞 bob 的推文后出现在她的点赞列表里
	require.NoError(t, env.likes.Like(ctx, alice.ID.String(), tweet.ID.String()))

	liked, err := env.tweets.GetLikedByUsername(ctx, "alice", 0, 10)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, tweet.ID, liked[0].ID)

	// 转发列表
	require.NoError(t, env.retweets.Retweet(ctx, alice.ID.String(), tweet.ID.String(), nil))

	retweeted, err := env.tweets.GetRetweetedByUsername(ctx, "alice", 0, 10)
	require.NoError(t, err)
	require.Len(t, retweeted, 1)
	assert.Equal(t, tweet.ID, retweeted[0].ID)
}

func TestSearchTweets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.register(t, "bob")

	_, err := env.tweets.Create(ctx, bob.ID.String(), &CreateTweetRequest{Content: "golang is fun"})
	require.NoError(t, err)
	_, err = env.tweets.Create(ctx, bob.ID.String(), &CreateTweetRequest{Content: "something else"})
	require.NoError(t, err)

	results, err := env.tweets.Search(ctx, "golang", 0, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "golang is fun", results[0].Content)
}
