package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.register(t, "bob")
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, "bob", user.DisplayName)
	assert.NotEqual(t, "password123", user.Password)

	// 用户名重复
	_, err := env.users.Register(ctx, &RegisterRequest{
		Username: "bob",
		Email:    "other@example.com",
		Password: "password123",
	})
	assert.EqualError(t, err, "username already exists")

	// 邮箱重复
	_, err = env.users.Register(ctx, &RegisterRequest{
		Username: "bobby",
		Email:    "bob@example.com",
		Password: "password123",
	})
	assert.EqualError(t, err, "email already exists")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, "bob")

	user, err := env.users.Login(ctx, &LoginRequest{Username: "bob", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)

	_, err = env.users.Login(ctx, &LoginRequest{Username: "bob", Password: "wrong"})
	assert.EqualError(t, err, "invalid username or password")

	_, err = env.users.Login(ctx, &LoginRequest{Username: "nobody", Password: "password123"})
	assert.EqualError(t, err, "invalid username or password")
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.register(t, "bob")

	displayName := "Bob the Builder"
	bio := "can we fix it"
	updated, err := env.users.Update(ctx, user.ID.String(), &UpdateUserRequest{
		DisplayName: &displayName,
		Bio:         &bio,
	})
	require.NoError(t, err)
	assert.Equal(t, displayName, updated.DisplayName)
	assert.Equal(t, bio, updated.Bio)

	// 只更新一个字段时另一个保持不变
	newBio := "updated"
	updated, err = env.users.Update(ctx, user.ID.String(), &UpdateUserRequest{Bio: &newBio})
	require.NoError(t, err)
	assert.Equal(t, displayName, updated.DisplayName)
	assert.Equal(t, newBio, updated.Bio)
}

func TestFollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	require.NoError(t, env.users.Follow(ctx, alice.ID.String(), "bob"))

	following, err := env.users.IsFollowing(ctx, alice.ID.String(), "bob")
	require.NoError(t, err)
	assert.True(t, following)

	// 重复关注
	err = env.users.Follow(ctx, alice.ID.String(), "bob")
	assert.EqualError(t, err, "already following")

	// 关注自己
	err = env.users.Follow(ctx, alice.ID.String(), "alice")
	assert.EqualError(t, err, "cannot follow yourself")

	// 计数已更新
	aliceNow, err := env.users.GetByID(ctx, alice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), aliceNow.Following)

	bobNow, err := env.users.GetByID(ctx, bob.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), bobNow.Followers)

	// 被关注方收到通知
	notifications, err := env.notifications.List(ctx, bob.ID.String(), 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "follow", string(notifications[0].Type))
	assert.Equal(t, alice.ID, notifications[0].SenderID)
}

func TestUnfollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice")
	env.register(t, "bob")

	require.NoError(t, env.users.Follow(ctx, alice.ID.String(), "bob"))
	require.NoError(t, env.users.Unfollow(ctx, alice.ID.String(), "bob"))

	following, err := env.users.IsFollowing(ctx, alice.ID.String(), "bob")
	require.NoError(t, err)
	assert.False(t, following)

	err = env.users.Unfollow(ctx, alice.ID.String(), "bob")
	assert.EqualError(t, err, "not following")

	aliceNow, err := env.users.GetByID(ctx, alice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), aliceNow.Following)
}

func TestFollowerLists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice")
	carol := env.register(t, "carol")
	env.register(t, "bob")

	require.NoError(t, env.users.Follow(ctx, alice.ID.String(), "bob"))
	require.NoError(t, env.users.Follow(ctx, carol.ID.String(), "bob"))

	followers, err := env.users.GetFollowers(ctx, "bob", 0, 10)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	stats, err := env.users.Stats(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Followers)
	assert.Equal(t, int64(0), stats.Following)
}

func TestSearchUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, "alice")
	env.register(t, "alicia")
	env.register(t, "bob")

	users, err := env.users.Search(ctx, "ali", 0, 10)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = env.users.Search(ctx, "", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, users)
}
