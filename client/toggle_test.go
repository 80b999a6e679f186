package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleCommit(t *testing.T) {
	calls := []bool{}
	toggle := NewToggle(false, 3, func(ctx context.Context, on bool) error {
		calls = append(calls, on)
		return nil
	})

	require.NoError(t, toggle.Toggle(context.Background()))
	assert.True(t, toggle.Active())
	assert.Equal(t, int64(4), toggle.Count())
	assert.Equal(t, ToggleCommitted, toggle.State())

	require.NoError(t, toggle.Toggle(context.Background()))
	assert.False(t, toggle.Active())
	assert.Equal(t, int64(3), toggle.Count())

	assert.Equal(t, []bool{true, false}, calls)
}

func TestToggleRollback(t *testing.T) {
	applyErr := errors.New("tweet not found")
	toggle := NewToggle(false, 3, func(ctx context.Context, on bool) error {
		return applyErr
	})

	err := toggle.Toggle(context.Background())
	require.ErrorIs(t, err, applyErr)

	// 失败后回到原值
	assert.False(t, toggle.Active())
	assert.Equal(t, int64(3), toggle.Count())
	assert.Equal(t, ToggleRolledBack, toggle.State())
}

func TestToggleOptimisticFlip(t *testing.T) {
	observed := make(chan struct{})
	release := make(chan struct{})

	toggle := NewToggle(false, 0, func(ctx context.Context, on bool) error {
		close(observed)
		<-release
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- toggle.Toggle(context.Background()) }()

	<-observed
	// 服务端还没确认时本地已经翻转
	assert.True(t, toggle.Active())
	assert.Equal(t, int64(1), toggle.Count())
	assert.Equal(t, TogglePending, toggle.State())

	// pending 期间再次触发被忽略
	require.NoError(t, toggle.Toggle(context.Background()))
	assert.Equal(t, int64(1), toggle.Count())

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, ToggleCommitted, toggle.State())
}

func TestToggleSync(t *testing.T) {
	toggle := NewToggle(false, 0, func(ctx context.Context, on bool) error { return nil })
	require.NoError(t, toggle.Toggle(context.Background()))

	toggle.Sync(false, 7)
	assert.False(t, toggle.Active())
	assert.Equal(t, int64(7), toggle.Count())
	assert.Equal(t, ToggleIdle, toggle.State())
}

func TestToggleRefreshSeedsFromStatus(t *testing.T) {
	toggle := NewToggle(false, 2,
		func(ctx context.Context, on bool) error { return nil },
		WithToggleStatus(func(ctx context.Context) (bool, error) { return true, nil }),
	)

	require.NoError(t, toggle.Refresh(context.Background()))
	assert.True(t, toggle.Active())
	// Refresh 只同步开关，计数保持不变
	assert.Equal(t, int64(2), toggle.Count())
	assert.Equal(t, ToggleIdle, toggle.State())
}

func TestToggleOnChange(t *testing.T) {
	type change struct {
		active bool
		count  int64
	}
	var changes []change

	toggle := NewToggle(false, 0,
		func(ctx context.Context, on bool) error { return errors.New("boom") },
		WithToggleChange(func(active bool, count int64) {
			changes = append(changes, change{active, count})
		}),
	)

	require.Error(t, toggle.Toggle(context.Background()))

	// 乐观翻转和回滚各通知一次
	require.Len(t, changes, 2)
	assert.Equal(t, change{true, 1}, changes[0])
	assert.Equal(t, change{false, 0}, changes[1])
}
