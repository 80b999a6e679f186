package client

import (
	"context"
	"sync"
)

// ToggleState tracks an optimistic toggle through its lifecycle.
type ToggleState int

const (
	ToggleIdle ToggleState = iota
	TogglePending
	ToggleCommitted
	ToggleRolledBack
)

func (s ToggleState) String() string {
	switch s {
	case ToggleIdle:
		return "idle"
	case TogglePending:
		return "pending"
	case ToggleCommitted:
		return "committed"
	case ToggleRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// Toggle is an optimistic on/off control backed by a server call, used
// for like, retweet and follow buttons. The local state and count flip
// immediately; if the server call fails they are rolled back.
type Toggle struct {
	mu     sync.Mutex
	active bool
	count  int64
	state  ToggleState

	// apply performs the server call for the desired state: on=true
	// creates the relation, on=false removes it.
	apply func(ctx context.Context, on bool) error

	// check fetches the server-side on/off state, used by Refresh.
	check func(ctx context.Context) (bool, error)

	onChange func(active bool, count int64)
}

type ToggleOption func(*Toggle)

// WithToggleStatus binds the server status call used by Refresh.
func WithToggleStatus(check func(ctx context.Context) (bool, error)) ToggleOption {
	return func(t *Toggle) {
		t.check = check
	}
}

// WithToggleChange registers a callback invoked after every local change.
func WithToggleChange(fn func(active bool, count int64)) ToggleOption {
	return func(t *Toggle) {
		t.onChange = fn
	}
}

func NewToggle(active bool, count int64, apply func(ctx context.Context, on bool) error, opts ...ToggleOption) *Toggle {
	t := &Toggle{
		active: active,
		count:  count,
		state:  ToggleIdle,
		apply:  apply,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Active returns the current (possibly optimistic) on/off state.
func (t *Toggle) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Count returns the current (possibly optimistic) counter value.
func (t *Toggle) Count() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// State returns the lifecycle state of the last toggle.
func (t *Toggle) State() ToggleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Toggle flips the state optimistically, then confirms with the server.
// On failure the optimistic flip is undone and the error returned.
// A toggle while another is pending is ignored.
func (t *Toggle) Toggle(ctx context.Context) error {
	t.mu.Lock()
	if t.state == TogglePending {
		t.mu.Unlock()
		return nil
	}

	desired := !t.active
	t.active = desired
	if desired {
		t.count++
	} else {
		t.count--
	}
	t.state = TogglePending
	t.mu.Unlock()

	t.notify()

	err := t.apply(ctx, desired)

	t.mu.Lock()
	if err != nil {
		// 回滚乐观更新
		t.active = !desired
		if desired {
			t.count--
		} else {
			t.count++
		}
		t.state = ToggleRolledBack
		t.mu.Unlock()
		t.notify()
		return err
	}

	t.state = ToggleCommitted
	t.mu.Unlock()
	t.notify()
	return nil
}

// Refresh seeds the on/off state from the server status call.
// The counter is left alone; Sync sets both.
func (t *Toggle) Refresh(ctx context.Context) error {
	if t.check == nil {
		return nil
	}

	active, err := t.check(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.active = active
	t.state = ToggleIdle
	t.mu.Unlock()
	t.notify()
	return nil
}

func (t *Toggle) notify() {
	if t.onChange == nil {
		return
	}
	t.mu.Lock()
	active, count := t.active, t.count
	t.mu.Unlock()
	t.onChange(active, count)
}

// Sync overwrites the local state with server-reported values.
func (t *Toggle) Sync(active bool, count int64) {
	t.mu.Lock()
	t.active = active
	t.count = count
	t.state = ToggleIdle
	t.mu.Unlock()
	t.notify()
}

// NewLikeToggle builds a toggle bound to the like endpoints of a tweet.
func NewLikeToggle(c *Client, tweetID string, liked bool, count int64, opts ...ToggleOption) *Toggle {
	opts = append([]ToggleOption{WithToggleStatus(func(ctx context.Context) (bool, error) {
		return c.LikeStatus(ctx, tweetID)
	})}, opts...)
	return NewToggle(liked, count, func(ctx context.Context, on bool) error {
		if on {
			return c.LikeTweet(ctx, tweetID)
		}
		return c.UnlikeTweet(ctx, tweetID)
	}, opts...)
}

// NewRetweetToggle builds a toggle bound to the retweet endpoints of a tweet.
func NewRetweetToggle(c *Client, tweetID string, retweeted bool, count int64, opts ...ToggleOption) *Toggle {
	opts = append([]ToggleOption{WithToggleStatus(func(ctx context.Context) (bool, error) {
		return c.RetweetStatus(ctx, tweetID)
	})}, opts...)
	return NewToggle(retweeted, count, func(ctx context.Context, on bool) error {
		if on {
			return c.Retweet(ctx, tweetID, "")
		}
		return c.Unretweet(ctx, tweetID)
	}, opts...)
}

// NewFollowToggle builds a toggle bound to the follow endpoints of a user.
func NewFollowToggle(c *Client, username string, following bool, followers int64, opts ...ToggleOption) *Toggle {
	opts = append([]ToggleOption{WithToggleStatus(func(ctx context.Context) (bool, error) {
		return c.FollowStatus(ctx, username)
	})}, opts...)
	return NewToggle(following, followers, func(ctx context.Context, on bool) error {
		if on {
			return c.Follow(ctx, username)
		}
		return c.Unfollow(ctx, username)
	}, opts...)
}
