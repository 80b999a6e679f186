package client

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is how often the unread count is polled.
const DefaultPollInterval = 30 * time.Second

// NotificationWatcher polls the unread notification count and fetches
// the notification list lazily, the first time it is asked for.
type NotificationWatcher struct {
	client   *Client
	interval time.Duration

	mu            sync.Mutex
	count         int64
	notifications []Notification
	fetched       bool

	onCount func(count int64)
}

type WatcherOption func(*NotificationWatcher)

func WithPollInterval(interval time.Duration) WatcherOption {
	return func(w *NotificationWatcher) {
		w.interval = interval
	}
}

// WithCountHandler registers a callback invoked on every successful poll.
func WithCountHandler(fn func(count int64)) WatcherOption {
	return func(w *NotificationWatcher) {
		w.onCount = fn
	}
}

func NewNotificationWatcher(client *Client, opts ...WatcherOption) *NotificationWatcher {
	w := &NotificationWatcher{
		client:   client,
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch polls the unread count until the context is cancelled. Poll
// failures are skipped; the next tick tries again.
func (w *NotificationWatcher) Watch(ctx context.Context) {
	w.poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *NotificationWatcher) poll(ctx context.Context) {
	count, err := w.client.NotificationCount(ctx)
	if err != nil {
		return
	}

	w.mu.Lock()
	w.count = count
	onCount := w.onCount
	w.mu.Unlock()

	if onCount != nil {
		onCount(count)
	}
}

// UnreadCount returns the last polled unread count.
func (w *NotificationWatcher) UnreadCount() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Notifications returns the notification list, fetching it from the
// server only on first call. Subsequent calls return the cached list
// until Invalidate.
func (w *NotificationWatcher) Notifications(ctx context.Context) ([]Notification, error) {
	w.mu.Lock()
	if w.fetched {
		list := w.notifications
		w.mu.Unlock()
		return list, nil
	}
	w.mu.Unlock()

	list, err := w.client.GetNotifications(ctx, 0, 50)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.notifications = list
	w.fetched = true
	w.mu.Unlock()
	return list, nil
}

// Invalidate drops the cached list so the next Notifications call
// fetches fresh data.
func (w *NotificationWatcher) Invalidate() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fetched = false
	w.notifications = nil
}

// MarkRead marks one notification read locally and tells the server in
// the background.
func (w *NotificationWatcher) MarkRead(ctx context.Context, notificationID string) {
	w.mu.Lock()
	if w.count > 0 {
		w.count--
	}
	for i := range w.notifications {
		if w.notifications[i].ID == notificationID {
			w.notifications[i].IsRead = true
			break
		}
	}
	w.mu.Unlock()

	go func() {
		// 失败也无妨，下次轮询会纠正计数
		_ = w.client.MarkNotificationRead(ctx, notificationID)
	}()
}

// MarkAllRead clears the unread badge immediately and tells the server
// in the background.
func (w *NotificationWatcher) MarkAllRead(ctx context.Context) {
	w.mu.Lock()
	w.count = 0
	for i := range w.notifications {
		w.notifications[i].IsRead = true
	}
	w.mu.Unlock()

	go func() {
		// 失败也无妨，下次轮询会纠正计数
		_ = w.client.MarkAllNotificationsRead(ctx)
	}()
}
