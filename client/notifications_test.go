package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationAPI struct {
	listHits    atomic.Int32
	readAllHits atomic.Int32
	count       atomic.Int64
}

func (f *fakeNotificationAPI) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/notifications/count", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int64{"count": f.count.Load()})
	})
	mux.HandleFunc("/api/v1/notifications/n1/read", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Notification marked as read"})
	})
	mux.HandleFunc("/api/v1/notifications/read-all", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		f.readAllHits.Add(1)
		f.count.Store(0)
		json.NewEncoder(w).Encode(map[string]string{"message": "All notifications marked as read"})
	})
	mux.HandleFunc("/api/v1/notifications", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		f.listHits.Add(1)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"notifications": []map[string]string{
				{"id": "n1", "type": "like"},
				{"id": "n2", "type": "follow"},
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestWatcherPollsCount(t *testing.T) {
	api := &fakeNotificationAPI{}
	api.count.Store(3)
	server := api.server(t)

	var seen atomic.Int64
	watcher := NewNotificationWatcher(New(server.URL),
		WithPollInterval(10*time.Millisecond),
		WithCountHandler(func(count int64) { seen.Store(count) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Watch(ctx)

	assert.Eventually(t, func() bool {
		return watcher.UnreadCount() == 3 && seen.Load() == 3
	}, time.Second, 5*time.Millisecond)

	// 计数变化会在下一次轮询反映出来
	api.count.Store(5)
	assert.Eventually(t, func() bool {
		return watcher.UnreadCount() == 5
	}, time.Second, 5*time.Millisecond)
}

func TestWatcherLazyList(t *testing.T) {
	api := &fakeNotificationAPI{}
	server := api.server(t)

	watcher := NewNotificationWatcher(New(server.URL))
	assert.Equal(t, int32(0), api.listHits.Load())

	list, err := watcher.Notifications(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, int32(1), api.listHits.Load())

	// 第二次命中缓存
	_, err = watcher.Notifications(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), api.listHits.Load())

	watcher.Invalidate()
	_, err = watcher.Notifications(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.listHits.Load())
}

func TestWatcherMarkAllRead(t *testing.T) {
	api := &fakeNotificationAPI{}
	api.count.Store(4)
	server := api.server(t)

	watcher := NewNotificationWatcher(New(server.URL), WithPollInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Watch(ctx)

	assert.Eventually(t, func() bool {
		return watcher.UnreadCount() == 4
	}, time.Second, 5*time.Millisecond)

	list, err := watcher.Notifications(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	watcher.MarkAllRead(context.Background())

	// 本地立刻清零，缓存的条目也全部置为已读
	assert.Equal(t, int64(0), watcher.UnreadCount())
	cached, err := watcher.Notifications(context.Background())
	require.NoError(t, err)
	for _, n := range cached {
		assert.True(t, n.IsRead)
	}
	assert.Eventually(t, func() bool {
		return api.readAllHits.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestWatcherMarkRead(t *testing.T) {
	api := &fakeNotificationAPI{}
	api.count.Store(2)
	server := api.server(t)

	watcher := NewNotificationWatcher(New(server.URL), WithPollInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Watch(ctx)

	assert.Eventually(t, func() bool {
		return watcher.UnreadCount() == 2
	}, time.Second, 5*time.Millisecond)

	list, err := watcher.Notifications(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	watcher.MarkRead(context.Background(), "n1")

	assert.Equal(t, int64(1), watcher.UnreadCount())
	list, err = watcher.Notifications(context.Background())
	require.NoError(t, err)
	assert.True(t, list[0].IsRead)
	assert.False(t, list[1].IsRead)
}
