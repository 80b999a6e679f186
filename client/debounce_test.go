package client

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerOnlyLastCallFires(t *testing.T) {
	debouncer := NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	var last atomic.Int32

	for i := 1; i <= 5; i++ {
		value := int32(i)
		debouncer.Call(func() {
			fired.Add(1)
			last.Store(value)
		})
	}

	assert.Eventually(t, func() bool {
		return fired.Load() == 1 && last.Load() == 5
	}, time.Second, 5*time.Millisecond)

	// 确认没有迟到的触发
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncerCancel(t *testing.T) {
	debouncer := NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	debouncer.Call(func() { fired.Add(1) })
	debouncer.Cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
