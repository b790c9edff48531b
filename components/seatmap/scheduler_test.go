package seatmap

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebounceSchedulerCoalescesPerKey(t *testing.T) {
	s := NewDebounceScheduler(20 * time.Millisecond)
	defer s.Stop()

	var refresh, cacheAll atomic.Int32
	for range 5 {
		s.Debounce("refresh", func() { refresh.Add(1) })
		s.Debounce("cache-all", func() { cacheAll.Add(1) })
	}

	require.Eventually(t, func() bool {
		return refresh.Load() == 1 && cacheAll.Load() == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), refresh.Load())
	assert.Equal(t, int32(1), cacheAll.Load())
}

func TestDebounceSchedulerStopDropsPendingWork(t *testing.T) {
	s := NewDebounceScheduler(20 * time.Millisecond)
	var ran atomic.Bool
	s.Debounce("refresh", func() { ran.Store(true) })
	s.Stop()
	s.Debounce("refresh", func() { ran.Store(true) })

	time.Sleep(80 * time.Millisecond)
	assert.False(t, ran.Load())
}

func TestManualSchedulerRunsLatestInOrder(t *testing.T) {
	s := NewManualScheduler()
	var order []string
	s.Debounce("b", func() { order = append(order, "b1") })
	s.Debounce("a", func() { order = append(order, "a") })
	s.Debounce("b", func() { order = append(order, "b2") })

	assert.Equal(t, 2, s.Pending())
	assert.Equal(t, 3, s.Calls())
	assert.Equal(t, 2, s.Flush())
	assert.Equal(t, []string{"b2", "a"}, order)
	assert.Equal(t, 0, s.Flush())
}

func TestManualSchedulerWorkMayReschedule(t *testing.T) {
	s := NewManualScheduler()
	s.Debounce("a", func() {
		s.Debounce("a", func() {})
	})
	assert.Equal(t, 1, s.Flush())
	assert.Equal(t, 1, s.Pending())
}
