package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	d := New(30 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() { fired.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 5*time.Millisecond)

	// No further callbacks arrive after the burst settles.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncerOnlyLastCallbackWins(t *testing.T) {
	d := New(20 * time.Millisecond)
	defer d.Stop()

	var got atomic.Value
	d.Trigger(func() { got.Store("first") })
	d.Trigger(func() { got.Store("second") })

	require.Eventually(t, func() bool { return got.Load() != nil },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, "second", got.Load())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := New(20 * time.Millisecond)

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestDebouncerDefaultDelay(t *testing.T) {
	d := New(0)
	defer d.Stop()

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 5*time.Millisecond)
}
