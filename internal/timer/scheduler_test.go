package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 2, 14, 20, 0, 0, 0, time.UTC)

func TestScheduler_AfterFuncFiresOnceAtDeadline(t *testing.T) {
	clock := NewMockClock(epoch)
	s := New(clock)

	calls := 0
	s.AfterFunc(600*time.Millisecond, func() { calls++ })

	clock.Advance(599 * time.Millisecond)
	assert.Equal(t, 0, s.Run())
	assert.Equal(t, 0, calls)

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, s.Run())
	assert.Equal(t, 1, calls)

	clock.Advance(time.Hour)
	s.Run()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_EveryRepeatsAndCatchesUp(t *testing.T) {
	clock := NewMockClock(epoch)
	s := New(clock)

	ticks := 0
	s.Every(5*time.Second, func() { ticks++ })

	clock.Advance(5 * time.Second)
	s.Run()
	assert.Equal(t, 1, ticks)

	clock.Advance(15 * time.Second)
	s.Run()
	assert.Equal(t, 4, ticks)
	assert.Equal(t, 1, s.Pending())
}

func TestScheduler_EveryIgnoresNonPositivePeriod(t *testing.T) {
	s := New(NewMockClock(epoch))
	s.Every(0, func() { t.Fatal("should not be scheduled") })
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_OrdersByDeadlineThenScheduling(t *testing.T) {
	clock := NewMockClock(epoch)
	s := New(clock)

	var order []string
	s.AfterFunc(2*time.Second, func() { order = append(order, "late") })
	s.AfterFunc(time.Second, func() { order = append(order, "first") })
	s.AfterFunc(time.Second, func() { order = append(order, "second") })

	clock.Advance(3 * time.Second)
	s.Run()

	assert.Equal(t, []string{"first", "second", "late"}, order)
}

func TestScheduler_CallbackMayScheduleDueTimer(t *testing.T) {
	clock := NewMockClock(epoch)
	s := New(clock)

	var order []string
	s.AfterFunc(time.Second, func() {
		order = append(order, "outer")
		s.AfterFunc(0, func() { order = append(order, "nested") })
		s.AfterFunc(time.Second, func() { order = append(order, "later") })
	})

	clock.Advance(time.Second)
	require.Equal(t, 2, s.Run())
	assert.Equal(t, []string{"outer", "nested"}, order)
	assert.Equal(t, 1, s.Pending())

	clock.Advance(time.Second)
	s.Run()
	assert.Equal(t, []string{"outer", "nested", "later"}, order)
}

func TestNew_DefaultsToSystemClock(t *testing.T) {
	s := New(nil)
	before := time.Now()
	assert.False(t, s.Now().Before(before))
}
