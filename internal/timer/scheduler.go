// Package timer runs one-shot and repeating callbacks cooperatively on the
// host loop. Nothing fires on its own goroutine: the owner calls Run once per
// tick and every due callback executes inside that call.
package timer

import (
	"container/heap"
	"time"
)

// Scheduler is not safe for concurrent use. It belongs to the goroutine that
// calls Run.
type Scheduler struct {
	clock Clock
	queue timerQueue
	seq   uint64
}

type entry struct {
	deadline time.Time
	period   time.Duration // zero for one-shot timers
	fn       func()
	seq      uint64
}

// New creates a scheduler reading time from clock. A nil clock uses the
// system clock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock}
}

// Now returns the scheduler's notion of the current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// AfterFunc queues fn to run once, d after now.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) {
	s.push(&entry{deadline: s.clock.Now().Add(d), fn: fn})
}

// Every queues fn to run every d, first firing d after now.
// Non-positive periods are ignored.
func (s *Scheduler) Every(d time.Duration, fn func()) {
	if d <= 0 {
		return
	}
	s.push(&entry{deadline: s.clock.Now().Add(d), period: d, fn: fn})
}

// Run fires every timer whose deadline has passed, earliest first. Timers
// sharing a deadline fire in the order they were scheduled. Repeating timers
// are rescheduled from their previous deadline, so a late Run catches up.
func (s *Scheduler) Run() int {
	now := s.clock.Now()
	fired := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.deadline.After(now) {
			break
		}
		heap.Pop(&s.queue)
		if next.period > 0 {
			next.deadline = next.deadline.Add(next.period)
			s.push(next)
		}
		next.fn()
		fired++
	}
	return fired
}

// Pending returns the number of queued timers.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

func (s *Scheduler) push(e *entry) {
	s.seq++
	e.seq = s.seq
	heap.Push(&s.queue, e)
}

type timerQueue []*entry

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline.Equal(q[j].deadline) {
		return q[i].seq < q[j].seq
	}
	return q[i].deadline.Before(q[j].deadline)
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*entry)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}
