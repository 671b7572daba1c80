package lever

import (
	"sync"
	"time"
)

// Transition records one discrete value change.
type Transition struct {
	From    int       `json:"from"`
	To      int       `json:"to"`
	At      time.Time `json:"at"`
	Grabbed bool      `json:"grabbed"`
}

// TransitionLog is a thread-safe circular buffer of recent transitions.
// It keeps the newest entries up to a fixed capacity and allows concurrent
// reads while a single owner writes.
type TransitionLog struct {
	entries []Transition
	head    int // Next write position
	count   int // Number of valid entries (up to capacity)
	mu      sync.RWMutex
}

// NewTransitionLog creates a log with the given capacity.
func NewTransitionLog(capacity int) *TransitionLog {
	if capacity < 1 {
		capacity = 1
	}
	return &TransitionLog{
		entries: make([]Transition, capacity),
	}
}

// Record appends one transition, overwriting the oldest if full.
func (l *TransitionLog) Record(tr Transition) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[l.head] = tr
	l.head = (l.head + 1) % len(l.entries)

	if l.count < len(l.entries) {
		l.count++
	}
}

// Recent returns up to n most recent transitions in chronological order.
// Returns fewer if the log contains less than n.
func (l *TransitionLog) Recent(n int) []Transition {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.count == 0 || n <= 0 {
		return nil
	}

	if n > l.count {
		n = l.count
	}

	result := make([]Transition, n)
	capacity := len(l.entries)

	// head points to the next write position, so the newest entry is at
	// head-1 and the n requested ones start at head-n.
	start := (l.head - n + capacity) % capacity

	for i := 0; i < n; i++ {
		result[i] = l.entries[(start+i)%capacity]
	}

	return result
}

// Count returns the number of valid entries in the log.
func (l *TransitionLog) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.count
}
