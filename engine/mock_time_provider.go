package engine

import (
	"slices"
	"sync"
	"time"
)

// MockTimeProvider is a Clock that only moves when told to
// Sleep returns at once: it moves the clock forward by d and records d, so paced loops run at full speed in tests
type MockTimeProvider struct {
	mu     sync.RWMutex
	now    time.Time
	sleeps []time.Duration
}

// NewMockTimeProvider starts the clock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// SetTime jumps to t, backwards included
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock without recording a sleep, standing in for work done during a frame
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

func (m *MockTimeProvider) Sleep(d time.Duration) {
	m.mu.Lock()
	m.sleeps = append(m.sleeps, d)
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Sleeps returns a copy of every duration passed to Sleep, oldest first
func (m *MockTimeProvider) Sleeps() []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.sleeps)
}
