package engine

import "time"

// Clock is the loop's source of time and its only way to wait between frames
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// TimeProvider is the real clock with monotonic readings
type TimeProvider struct{}

// NewTimeProvider creates a wall clock
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *TimeProvider) Now() time.Time {
	return time.Now()
}

// Sleep pauses the calling goroutine
func (p *TimeProvider) Sleep(d time.Duration) {
	time.Sleep(d)
}
