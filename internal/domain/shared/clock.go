package shared

import "time"

// Clock supplies the wall time used for artifact timestamps and for seeds
// picked when none is configured.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// NewRealClock returns a Clock reading the system time in UTC
func NewRealClock() Clock {
	return systemClock{}
}

// MockClock is a Clock that only moves when told to
type MockClock struct {
	CurrentTime time.Time
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{CurrentTime: start}
}

func (m *MockClock) Now() time.Time { return m.CurrentTime }

func (m *MockClock) Advance(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}

// SeedFromClock derives a seed from the clock. It never returns zero, which
// configuration reserves for "pick a seed for me".
func SeedFromClock(clock Clock) int64 {
	if seed := clock.Now().UnixNano(); seed != 0 {
		return seed
	}
	return 1
}
