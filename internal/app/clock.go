package app

import (
	"sync"
	"time"
)

// Clock — источник времени для бюджета стресс-теста.
type Clock interface {
	Now() time.Time
}

// SystemClock — реальное время.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock — управляемое время: тесты и безоконный прогон, где бюджет
// считается по симулированному времени.
type ManualClock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{currentTime: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

// Advance сдвигает время вперёд.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
}
