// Package globaltime is the process clock. Every timestamp the service
// emits is UTC, so the clock only hands out UTC instants; tests freeze it
// instead of sleeping.
package globaltime

import (
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	nowFunc = time.Now
)

// Now returns the current time in UTC.
func Now() time.Time {
	mu.RLock()
	defer mu.RUnlock()
	return nowFunc().UTC()
}

// Freeze pins the clock to a fixed instant until Unfreeze is called.
func Freeze(t time.Time) {
	mu.Lock()
	defer mu.Unlock()
	nowFunc = func() time.Time { return t }
}

func Unfreeze() {
	mu.Lock()
	defer mu.Unlock()
	nowFunc = time.Now
}
