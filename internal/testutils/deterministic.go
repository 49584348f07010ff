// Package testutils provides deterministic generators for Tianya testing.
// These utilities ensure consistent test output while maintaining production format compatibility.
package testutils

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// Thread-safe counter for deterministic ID generation
	idCounter uint64
	idMutex   sync.Mutex

	// Thread-safe counter for deterministic timestamp generation
	timeCounter int64
	timeMutex   sync.Mutex
)

// GenerateUUID generates a UUID that is deterministic in test mode but random in production.
// In test mode, returns UUIDs in format: 00000001-0000-4000-8000-000000000001, etc.
func GenerateUUID(testMode bool) string {
	if testMode {
		return getDeterministicUUID()
	}
	return uuid.New().String()
}

// GetCurrentTime returns the current time, deterministic in test mode but real in production.
// In test mode, returns incrementing time starting from 2025-01-01T00:00:00Z.
func GetCurrentTime(testMode bool) time.Time {
	if testMode {
		return getDeterministicTime()
	}
	return time.Now()
}

// getDeterministicUUID generates a deterministic UUID maintaining UUID v4 format.
func getDeterministicUUID() string {
	idMutex.Lock()
	defer idMutex.Unlock()

	idCounter++

	// Format: xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx with version 4 and variant 8.
	return fmt.Sprintf("%08x-0000-4000-8000-%012x", idCounter, idCounter)
}

// getDeterministicTime generates incrementing deterministic timestamps for test mode.
// Each call returns a time that is 1 second later than the previous call.
func getDeterministicTime() time.Time {
	timeMutex.Lock()
	defer timeMutex.Unlock()

	timeCounter++

	baseTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return baseTime.Add(time.Duration(timeCounter) * time.Second)
}

// ResetCounters resets the deterministic generators. Tests that assert on
// concrete IDs or timestamps call this in their setup.
func ResetCounters() {
	idMutex.Lock()
	idCounter = 0
	idMutex.Unlock()

	timeMutex.Lock()
	timeCounter = 0
	timeMutex.Unlock()
}
