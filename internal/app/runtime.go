package app

import (
	"os"
	"sync"
)

const testModeEnv = "EKOHAJJ_TEST_MODE"

var testMode struct {
	once sync.Once
	mu   sync.RWMutex
	on   bool
}

func loadTestMode() {
	on := os.Getenv(testModeEnv) == "1"
	testMode.mu.Lock()
	testMode.on = on
	testMode.mu.Unlock()
}

// InTestMode reports whether EKOHAJJ_TEST_MODE=1. Binaries return before
// connecting to Redis or binding a port in that mode.
func InTestMode() bool {
	testMode.once.Do(loadTestMode)
	testMode.mu.RLock()
	defer testMode.mu.RUnlock()
	return testMode.on
}

// RefreshTestMode re-reads the flag after the environment changed.
func RefreshTestMode() {
	testMode.once.Do(func() {})
	loadTestMode()
}
