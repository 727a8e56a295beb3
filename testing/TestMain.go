// Package testing switches the process into test mode when blank-imported
// by a test package, so the binaries return before connecting to Redis and
// PDF rendering points at an unreachable Gotenberg.
package testing

import "os"

var testEnv = map[string]string{
	"EKOHAJJ_TEST_MODE": "1",
	"GOTENBERG_URL":     "http://127.0.0.1:0",
}

func init() {
	for key, value := range testEnv {
		if key == "EKOHAJJ_TEST_MODE" || os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
