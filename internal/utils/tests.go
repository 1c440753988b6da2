package util

import (
	"math/rand"
	"testing"
)

// NewWorkloadRand returns a seeded RNG for test workloads so a failing run
// reproduces with the same key sequence.
func NewWorkloadRand(t *testing.T, seed int64) *rand.Rand {
	t.Helper()
	return rand.New(rand.NewSource(seed))
}
