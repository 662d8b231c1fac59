// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"

	"github.com/rs/zerolog"
)

// NewTestLogger creates a logger that writes through t.Log, so log
// output shows up attached to the failing test.
func NewTestLogger(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
}
