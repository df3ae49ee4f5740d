// ABOUTME: Tests for retry utilities including exponential backoff
// ABOUTME: Validates backoff calculation, bounds, and jitter behavior
package util

import (
	"testing"
	"time"
)

func TestCalculateBackoff_ZeroAttempt(t *testing.T) {
	result := CalculateBackoff(time.Second, 0)
	if result != 0 {
		t.Errorf("expected 0 for attempt 0, got %v", result)
	}
}

func TestCalculateBackoff_ExponentialGrowth(t *testing.T) {
	baseDelay := 100 * time.Millisecond

	for attempt := 1; attempt <= 5; attempt++ {
		// Expected base: 2^attempt * 100ms, with ±25% jitter
		expectedBase := baseDelay * time.Duration(1<<uint(attempt))
		minExpected := expectedBase * 3 / 4
		maxExpected := expectedBase * 5 / 4

		result := CalculateBackoff(baseDelay, attempt)

		if result < minExpected || result > maxExpected {
			t.Errorf("attempt %d: expected backoff between %v and %v, got %v",
				attempt, minExpected, maxExpected, result)
		}
	}
}

func TestCalculateBackoff_CapsAt30Seconds(t *testing.T) {
	// Attempt 10 would give 2^10 * 1s = 1024s without cap
	result := CalculateBackoff(time.Second, 10)

	// Capped at 30s with +25% jitter headroom
	maxAllowed := 37500 * time.Millisecond
	if result > maxAllowed {
		t.Errorf("expected backoff <= %v, got %v", maxAllowed, result)
	}
}

func TestCalculateBackoff_HighAttemptDoesNotOverflow(t *testing.T) {
	result := CalculateBackoff(time.Millisecond, 100)

	maxAllowed := 37500 * time.Millisecond
	if result > maxAllowed {
		t.Errorf("expected backoff <= %v for high attempt, got %v", maxAllowed, result)
	}
	if result < 0 {
		t.Error("backoff should never be negative")
	}
}

func TestCalculateBackoff_NegativeAttemptReturnsZero(t *testing.T) {
	if result := CalculateBackoff(time.Second, -1); result != 0 {
		t.Errorf("expected 0 for negative attempt, got %v", result)
	}
}
