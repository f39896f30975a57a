package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsWithinBudget(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"), "fourth request exceeds the budget")
}

func TestRateLimiterIsolatesIdentifiers(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "a different identifier has its own bucket")
}

func TestRateLimiterRefills(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	time.Sleep(25 * time.Millisecond)
	assert.True(t, rl.Allow("10.0.0.1"), "tokens refill over time")
}

func TestRateLimiterReset(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	rl.Reset("10.0.0.1")
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestAccountLockoutThreshold(t *testing.T) {
	al := NewAccountLockout(3, time.Minute)

	assert.False(t, al.RecordFailedAttempt("EMP001"))
	assert.False(t, al.RecordFailedAttempt("EMP001"))
	assert.False(t, al.IsLocked("EMP001"))

	assert.True(t, al.RecordFailedAttempt("EMP001"), "third failure locks the account")
	assert.True(t, al.IsLocked("EMP001"))
	assert.Greater(t, al.LockoutTimeRemaining("EMP001"), time.Duration(0))
}

func TestAccountLockoutExpires(t *testing.T) {
	al := NewAccountLockout(1, 20*time.Millisecond)

	assert.True(t, al.RecordFailedAttempt("EMP001"))
	assert.True(t, al.IsLocked("EMP001"))

	time.Sleep(30 * time.Millisecond)
	assert.False(t, al.IsLocked("EMP001"), "lockout expires after its duration")
	assert.Equal(t, time.Duration(0), al.LockoutTimeRemaining("EMP001"))
}

func TestAccountLockoutResetOnSuccess(t *testing.T) {
	al := NewAccountLockout(2, time.Minute)

	al.RecordFailedAttempt("EMP001")
	al.ResetAttempts("EMP001")

	assert.False(t, al.RecordFailedAttempt("EMP001"), "counter restarts after a reset")
	assert.False(t, al.IsLocked("EMP001"))
}

func TestAccountLockoutIsolatesAccounts(t *testing.T) {
	al := NewAccountLockout(1, time.Minute)

	assert.True(t, al.RecordFailedAttempt("EMP001"))
	assert.False(t, al.IsLocked("EMP002"))
}
