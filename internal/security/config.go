// Package security provides centralized security configuration, structured
// logging, rate limiting, and input validation for WorkSafe.
package security

import (
	"time"
)

// SecurityConfig holds all security-related tunables.
type SecurityConfig struct {
	// Password storage
	BcryptCost int // cost factor for bcrypt hashing

	// Brute force protection
	LoginRateLimit          int           // max login attempts per minute per IP
	AccountLockoutThreshold int           // failed attempts before account lockout
	AccountLockoutDuration  time.Duration // how long an account stays locked

	// Input validation limits
	MaxTitleLength       int // max characters in incident/announcement titles
	MaxDescriptionLength int // max characters in free-text descriptions
	MaxAttachmentSize    int // max bytes per uploaded attachment
	QueryTimeout         time.Duration

	// Endpoint rate limits (requests per window, windows noted per field)
	RateLimitLogin    int // login attempts per minute per IP
	RateLimitIncident int // incident submissions per minute per user
	RateLimitQuiz     int // quiz submissions per minute per user

	// Security monitoring
	AlertThresholdFailures int // failed logins per IP before alerting
	AlertThresholdExport   int // exported rows before alerting
}

// DefaultSecurityConfig returns the recommended defaults.
func DefaultSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		BcryptCost: 12,

		LoginRateLimit:          5,
		AccountLockoutThreshold: 10,
		AccountLockoutDuration:  30 * time.Minute,

		MaxTitleLength:       200,
		MaxDescriptionLength: 10000,
		MaxAttachmentSize:    10 * 1024 * 1024, // 10MB
		QueryTimeout:         30 * time.Second,

		RateLimitLogin:    5,  // per minute
		RateLimitIncident: 10, // per minute
		RateLimitQuiz:     20, // per minute

		AlertThresholdFailures: 10,
		AlertThresholdExport:   10000,
	}
}
