// Package security: structured JSON logging for application and security
// events. Every entry is a single JSON object so log aggregation can ingest
// the stream without a parser.
package security

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

// LogLevel classifies a log entry.
type LogLevel string

const (
	LogLevelInfo     LogLevel = "INFO"
	LogLevelWarning  LogLevel = "WARNING"
	LogLevelError    LogLevel = "ERROR"
	LogLevelCritical LogLevel = "CRITICAL"
	LogLevelSecurity LogLevel = "SECURITY"
)

// SecurityEventType names a monitored security-relevant action.
type SecurityEventType string

const (
	EventLoginSuccess         SecurityEventType = "LOGIN_SUCCESS"
	EventLoginFailure         SecurityEventType = "LOGIN_FAILURE"
	EventAccountLocked        SecurityEventType = "ACCOUNT_LOCKED"
	EventRateLimitExceeded    SecurityEventType = "RATE_LIMIT_EXCEEDED"
	EventUnauthorizedAccess   SecurityEventType = "UNAUTHORIZED_ACCESS"
	EventSQLInjectionAttempt  SecurityEventType = "SQL_INJECTION_ATTEMPT"
	EventXSSAttempt           SecurityEventType = "XSS_ATTEMPT"
	EventRegistration         SecurityEventType = "REGISTRATION"
	EventRoleChange           SecurityEventType = "ROLE_CHANGE"
	EventAssignmentComplete   SecurityEventType = "ASSIGNMENT_COMPLETE"
	EventQuizPassed           SecurityEventType = "QUIZ_PASSED"
	EventIncidentSubmit       SecurityEventType = "INCIDENT_SUBMIT"
	EventIncidentStatusChange SecurityEventType = "INCIDENT_STATUS_CHANGE"
	EventResourceStatusChange SecurityEventType = "RESOURCE_STATUS_CHANGE"
)

// LogEntry is the JSON shape of every log line.
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     LogLevel               `json:"level"`
	Message   string                 `json:"message"`
	Error     string                 `json:"error,omitempty"`
	EventType SecurityEventType      `json:"event_type,omitempty"`
	Actor     *string                `json:"actor,omitempty"` // matricola
	IPAddress string                 `json:"ip_address,omitempty"`
	UserAgent string                 `json:"user_agent,omitempty"`
	Method    string                 `json:"method,omitempty"`
	Path      string                 `json:"path,omitempty"`
	Status    int                    `json:"status,omitempty"`
	LatencyMS int64                  `json:"latency_ms,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

// Logger writes structured JSON log entries to a single output.
type Logger struct {
	output *log.Logger
	mu     sync.Mutex
}

// NewLogger creates a logger writing to stdout.
func NewLogger() *Logger {
	return &Logger{
		output: log.New(os.Stdout, "", 0),
	}
}

func (l *Logger) write(entry LogEntry) {
	entry.Timestamp = time.Now().UTC()

	data, err := json.Marshal(entry)
	if err != nil {
		// Marshaling a LogEntry can only fail on a non-serializable Extra
		// value; degrade to plain text rather than dropping the entry.
		l.mu.Lock()
		l.output.Printf("%s %s (log marshal failed: %v)", entry.Level, entry.Message, err)
		l.mu.Unlock()
		return
	}

	l.mu.Lock()
	l.output.Println(string(data))
	l.mu.Unlock()
}

// Info logs an informational message.
func (l *Logger) Info(message string) {
	l.write(LogEntry{Level: LogLevelInfo, Message: message})
}

// Warn logs a warning.
func (l *Logger) Warn(message string) {
	l.write(LogEntry{Level: LogLevelWarning, Message: message})
}

// Error logs an error with its cause (nil err is allowed).
func (l *Logger) Error(message string, err error) {
	entry := LogEntry{Level: LogLevelError, Message: message}
	if err != nil {
		entry.Error = err.Error()
	}
	l.write(entry)
}

// Critical logs a critical failure with its cause (nil err is allowed).
func (l *Logger) Critical(message string, err error) {
	entry := LogEntry{Level: LogLevelCritical, Message: message}
	if err != nil {
		entry.Error = err.Error()
	}
	l.write(entry)
}

// SecurityEvent logs a security-relevant action with actor context. The
// actor is the matricola of the authenticated caller, nil for anonymous or
// pre-auth events.
func (l *Logger) SecurityEvent(eventType SecurityEventType, actor *string, ipAddress, userAgent string, extra map[string]interface{}) {
	l.write(LogEntry{
		Level:     LogLevelSecurity,
		Message:   fmt.Sprintf("security event: %s", eventType),
		EventType: eventType,
		Actor:     actor,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Extra:     extra,
	})
}

// HTTPRequest logs one completed HTTP request.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMS int64, ipAddress, userAgent string) {
	l.write(LogEntry{
		Level:     LogLevelInfo,
		Message:   fmt.Sprintf("%s %s %d %dms", method, path, status, latencyMS),
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMS: latencyMS,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	})
}

// Alerter delivers high-priority security alerts out of band (email, Slack,
// SIEM). Implementations must be safe for concurrent use.
type Alerter interface {
	SendAlert(ctx context.Context, severity, title, message string) error
}

// SecurityMonitor watches aggregate security signals and raises alerts when
// thresholds are crossed. Counters reset on a fixed interval.
type SecurityMonitor struct {
	logger  *Logger
	config  *SecurityConfig
	alerter Alerter

	mu           sync.Mutex
	failedLogins map[string]int // per-IP failed login count
	lastReset    time.Time
}

// NewSecurityMonitor creates a monitor. Alerter may be nil, in which case
// threshold crossings are logged but not delivered.
func NewSecurityMonitor(logger *Logger, config *SecurityConfig, alerter Alerter) *SecurityMonitor {
	return &SecurityMonitor{
		logger:       logger,
		config:       config,
		alerter:      alerter,
		failedLogins: make(map[string]int),
		lastReset:    time.Now(),
	}
}

// MonitorLoginFailure records a failed login from ipAddress and alerts once
// the configured threshold is reached.
func (m *SecurityMonitor) MonitorLoginFailure(ipAddress string) {
	m.mu.Lock()
	m.failedLogins[ipAddress]++
	count := m.failedLogins[ipAddress]
	m.mu.Unlock()

	if count == m.config.AlertThresholdFailures {
		m.alert("HIGH", "Repeated login failures",
			fmt.Sprintf("%d failed login attempts from %s", count, ipAddress))
	}
}

// MonitorLargeExport records a data export and alerts when the row count
// meets the configured threshold.
func (m *SecurityMonitor) MonitorLargeExport(actor string, rows int, details map[string]string) {
	if rows < m.config.AlertThresholdExport {
		return
	}
	m.alert("MEDIUM", "Large data export",
		fmt.Sprintf("%s exported %d rows (%v)", actor, rows, details))
}

// ResetCounters clears per-IP counters once an hour has passed since the
// last reset. Called opportunistically from the request path.
func (m *SecurityMonitor) ResetCounters() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if time.Since(m.lastReset) < time.Hour {
		return
	}
	m.failedLogins = make(map[string]int)
	m.lastReset = time.Now()
}

func (m *SecurityMonitor) alert(severity, title, message string) {
	m.logger.write(LogEntry{
		Level:   LogLevelSecurity,
		Message: fmt.Sprintf("ALERT [%s] %s: %s", severity, title, message),
	})

	if m.alerter != nil {
		if err := m.alerter.SendAlert(context.Background(), severity, title, message); err != nil {
			m.logger.Error("failed to deliver security alert", err)
		}
	}
}
