package models

import "strings"

// ============================================================================
// Training assignment status
// ============================================================================

// Training assignment statuses in their canonical stored form.
const (
	TrainingNotStarted = "Non Iniziato"
	TrainingInProgress = "In Corso"
	TrainingPassed     = "Superato"
	TrainingCompleted  = "Completato"
)

// ProgressBucket is the classification of a stored assignment status for
// progress aggregation.
type ProgressBucket int

const (
	BucketNotStarted ProgressBucket = iota
	BucketInProgress
	BucketCompleted
)

// ClassifyTrainingStatus buckets a raw stored status for aggregation.
// Classification is normalization-based so that legacy rows written with
// inconsistent casing or spacing still count: the value is trimmed and
// lower-cased, "completato" lands in the completed bucket, "in corso" and
// "incorso" land in the in-progress bucket, and everything else (empty and
// unrecognized values included) counts as not started.
func ClassifyTrainingStatus(raw string) ProgressBucket {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "completato":
		return BucketCompleted
	case "in corso", "incorso":
		return BucketInProgress
	default:
		return BucketNotStarted
	}
}

// trainingStatusForms maps normalized input spellings to canonical statuses.
var trainingStatusForms = map[string]string{
	"non iniziato": TrainingNotStarted,
	"noniniziato":  TrainingNotStarted,
	"in corso":     TrainingInProgress,
	"incorso":      TrainingInProgress,
	"superato":     TrainingPassed,
	"completato":   TrainingCompleted,
}

// ParseTrainingStatus canonicalizes a caller-supplied assignment status.
// Returns false when the value is outside the closed set. Every status
// mutation path validates through here; free-text statuses are never
// persisted.
func ParseTrainingStatus(raw string) (string, bool) {
	s, ok := trainingStatusForms[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}

// ============================================================================
// Incident report status and priority
// ============================================================================

// Incident report statuses in their canonical stored form. The four values
// label a workflow (open, in progress, resolved, closed) but no transition
// ordering is enforced: any value may be set from any other, subject only to
// set membership.
const (
	IncidentOpen       = "APERTA"
	IncidentInProgress = "IN_CORSO"
	IncidentResolved   = "RISOLTA"
	IncidentClosed     = "CHIUSA"
)

var validIncidentStatus = map[string]struct{}{
	IncidentOpen:       {},
	IncidentInProgress: {},
	IncidentResolved:   {},
	IncidentClosed:     {},
}

// NormalizeIncidentStatus trims and upper-cases a raw status and checks set
// membership. Returns false for values outside the enumerated set.
func NormalizeIncidentStatus(raw string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	_, ok := validIncidentStatus[s]
	return s, ok
}

// Incident report priorities.
const (
	PriorityHigh   = "ALTA"
	PriorityMedium = "MEDIA"
	PriorityLow    = "BASSA"
)

var validIncidentPriority = map[string]struct{}{
	PriorityHigh:   {},
	PriorityMedium: {},
	PriorityLow:    {},
}

// NormalizeIncidentPriority trims and upper-cases a raw priority and checks
// set membership.
func NormalizeIncidentPriority(raw string) (string, bool) {
	p := strings.ToUpper(strings.TrimSpace(raw))
	_, ok := validIncidentPriority[p]
	return p, ok
}

// AnonymousReporter is the sentinel stored in place of a matricola when an
// incident is filed anonymously. It never references an employee row.
const AnonymousReporter = "Anonymous"

// ============================================================================
// Resource status
// ============================================================================

// Resource statuses in their canonical stored form.
const (
	ResourceAvailable      = "Disponibile"
	ResourceInMaintenance  = "In Manutenzione"
	ResourceFaulty         = "Guasta"
	ResourceDecommissioned = "Dismessa"
)

var resourceStatusForms = map[string]string{
	"disponibile":     ResourceAvailable,
	"in manutenzione": ResourceInMaintenance,
	"inmanutenzione":  ResourceInMaintenance,
	"guasta":          ResourceFaulty,
	"dismessa":        ResourceDecommissioned,
}

// ParseResourceStatus canonicalizes a caller-supplied resource status.
// Returns false when the value is outside the closed set.
func ParseResourceStatus(raw string) (string, bool) {
	s, ok := resourceStatusForms[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}
