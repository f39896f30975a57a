package models

import "time"

// ============================================================================
// Domain models (database entities)
// ============================================================================
//
// All surrogate ids are int64 and cross the JSON boundary as decimal strings
// (`json:",string"`): identifiers wider than 53 bits of precision cannot be
// represented exactly as JSON numbers by the front end.

// Employee represents a registered worker. Matricola is the natural primary
// key used throughout the API; employees are never hard-deleted.
//
// Database table: employees
// Security note: PasswordHash must never appear in API responses or logs.
type Employee struct {
	Matricola    string    `db:"matricola" json:"matricola"`
	Name         string    `db:"name" json:"name"`
	Role         Role      `db:"role" json:"role"`
	CompanyCode  string    `db:"company_code" json:"companyCode"`
	HireDate     time.Time `db:"hire_date" json:"hireDate"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Company represents an employer organization. Immutable after registration.
//
// Database table: companies
type Company struct {
	CompanyCode string    `db:"company_code" json:"companyCode"`
	LegalName   string    `db:"legal_name" json:"legalName"`
	VATNumber   string    `db:"vat_number" json:"vatNumber"`
	Address     string    `db:"address" json:"address"`
	Contact     string    `db:"contact" json:"contact"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// TrainingTopic ("formazione") is a named training subject containing
// ordered video courses and quizzes. Topics are authored out of band and are
// read-only to this application.
//
// Database table: training_topics
type TrainingTopic struct {
	ID          int64  `db:"id" json:"id,string"`
	Name        string `db:"name" json:"name"`
	CourseCount int    `db:"course_count" json:"courseCount"`
	CompanyCode string `db:"company_code" json:"companyCode"`
}

// VideoCourse is a video lesson belonging to a training topic.
//
// Database table: video_courses
type VideoCourse struct {
	ID              int64  `db:"id" json:"id,string"`
	TopicID         int64  `db:"topic_id" json:"topicId,string"`
	Name            string `db:"name" json:"name"`
	DurationMinutes int    `db:"duration_minutes" json:"durationMinutes"`
	Position        int    `db:"position" json:"position"`
}

// Quiz is an ordered set of true/false questions attached to a training
// topic. Immutable within this application.
//
// Database table: quizzes
type Quiz struct {
	ID              int64  `db:"id" json:"id,string"`
	TopicID         int64  `db:"topic_id" json:"topicId,string"`
	Name            string `db:"name" json:"name"`
	DurationMinutes int    `db:"duration_minutes" json:"durationMinutes"`
	Position        int    `db:"position" json:"position"`
}

// Question is a single true/false quiz question. The correct answer never
// leaves the server.
//
// Database table: questions
type Question struct {
	ID            int64  `db:"id" json:"id,string"`
	QuizID        int64  `db:"quiz_id" json:"quizId,string"`
	Text          string `db:"text" json:"text"`
	CorrectAnswer bool   `db:"correct_answer" json:"-"`
	Position      int    `db:"position" json:"position"`
}

// TrainingAssignment ("gestione formazione") tracks one employee's progress
// against a training topic, optionally keyed by the quiz attempt that
// produced it. Rows are created on assignment or on a passed quiz and are
// never deleted; completion must not be silently downgraded.
//
// Database table: training_assignments
type TrainingAssignment struct {
	ID        int64     `db:"id" json:"id,string"`
	TopicID   int64     `db:"topic_id" json:"topicId,string"`
	Matricola string    `db:"matricola" json:"matricola"`
	QuizID    *int64    `db:"quiz_id" json:"quizId,string,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// IncidentReport ("segnalazione") is an employee-filed safety or maintenance
// incident. ReporterMatricola holds the AnonymousReporter sentinel when the
// report was filed anonymously. Status is mutated only by maintainers and is
// always one of the four enumerated values; reports are never deleted.
//
// Database table: incident_reports
type IncidentReport struct {
	ID                int64     `db:"id" json:"id,string"`
	Title             string    `db:"title" json:"title"`
	Description       string    `db:"description" json:"description"`
	ResourceID        *int64    `db:"resource_id" json:"resourceId,string,omitempty"`
	ReporterMatricola string    `db:"reporter_matricola" json:"reporterMatricola"`
	CompanyCode       string    `db:"company_code" json:"companyCode"`
	Status            string    `db:"status" json:"status"`
	Priority          string    `db:"priority" json:"priority"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}

// Resource ("risorsa") is a piece of equipment tracked for maintenance.
// Created by safety officers; status mutated by maintainers.
//
// Database table: resources
type Resource struct {
	ID          int64     `db:"id" json:"id,string"`
	Name        string    `db:"name" json:"name"`
	Type        string    `db:"type" json:"type"`
	Description string    `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	CompanyCode string    `db:"company_code" json:"companyCode"`
	CreatedBy   string    `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Announcement ("avviso") is a company-scoped notice authored by a
// supervisor.
//
// Database table: announcements
type Announcement struct {
	ID              int64     `db:"id" json:"id,string"`
	CompanyCode     string    `db:"company_code" json:"companyCode"`
	AuthorMatricola string    `db:"author_matricola" json:"authorMatricola"`
	Title           string    `db:"title" json:"title"`
	Body            string    `db:"body" json:"body"`
	Pinned          bool      `db:"pinned" json:"pinned"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// Attachment is an opaque document attached to an incident report or a
// resource. Content is stored as-is; no file-format handling happens here.
//
// Database table: attachments
type Attachment struct {
	ID          string    `db:"id" json:"id"` // uuid
	IncidentID  *int64    `db:"incident_id" json:"incidentId,string,omitempty"`
	ResourceID  *int64    `db:"resource_id" json:"resourceId,string,omitempty"`
	Filename    string    `db:"filename" json:"filename"`
	ContentType string    `db:"content_type" json:"contentType"`
	Content     []byte    `db:"content" json:"-"`
	UploadedBy  string    `db:"uploaded_by" json:"uploadedBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// AuditLog is an audit trail entry for significant mutations: status
// changes, role changes, registrations.
//
// Database table: audit_log
type AuditLog struct {
	ID             int64     `json:"id,string"`
	ActorMatricola *string   `json:"actorMatricola,omitempty"`
	Action         string    `json:"action"`
	ObjectType     string    `json:"objectType"`
	ObjectID       *string   `json:"objectId,omitempty"`
	IPAddress      string    `json:"ipAddress"`
	UserAgent      string    `json:"userAgent"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ============================================================================
// View models (API responses)
// ============================================================================

// ProgressSummary aggregates one employee's training assignments by status
// bucket. Percent is always an integer in [0,100] and 0 when TotalCourses is
// 0. JSON field names follow the established client contract.
type ProgressSummary struct {
	TotalCourses int `json:"totaleCorsi"`
	Completed    int `json:"completati"`
	InProgress   int `json:"inCorso"`
	NotStarted   int `json:"nonIniziati"`
	Percent      int `json:"percentuale"`
}

// AssignmentView is a training assignment joined with its parent topic and
// the topic's course material, shaped for display.
type AssignmentView struct {
	TrainingAssignment
	Topic   TrainingTopic `json:"topic"`
	Videos  []VideoCourse `json:"videos"`
	Quizzes []Quiz        `json:"quizzes"`
}

// QuizResult is the outcome of grading one quiz submission.
type QuizResult struct {
	Passed         bool `json:"passed"`
	TotalQuestions int  `json:"totalQuestions"`
}

// IncidentStatusView is the minimal response contract for an incident
// status update.
type IncidentStatusView struct {
	ID     int64  `json:"id,string"`
	Status string `json:"status"`
}

// ============================================================================
// Request DTOs
// ============================================================================

// RegisterCompanyRequest registers a new company together with its first
// employer account.
type RegisterCompanyRequest struct {
	CompanyCode string `json:"companyCode"`
	LegalName   string `json:"legalName"`
	VATNumber   string `json:"vatNumber"`
	Address     string `json:"address"`
	Contact     string `json:"contact"`

	EmployerMatricola string `json:"employerMatricola"`
	EmployerName      string `json:"employerName"`
	EmployerPassword  string `json:"employerPassword"`
}

// RegisterEmployeeRequest registers an employee under an existing company.
// Role is optional and defaults to Dipendente.
type RegisterEmployeeRequest struct {
	Matricola   string `json:"matricola"`
	Name        string `json:"name"`
	CompanyCode string `json:"companyCode"`
	Password    string `json:"password"`
	Role        string `json:"role,omitempty"`
	HireDate    string `json:"hireDate,omitempty"` // YYYY-MM-DD
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Matricola string `json:"matricola"`
	Password  string `json:"password"`
}

// QuizSubmission carries one employee's answers to a quiz, keyed by question
// id (decimal string, per the identifier contract). TopicID is optional:
// when present and the quiz is passed, a training assignment row is
// recorded.
type QuizSubmission struct {
	TopicID *int64          `json:"topicId,string,omitempty"`
	Answers map[string]bool `json:"answers"`
}

// CreateIncidentRequest files a new incident report. When Anonymous is true
// the reporter's matricola is replaced by the anonymity sentinel before
// persistence.
type CreateIncidentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ResourceID  *int64 `json:"resourceId,string,omitempty"`
	Priority    string `json:"priority"`
	Anonymous   bool   `json:"anonymous"`
}

// UpdateStatusRequest carries a raw status value for the status-mutation
// endpoints (training assignments, incidents, resources).
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CreateResourceRequest registers a piece of equipment.
type CreateResourceRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// CreateAnnouncementRequest publishes a company-scoped announcement.
type CreateAnnouncementRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}
