package moderation

import (
	"time"

	"gorm.io/datatypes"
)

// ContentType classifies the submitted payload.
type ContentType string

const (
	ContentTypeText  ContentType = "TEXT"
	ContentTypeImage ContentType = "IMAGE"
)

// RequestStatus tracks a request through its lifecycle:
// PENDING -> PROCESSING -> {COMPLETED, FAILED}.
//
// Submission and scoring are coupled, so requests are created directly in
// PROCESSING; PENDING stays in the enum for a future asynchronous intake
// queue but is unreachable under the current submit flow.
type RequestStatus string

const (
	StatusPending    RequestStatus = "PENDING"
	StatusProcessing RequestStatus = "PROCESSING"
	StatusCompleted  RequestStatus = "COMPLETED"
	StatusFailed     RequestStatus = "FAILED"
)

// Decision is the outcome of moderating a piece of content.
type Decision string

const (
	DecisionApproved    Decision = "APPROVED"
	DecisionRejected    Decision = "REJECTED"
	DecisionHumanReview Decision = "HUMAN_REVIEW"
)

// Valid reports whether the decision is one of the known outcomes.
func (d Decision) Valid() bool {
	switch d {
	case DecisionApproved, DecisionRejected, DecisionHumanReview:
		return true
	default:
		return false
	}
}

// MaxContentLength bounds submitted text.
const MaxContentLength = 10_000

// Request is a single moderation submission owned by a client service.
type Request struct {
	ID          string        `gorm:"column:request_id;primaryKey"`
	ServiceID   string        `gorm:"column:service_id;not null;index"`
	Timestamp   time.Time     `gorm:"column:timestamp;index"`
	ContentType ContentType   `gorm:"column:content_type;default:'TEXT'"`
	ContentText string        `gorm:"column:content_text;not null"`
	Status      RequestStatus `gorm:"column:status;not null"`
}

// TableName sets the table name for the Request model.
func (Request) TableName() string { return "moderation_requests" }

// Result is the decision produced for a request. At most one result ever
// exists per request, enforced by the unique index on request_id.
type Result struct {
	ID              string            `gorm:"column:result_id;primaryKey"`
	RequestID       string            `gorm:"column:request_id;uniqueIndex;not null"`
	Decision        Decision          `gorm:"column:decision;not null"`
	ConfidenceScore float64           `gorm:"column:confidence_score;not null"`
	ModelVersion    string            `gorm:"column:model_version"`
	LabelScores     datatypes.JSONMap `gorm:"column:label_scores"`
	ProcessedAt     time.Time         `gorm:"column:processed_at"`
}

// TableName sets the table name for the Result model.
func (Result) TableName() string { return "moderation_results" }
