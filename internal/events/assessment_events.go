package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the domain events emitted by the service
type EventType string

const (
	EventAssessmentCompleted EventType = "assessment.completed"
	EventAssessmentReset     EventType = "assessment.reset"
	EventRespondentDeleted   EventType = "respondent.deleted"
)

const (
	eventSource  = "career-assessment-service"
	eventVersion = "1.0"
)

// Event is the envelope shared by all published events
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type AssessmentCompletedEvent struct {
	ResultID       string    `json:"result_id"`
	RespondentID   string    `json:"respondent_id"`
	RollNumber     string    `json:"roll_number"`
	Test           string    `json:"test"`
	Mode           string    `json:"mode"`
	PrimaryCareer  string    `json:"primary_career,omitempty"`
	TopThree       []string  `json:"top_three,omitempty"`
	Score          *int      `json:"score,omitempty"`
	Interpretation string    `json:"interpretation,omitempty"`
	Correct        *int      `json:"correct,omitempty"`
	Total          int       `json:"total,omitempty"`
	CompletedAt    time.Time `json:"completed_at"`
}

type AssessmentResetEvent struct {
	RespondentID     string    `json:"respondent_id"`
	RollNumber       string    `json:"roll_number"`
	Test             *string   `json:"test,omitempty"`
	RemainingResults int64     `json:"remaining_results"`
	ResetBy          string    `json:"reset_by"`
	ResetAt          time.Time `json:"reset_at"`
}

type RespondentDeletedEvent struct {
	RespondentID string    `json:"respondent_id"`
	RollNumber   string    `json:"roll_number"`
	DeletedBy    string    `json:"deleted_by"`
	DeletedAt    time.Time `json:"deleted_at"`
}

func newEvent(t EventType, data interface{}) *Event {
	return &Event{
		ID:        GenerateEventID(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewAssessmentCompletedEvent(data AssessmentCompletedEvent) *Event {
	return newEvent(EventAssessmentCompleted, data)
}

func NewAssessmentResetEvent(data AssessmentResetEvent) *Event {
	return newEvent(EventAssessmentReset, data)
}

func NewRespondentDeletedEvent(data RespondentDeletedEvent) *Event {
	return newEvent(EventRespondentDeleted, data)
}

// GenerateEventID returns a random UUID for an event envelope
func GenerateEventID() string {
	return uuid.NewString()
}
