package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobPosted            EventType = "job_posted"
	EventJobRemoved           EventType = "job_removed"
	EventApplicationSubmitted EventType = "application_submitted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// JobPostedPayload payload.
type JobPostedPayload struct {
	JobID         int    `json:"job_id"`
	Title         string `json:"title"`
	CompanyHandle string `json:"company_handle"`
}

// JobRemovedPayload payload.
type JobRemovedPayload struct {
	JobID int `json:"job_id"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	Username string `json:"username"`
	JobID    int    `json:"job_id"`
}
