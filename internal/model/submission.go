package model

import "time"

// SessionStatus tracks a respondent session's lifecycle
type SessionStatus string

const (
	SessionOpen      SessionStatus = "open"
	SessionSubmitted SessionStatus = "submitted"
)

// Session is one respondent's pass through a form. Lives in Redis for the
// duration of the session; one submission per session.
type Session struct {
	ID        string        `json:"id"`
	FormID    string        `json:"formId"`
	Status    SessionStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Submission is a finalized answer set delivered to the sink
type Submission struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	FormID      string    `json:"formId" bson:"formId"`
	SessionID   string    `json:"sessionId" bson:"sessionId"`
	Total       int       `json:"total" bson:"total"`
	Fields      AnswerSet `json:"fields" bson:"fields"`
	SubmittedAt time.Time `json:"submittedAt" bson:"submittedAt"`
}
