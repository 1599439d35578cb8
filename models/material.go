package models

import "time"

// Material is a standalone study material (pdf, text or notes).
type Material struct {
	ID               string    `json:"_id"`
	Title            string    `json:"title"`
	Subject          string    `json:"subject,omitempty"`
	Topic            string    `json:"topic,omitempty"`
	Description      string    `json:"description,omitempty"`
	Type             string    `json:"type,omitempty"`
	Content          string    `json:"content,omitempty"`
	OriginalFilename string    `json:"originalFilename,omitempty"`
	CreatedAt        time.Time `json:"createdAt,omitzero"`

	OfflineAt *time.Time `json:"_offlineAt,omitempty"`
}

// Revision is a scheduled review task of a student on a topic.
type Revision struct {
	ID           string    `json:"_id"`
	TopicID      string    `json:"topic"`
	CourseID     string    `json:"course"`
	ScheduledFor time.Time `json:"scheduledFor"`
	Priority     string    `json:"priority,omitempty"`
	Type         string    `json:"type,omitempty"`
	Status       string    `json:"status,omitempty"`
}
