package models

import (
	"encoding/json"
	"time"
)

// Course is the remote course entity as returned by GET /api/courses/{id}.
type Course struct {
	ID             string    `json:"_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Subject        string    `json:"subject,omitempty"`
	Difficulty     string    `json:"difficulty,omitempty"`
	IsPublished    bool      `json:"isPublished"`
	EstimatedHours float64   `json:"estimatedHours,omitempty"`
	CoverImage     string    `json:"coverImage,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitzero"`
	UpdatedAt      time.Time `json:"updatedAt,omitzero"`

	// OfflineAt is set locally when the course is written into the store.
	OfflineAt *time.Time `json:"_offlineAt,omitempty"`
}

// Topic is a single unit of a course.
type Topic struct {
	ID               string  `json:"_id"`
	Title            string  `json:"title"`
	Description      string  `json:"description,omitempty"`
	CourseID         string  `json:"course"`
	Order            int     `json:"order"`
	EstimatedMinutes int     `json:"estimatedMinutes,omitempty"`
	PointsReward     int     `json:"pointsReward,omitempty"`
	ContentType      string  `json:"contentType,omitempty"`
	DifficultyWeight float64 `json:"difficultyWeight,omitempty"`
	MaterialID       string  `json:"material,omitempty"`
	IsPublished      bool    `json:"isPublished"`
}

// CourseDetail is the response body of GET /api/courses/{id}.
type CourseDetail struct {
	Course Course  `json:"course"`
	Topics []Topic `json:"topics"`
}

// TopicContent is the snapshot of one topic body. Content is kept opaque:
// the engine never interprets it.
type TopicContent struct {
	TopicID   string          `json:"topicId"`
	CourseID  string          `json:"courseId"`
	Content   json.RawMessage `json:"content"`
	OfflineAt time.Time       `json:"_offlineAt"`
}

// CourseSnapshot is everything stored locally for one downloaded course.
type CourseSnapshot struct {
	Course   Course         `json:"course"`
	Topics   []Topic        `json:"topics"`
	Contents []TopicContent `json:"topicContents"`
}

// ContentFor returns the stored content of topicID and whether it exists.
func (s CourseSnapshot) ContentFor(topicID string) (TopicContent, bool) {
	for _, c := range s.Contents {
		if c.TopicID == topicID {
			return c, true
		}
	}
	return TopicContent{}, false
}
