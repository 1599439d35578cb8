package store

import "fmt"

// Collection names a snapshot collection of the local store.
type Collection string

const (
	Courses       Collection = "courses"
	CourseTopics  Collection = "courseTopics"
	TopicContents Collection = "topicContent"
	Materials     Collection = "materials"
	Progress      Collection = "progress"
	Revisions     Collection = "revisions"
	UserData      Collection = "userData"
	Downloads     Collection = "downloads"
)

var collectionTables = map[Collection]string{
	Courses:       "courses",
	CourseTopics:  "course_topics",
	TopicContents: "topic_content",
	Materials:     "materials",
	Progress:      "progress",
	Revisions:     "revisions",
	UserData:      "user_data",
	Downloads:     "downloads",
}

// AllCollections lists every snapshot collection in schema order.
func AllCollections() []Collection {
	return []Collection{Courses, CourseTopics, TopicContents, Materials, Progress, Revisions, UserData, Downloads}
}

// table returns the SQL table of c. Table names are never taken from input
// directly, so building queries from them is safe.
func (c Collection) table() (string, error) {
	t, ok := collectionTables[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, string(c))
	}
	return t, nil
}
