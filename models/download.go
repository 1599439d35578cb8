package models

import (
	"fmt"
	"time"
)

// DownloadType is the kind of entity recorded in the download registry.
type DownloadType string

const (
	DownloadCourse   DownloadType = "course"
	DownloadMaterial DownloadType = "material"
)

// DownloadID returns the registry key of an entity: "<type>_<id>".
func DownloadID(t DownloadType, entityID string) string {
	return fmt.Sprintf("%s_%s", t, entityID)
}

// DownloadEntry records that an entity and its children are available offline.
type DownloadEntry struct {
	ID           string       `json:"id"`
	Type         DownloadType `json:"type"`
	EntityID     string       `json:"entityId"`
	Title        string       `json:"title"`
	DownloadedAt time.Time    `json:"downloadedAt"`
	SizeBytes    int64        `json:"size"`
}

// DownloadResult describes a finished course download.
type DownloadResult struct {
	Entry         DownloadEntry
	TopicCount    int
	SkippedTopics []string
}

// StorageStats summarizes the download registry.
type StorageStats struct {
	TotalDownloads int     `json:"totalDownloads"`
	CourseCount    int     `json:"courseCount"`
	MaterialCount  int     `json:"materialCount"`
	TotalSizeBytes int64   `json:"totalSizeBytes"`
	TotalSizeMB    float64 `json:"totalSizeMB"`
	PendingSyncs   int     `json:"pendingSyncs"`
}
