package service

import (
	"github.com/MKhiriev/edu-offline/internal/adapter"
	"github.com/MKhiriev/edu-offline/internal/config"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/internal/store"
	"github.com/MKhiriev/edu-offline/internal/validators"
)

type ClientServices struct {
	Downloads DownloadManager
	Courses   CourseService
	Progress  ProgressService
	Sync      SyncOrchestrator
	SyncJob   ClientSyncJob
}

// NewClientServices wires the services over one offline storage. Progress
// writes and the sync drain share a write gate.
func NewClientServices(storages *store.ClientStorages, api adapter.RemoteAPI, conn Connectivity, validator validators.Validator, cfg config.ClientWorkers, logger *logger.Logger) *ClientServices {
	gate := &writeGate{}
	orchestrator := newSyncOrchestrator(api, storages.Offline, validator, gate, logger)

	return &ClientServices{
		Downloads: NewDownloadManager(api, storages.Offline, validator, logger),
		Courses:   NewCourseService(api, storages.Offline, conn, validator, logger),
		Progress:  newProgressService(api, storages.Offline, conn, validator, gate, orchestrator, logger),
		Sync:      orchestrator,
		SyncJob:   NewClientSyncJob(orchestrator, conn, cfg.SyncInterval, logger),
	}
}
