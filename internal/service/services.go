package service

import (
	"github.com/MKhiriev/fishtrack/internal/config"
	"github.com/MKhiriev/fishtrack/internal/logger"
	"github.com/MKhiriev/fishtrack/internal/store"
)

// Services bundles every application service behind its interface so the
// transport layer depends on behavior, not concrete types.
type Services struct {
	AuthService    AuthService
	SyncService    SyncService
	PhotoService   PhotoService
	AppInfoService AppInfoService
}

// NewServices wires all services to the given storages and configuration.
func NewServices(storages store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		SyncService:    NewSyncService(storages.SyncRepository, NewAllowAllPolicy(), RealClock{}, logger),
		PhotoService:   NewPhotoService(storages.PhotoFileStorage, logger),
		AppInfoService: appInfoService,
	}, nil
}
