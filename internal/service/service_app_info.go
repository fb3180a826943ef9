package service

import (
	"context"

	"github.com/MKhiriev/go-api-dispatch/internal/config"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/models"
)

type appInfoService struct {
	info models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService reports the configured version, falling back to the
// version baked into the binary when APP_VERSION is unset or "N/A".
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	info := build
	if cfg.Version != "" && cfg.Version != "N/A" {
		info.BuildVersion = cfg.Version
	}

	if info.BuildVersion == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().Str("version", info.BuildVersion).Msg("app info service created")
	return &appInfoService{
		info:   info,
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.info.BuildVersion
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.AppBuildInfo {
	return s.info
}
