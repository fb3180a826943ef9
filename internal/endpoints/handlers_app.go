package endpoints

import (
	"context"

	"github.com/MKhiriev/go-api-dispatch/models"
)

func (h *handlers) version(ctx context.Context, _ models.Payload) (*models.Response, error) {
	info := h.services.AppInfoService.GetAppInfo(ctx)

	return models.Success.WithData(map[string]any{
		"version": info.BuildVersion,
		"build":   info,
	})
}
