package endpoints

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/service"
	"github.com/MKhiriev/go-api-dispatch/models"
)

type handlers struct {
	services *service.Services
	validate *validator.Validate

	logger *logger.Logger
}

// New returns the registry of every application endpoint backed by services.
func New(services *service.Services, logger *logger.Logger) models.Endpoints {
	h := &handlers{
		services: services,
		validate: newValidator(),
		logger:   logger,
	}

	endpoints := models.Endpoints{
		AppVersion:   models.NewEndpoint(h.version, http.MethodGet),
		AuthRegister: models.NewEndpoint(h.register, http.MethodPost),
		AuthLogin:    models.NewEndpoint(h.login, http.MethodPost),

		UsersMe: models.NewEndpoint(h.me, http.MethodGet,
			models.WithAuth()),
		UsersList: models.NewEndpoint(h.listUsers, http.MethodGet,
			models.WithAuth(), models.WithRoles(models.RoleAdmin)),
		UsersSetRole: models.NewEndpoint(h.setRole, http.MethodPost,
			models.WithAuth(), models.WithRoles(models.RoleAdmin)),
		UsersDisable: models.NewEndpoint(h.disable, http.MethodPost,
			models.WithAuth(), models.WithRoles(models.RoleAdmin)),
		UsersDelete: models.NewEndpoint(nil, http.MethodPost,
			models.WithAuth(), models.WithRoles(models.RoleAdmin)),
	}

	logger.Info().Int("count", len(endpoints)).Msg("endpoints registered")
	return endpoints
}
