package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/store"
	"github.com/MKhiriev/go-api-dispatch/models"
)

var knownRoles = map[string]struct{}{
	models.RoleUser:  {},
	models.RoleAdmin: {},
}

type userService struct {
	userRepository store.UserRepository

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	return users, nil
}

// SetRole returns ErrUnknownRole for anything but "user" and "admin".
func (s *userService) SetRole(ctx context.Context, login, role string) (models.User, error) {
	log := logger.FromContext(ctx)

	if login == "" {
		return models.User{}, ErrInvalidDataProvided
	}
	if _, ok := knownRoles[role]; !ok {
		log.Debug().Str("role", role).Msg("unknown role requested")
		return models.User{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	user, err := s.userRepository.UpdateRole(ctx, login, role)
	if err != nil {
		log.Err(err).Str("login", login).Msg("updating role failed")
		return models.User{}, fmt.Errorf("updating role failed: %w", err)
	}

	log.Info().Str("login", login).Str("role", role).Msg("role changed")
	return user, nil
}

func (s *userService) SetDisabled(ctx context.Context, login string, disabled bool) (models.User, error) {
	log := logger.FromContext(ctx)

	if login == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.SetDisabled(ctx, login, disabled)
	if err != nil {
		log.Err(err).Str("login", login).Msg("updating disabled flag failed")
		return models.User{}, fmt.Errorf("updating disabled flag failed: %w", err)
	}

	log.Info().Str("login", login).Bool("disabled", disabled).Msg("user status changed")
	return user, nil
}
