package store

import (
	"context"

	"github.com/MKhiriev/go-api-dispatch/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists the accounts the authenticator and the user
// endpoints work with.
type UserRepository interface {
	// CreateUser inserts user and returns it with the server-assigned
	// UserID and CreatedAt. Returns [ErrLoginAlreadyExists] on a duplicate login.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByLogin returns [ErrNoUserWasFound] when no user has login.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	// FindUserByID returns [ErrNoUserWasFound] when no user has userID.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// ListUsers returns every user ordered by UserID.
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, login, role string) (models.User, error)
	SetDisabled(ctx context.Context, login string, disabled bool) (models.User, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// another attempt.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
