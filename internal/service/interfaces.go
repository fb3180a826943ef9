package service

import (
	"context"

	"github.com/MKhiriev/go-api-dispatch/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns credentials and tokens. Its Authenticate method is the
// authenticator the dispatcher consults for protected endpoints.
type AuthService interface {
	RegisterUser(ctx context.Context, login, password string) (models.User, error)
	EnsureAdmin(ctx context.Context, login, password string) (models.User, error)
	Login(ctx context.Context, login, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	Authenticate(ctx context.Context, tokenString string) models.AuthResult
}

// UserService administers existing accounts.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	SetRole(ctx context.Context, login, role string) (models.User, error)
	SetDisabled(ctx context.Context, login string, disabled bool) (models.User, error)
}

// AppInfoService describes the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAppInfo(ctx context.Context) models.AppBuildInfo
}
