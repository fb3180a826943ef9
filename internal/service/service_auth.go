package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-api-dispatch/internal/config"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/store"
	"github.com/MKhiriev/go-api-dispatch/internal/utils"
	"github.com/MKhiriev/go-api-dispatch/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// bcryptCost is the work factor passed to bcrypt.
	bcryptCost int

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		bcryptCost:     bcrypt.DefaultCost,
		logger:         logger,
	}
}

// RegisterUser creates a new account with the "user" role.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if login or password is empty.
//   - ErrHashingPassword if bcrypt rejects the password.
//   - A wrapped storage error if the repository call fails (e.g. login already
//     taken, see store.ErrLoginAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, login, password string) (models.User, error) {
	return a.createUser(ctx, login, password, models.RoleUser)
}

// EnsureAdmin makes sure an administrator named login exists.
//
// A missing account is created with the admin role and password. An existing
// account is promoted to admin and re-enabled; its password is left as is.
// Returns ErrInvalidDataProvided if login or password is empty.
func (a *authService) EnsureAdmin(ctx context.Context, login, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if login == "" || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByLogin(ctx, login)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		user, err = a.createUser(ctx, login, password, models.RoleAdmin)
		if err != nil {
			return models.User{}, err
		}
		log.Info().Int64("id", user.UserID).Str("login", login).Msg("admin account created")
		return user, nil
	case err != nil:
		log.Err(err).Str("login", login).Msg("admin lookup failed")
		return models.User{}, fmt.Errorf("admin lookup failed: %w", err)
	}

	if user.Role != models.RoleAdmin {
		if user, err = a.userRepository.UpdateRole(ctx, login, models.RoleAdmin); err != nil {
			return models.User{}, fmt.Errorf("admin promotion failed: %w", err)
		}
		log.Info().Int64("id", user.UserID).Str("login", login).Msg("account promoted to admin")
	}

	if user.Disabled {
		if user, err = a.userRepository.SetDisabled(ctx, login, false); err != nil {
			return models.User{}, fmt.Errorf("admin re-enabling failed: %w", err)
		}
	}

	return user, nil
}

func (a *authService) createUser(ctx context.Context, login, password, role string) (models.User, error) {
	log := logger.FromContext(ctx)

	if login == "" || password == "" {
		log.Error().Str("login", login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("login", login).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Login:        login,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		log.Err(err).Str("login", login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if login or password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found, see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match.
//   - ErrUserIsDisabled if the account has been disabled.
func (a *authService) Login(ctx context.Context, login, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if login == "" || password == "" {
		log.Error().Str("login", login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, login)
	if err != nil {
		log.Err(err).Str("login", login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		log.Debug().
			Int64("id", foundUser.UserID).
			Str("login", foundUser.Login).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	if foundUser.Disabled {
		log.Debug().Int64("id", foundUser.UserID).Msg("disabled user tried to log in")
		return models.User{}, ErrUserIsDisabled
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// An expired token yields ErrTokenIsExpired; any other validation failure
// (wrong signature or issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Authenticate resolves a bearer token into the caller's identity.
//
// Malformed or forged tokens and tokens of unknown users are Invalid. Expired
// tokens and disabled accounts are Denied with a reason the client can show.
func (a *authService) Authenticate(ctx context.Context, tokenString string) models.AuthResult {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return models.Invalid()
	}

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		log.Debug().Err(err).Msg("token rejected")
		if errors.Is(err, ErrTokenIsExpired) {
			return models.Denied(ErrTokenIsExpired.Error())
		}
		return models.Invalid()
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Int64("id", token.UserID).Msg("user lookup failed during authentication")
		}
		return models.Invalid()
	}

	if user.Disabled {
		return models.Denied(ErrUserIsDisabled.Error())
	}

	return models.Allowed(user.Identity())
}
