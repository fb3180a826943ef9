package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It works against the "users" table of either PostgreSQL or SQLite; the
// dialect differences live in the query builder of [DB].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// Error handling:
//   - unique violation on login → [ErrLoginAlreadyExists].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query, args, err := buildCreateUserQuery(r.db.builder, user.Login, user.PasswordHash, user.Role)
	if err != nil {
		return models.User{}, err
	}

	created, err := r.queryUser(ctx, "*userRepository.CreateUser", query, args)
	if err != nil {
		if r.db.errorClassificator.Classify(err) == UniqueViolation {
			return models.User{}, ErrLoginAlreadyExists
		}
		return models.User{}, err
	}

	return created, nil
}

// FindUserByLogin retrieves the user whose Login equals login.
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	query, args, err := buildFindUserQuery(r.db.builder, sq.Eq{"login": login})
	if err != nil {
		return models.User{}, err
	}

	return r.queryUser(ctx, "*userRepository.FindUserByLogin", query, args)
}

// FindUserByID retrieves the user whose UserID equals userID.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	query, args, err := buildFindUserQuery(r.db.builder, sq.Eq{"user_id": userID})
	if err != nil {
		return models.User{}, err
	}

	return r.queryUser(ctx, "*userRepository.FindUserByID", query, args)
}

// ListUsers returns every stored user ordered by UserID.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(r.db.builder)
	if err != nil {
		return nil, err
	}

	var users []models.User
	err = r.db.withRetry(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		users = make([]models.User, 0)
		for rows.Next() {
			var u models.User
			if err := scanUser(rows, &u); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			users = append(users, u)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error listing users")
		if errors.Is(err, ErrScanningRows) {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return users, nil
}

// UpdateRole sets the role of the user with login and returns the updated record.
func (r *userRepository) UpdateRole(ctx context.Context, login, role string) (models.User, error) {
	query, args, err := buildUpdateUserQuery(r.db.builder, login, map[string]any{"role": role})
	if err != nil {
		return models.User{}, err
	}

	return r.queryUser(ctx, "*userRepository.UpdateRole", query, args)
}

// SetDisabled enables or disables the user with login and returns the updated record.
func (r *userRepository) SetDisabled(ctx context.Context, login string, disabled bool) (models.User, error) {
	query, args, err := buildUpdateUserQuery(r.db.builder, login, map[string]any{"disabled": disabled})
	if err != nil {
		return models.User{}, err
	}

	return r.queryUser(ctx, "*userRepository.SetDisabled", query, args)
}

// queryUser runs a statement that yields at most one users row.
//
// Error handling:
//   - no rows → [ErrNoUserWasFound].
//   - driver-level error → wrapped as "unexpected DB error".
//   - scan failure → wrapped [ErrScanningRow].
func (r *userRepository) queryUser(ctx context.Context, fn, query string, args []any) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := r.db.withRetry(ctx, func() error {
		row := r.db.QueryRowContext(ctx, query, args...)
		if err := row.Err(); err != nil {
			return err
		}
		return scanUser(row, &user)
	})

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, sql.ErrNoRows):
		log.Debug().Str("func", fn).Msg("no user was found")
		return models.User{}, ErrNoUserWasFound
	case r.db.errorClassificator.Classify(err) == UniqueViolation:
		log.Debug().Str("func", fn).Msg("unique violation")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	case errors.Is(err, ErrScanningRow):
		log.Err(err).Str("func", fn).Msg("error: scanning error")
		return models.User{}, err
	default:
		log.Err(err).Str("func", fn).Msg("error executing query")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, user *models.User) error {
	err := row.Scan(
		&user.UserID,
		&user.Login,
		&user.PasswordHash,
		&user.Role,
		&user.Disabled,
		timestamp{t: &user.CreatedAt},
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return err
}
