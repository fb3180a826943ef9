package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const usersTable = "users"

var userColumns = []string{
	"user_id",
	"login",
	"password_hash",
	"role",
	"disabled",
	"created_at",
}

func returningUser() string {
	return "RETURNING " + strings.Join(userColumns, ", ")
}

func buildCreateUserQuery(b sq.StatementBuilderType, login, passwordHash, role string) (string, []any, error) {
	query, args, err := b.
		Insert(usersTable).
		Columns("login", "password_hash", "role", "disabled").
		Values(login, passwordHash, role, false).
		Suffix(returningUser()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildFindUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	query, args, err := b.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildListUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	query, args, err := b.
		Select(userColumns...).
		From(usersTable).
		OrderBy("user_id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpdateUserQuery(b sq.StatementBuilderType, login string, set map[string]any) (string, []any, error) {
	query, args, err := b.
		Update(usersTable).
		SetMap(set).
		Where(sq.Eq{"login": login}).
		Suffix(returningUser()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
