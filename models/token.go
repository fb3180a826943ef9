package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a signed access token issued by the login endpoint.
//
// The subject claim carries the user ID; everything else about the caller
// (role, disabled flag) is looked up on every request so that role changes
// take effect without re-issuing tokens.
type Token struct {
	// Token is the underlying JWT, excluded from serialization.
	*jwt.Token `json:"-"`

	// RegisteredClaims are the standard RFC 7519 claims.
	jwt.RegisteredClaims

	// SignedString is the compact JWS form handed to clients.
	SignedString string `json:"-"`

	// UserID is the parsed subject claim.
	UserID int64 `json:"-"`
}

// GetUserID parses the subject claim as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String implements [fmt.Stringer] and returns the compact token.
func (t *Token) String() string {
	return t.SignedString
}
