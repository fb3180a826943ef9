// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Identity is the authenticated caller as resolved by an authenticator.
type Identity struct {
	UserID int64  `json:"userId"`
	Login  string `json:"login"`
	Role   string `json:"role"`
}

// AuthStatus enumerates the outcomes of authenticating a token.
type AuthStatus int

const (
	// AuthInvalid means the token did not resolve to any identity.
	AuthInvalid AuthStatus = iota
	// AuthDenied means the token was understood but access is refused;
	// the result carries a human-readable reason.
	AuthDenied
	// AuthAllowed means the token resolved to a valid identity.
	AuthAllowed
)

// String implements [fmt.Stringer].
func (s AuthStatus) String() string {
	switch s {
	case AuthDenied:
		return "denied"
	case AuthAllowed:
		return "allowed"
	default:
		return "invalid"
	}
}

// AuthResult is the tagged outcome of authenticating a token. Build it with
// [Invalid], [Denied] or [Allowed]; the zero value is [Invalid].
type AuthResult struct {
	status   AuthStatus
	reason   string
	identity Identity
}

// Invalid returns a result carrying no identity.
func Invalid() AuthResult {
	return AuthResult{status: AuthInvalid}
}

// Denied returns a result refusing access for reason. An empty reason
// carries no information and yields [Invalid].
func Denied(reason string) AuthResult {
	if reason == "" {
		return Invalid()
	}
	return AuthResult{status: AuthDenied, reason: reason}
}

// Allowed returns a result carrying identity.
func Allowed(identity Identity) AuthResult {
	return AuthResult{status: AuthAllowed, identity: identity}
}

// Status returns the outcome tag.
func (a AuthResult) Status() AuthStatus {
	return a.status
}

// Reason returns the denial reason. It is empty unless Status is [AuthDenied].
func (a AuthResult) Reason() string {
	return a.reason
}

// Identity returns the resolved identity. It is the zero value unless
// Status is [AuthAllowed].
func (a AuthResult) Identity() Identity {
	return a.identity
}
