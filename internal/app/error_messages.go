// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// dispatcher, endpoint handlers and transport middleware.
//
// All Msg* constants are human-readable descriptions written into response
// envelopes. Keeping them in one place ensures consistent wording throughout
// the API.
package app

const (
	// MsgInvalidToken is the description of the 401 envelope returned when
	// the token is missing, malformed, forged or names an unknown user.
	MsgInvalidToken = "Invalid token"

	// MsgRoleNotAllowed is the description of the 403 envelope returned when
	// the caller's role is not in the endpoint's allowed list.
	MsgRoleNotAllowed = "Role not allowed"

	// MsgWrongLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record. Unknown logins
	// and wrong passwords share this message.
	MsgWrongLoginPassword = "Wrong login or password"

	// MsgValidationFailed is returned when a payload does not pass field
	// validation. The envelope carries the individual problems under "errors".
	MsgValidationFailed = "Validation failed"

	// MsgCannotDisableSelf is returned when an admin tries to disable their
	// own account.
	MsgCannotDisableSelf = "You cannot disable your own account"

	// MsgIntegrityCheckFailed is returned when a request body does not match
	// its HashSHA256 signature.
	MsgIntegrityCheckFailed = "Integrity check failed"

	// MsgInvalidGzipData is returned when a request declares gzip encoding
	// but its body cannot be decompressed.
	MsgInvalidGzipData = "Invalid gzip data"
)
