// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "net/http"

// Canned envelopes for the common outcomes. They are built once at package
// initialization and shared by identity; nothing ever mutates them.
var (
	Success = MustResponse(http.StatusOK,
		"Success",
		"The request has succeeded.")

	Created = MustResponse(http.StatusCreated,
		"Created",
		"The request has been fulfilled and has resulted in one or more new resources being created.")

	NoContent = MustResponse(http.StatusNoContent,
		"No Content",
		"The server successfully processed the request and is not returning any content.")

	BadRequest = MustResponse(http.StatusBadRequest,
		"Bad Request",
		"The server could not understand the request due to invalid syntax.")

	Unauthorized = MustResponse(http.StatusUnauthorized,
		"Unauthorized",
		"The client must authenticate itself to get the requestedApiResponse.")

	Forbidden = MustResponse(http.StatusForbidden,
		"Forbidden",
		"The client does not have access rights to the content.")

	NotFound = MustResponse(http.StatusNotFound,
		"Not Found",
		"The server cannot find the requested resource.")

	MethodNotAllowed = MustResponse(http.StatusMethodNotAllowed,
		"Method Not Allowed",
		"The request method is known by the server but has been disabled and cannot be used.")

	InternalServerError = MustResponse(http.StatusInternalServerError,
		"Internal Server Error",
		"The server has encountered a situation it doesn't know how to handle.")

	NotImplemented = MustResponse(http.StatusNotImplemented,
		"Not Implemented",
		"The request method is not supported by the server and cannot be handled.")
)

// NewBadRequest returns a fresh 400 envelope with a custom description.
func NewBadRequest(description string, extra ...any) *Response {
	return fresh(BadRequest, description, extra...)
}

// NewUnauthorized returns a fresh 401 envelope with a custom description.
func NewUnauthorized(description string, extra ...any) *Response {
	return fresh(Unauthorized, description, extra...)
}

// NewForbidden returns a fresh 403 envelope with a custom description.
func NewForbidden(description string, extra ...any) *Response {
	return fresh(Forbidden, description, extra...)
}

// NewNotFound returns a fresh 404 envelope with a custom description.
func NewNotFound(description string, extra ...any) *Response {
	return fresh(NotFound, description, extra...)
}

// NewConflict returns a fresh 409 envelope with a custom description.
func NewConflict(description string, extra ...any) *Response {
	r, err := NewResponse(http.StatusConflict, "Conflict", description, extra...)
	if err != nil {
		return NewInternalServerError(err.Error())
	}
	return r
}

// NewInternalServerError returns a fresh 500 envelope with a custom description.
func NewInternalServerError(description string) *Response {
	return fresh(InternalServerError, description)
}

// fresh builds a new envelope sharing status and reason with base.
// An empty description falls back to base's description; an invalid extra
// degrades to a 500 so callers always get a well-formed envelope.
func fresh(base *Response, description string, extra ...any) *Response {
	if description == "" {
		description = base.description
	}

	r, err := NewResponse(base.statusCode, base.reason, description, extra...)
	if err != nil {
		return MustResponse(http.StatusInternalServerError, InternalServerError.reason, err.Error())
	}
	return r
}
