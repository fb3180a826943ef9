// Package endpoints builds the application's endpoint registry: the named
// handlers the dispatcher routes to, with their methods, authentication
// requirements and role allow-lists.
//
// Handlers decode and validate their payload, call the service layer and
// turn well-known service and store errors into envelopes. Any other error
// is returned to the dispatcher, which answers 500.
package endpoints
