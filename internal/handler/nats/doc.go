// Package nats exposes the dispatcher over NATS request-reply.
//
// Every server instance joins the same queue group on the configured subject,
// so each request is handled once. The message body is the JSON form of
// models.Request and the reply is the flat JSON envelope.
package nats
