// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every student endpoint answers with the same envelope, so API consumers
// only ever check one field, "status":
//
//	{ "status": true,  "data": ..., "pagination": { "total": 3, "current": 1 } }
//	{ "status": true,  "_id": "...", "message": "Data create successful." }
//	{ "status": false, "message": "Data not found." }
//
// Business-level failures still go out with 200 OK; only transport and
// store failures use an error status code.
package response

import (
	"encoding/json"
	"net/http"
)

// Client-facing messages. Use these instead of raw string literals so a
// typo is caught by the compiler.
const (
	MessageNotFound      = "Data not found."
	MessageCreated       = "Data create successful."
	MessageCreateFailed  = "Something is wrong."
	MessageUpdated       = "Update successful."
	MessageInvalidID     = "Invalid id."
	MessageDeleted       = "Delete successful."
	MessageDeleteFailed  = "Delete unsuccessful."
	MessageServerRunning = "The server is Running..."
)

// ─────────────────────────────────────────────────────────────────────────────
// Envelope is the response body of every student endpoint.
//
// Fields tagged omitempty only appear when set, which gives each endpoint
// its own shape from one type. Data is an any so that an empty list still
// encodes as [] rather than being dropped.
// ─────────────────────────────────────────────────────────────────────────────
type Envelope struct {
	Status     bool        `json:"status"`               // business outcome
	ID         string      `json:"_id,omitempty"`        // create only
	Data       any         `json:"data,omitempty"`       // list and single
	Message    string      `json:"message,omitempty"`    // human-readable outcome
	Pagination *Pagination `json:"pagination,omitempty"` // list only
}

// Pagination reports the total number of pages and the page returned.
type Pagination struct {
	Total   int64 `json:"total"`
	Current int64 `json:"current"`
}

// Banner is the body of the root liveness endpoint.
type Banner struct {
	Message string `json:"message"`
}

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// Parameters:
//
//	w      the http.ResponseWriter (echo's c.Response() satisfies it)
//	status HTTP status code, e.g. http.StatusOK
//	data   any Go value; it is JSON-encoded into the body
//
// IMPORTANT ORDER: Header() then WriteHeader() then body writes.
// Once WriteHeader is called, headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK wraps a successful payload.
func OK(data any) Envelope {
	return Envelope{Status: true, Data: data}
}

// Paged wraps one page of a list.
func Paged(data any, totalPages, current int64) Envelope {
	return Envelope{
		Status:     true,
		Data:       data,
		Pagination: &Pagination{Total: totalPages, Current: current},
	}
}

// Created reports a freshly assigned identifier.
func Created(id string) Envelope {
	return Envelope{Status: true, ID: id, Message: MessageCreated}
}

// Success is a status:true envelope carrying only a message.
func Success(message string) Envelope {
	return Envelope{Status: true, Message: message}
}

// Failure is a status:false envelope carrying only a message.
func Failure(message string) Envelope {
	return Envelope{Status: false, Message: message}
}
