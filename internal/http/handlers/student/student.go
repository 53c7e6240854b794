// Package student contains all HTTP handlers for the student records
// collection.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN
// ────────────────────────────────────────────────────────────
// echo expects handlers with the signature:
//
//	func(echo.Context) error
//
// That signature has no room for a database handle. To inject it, each
// exported function is a factory that:
//  1. Accepts the dependency (storage)
//  2. Returns a function with the exact signature echo needs
//
// Example:
//
//	v1.GET("/single/:id", student.GetByID(store))
//	//                    ^^^^^^^^^^^^^^^^^^^^^^
//	//         GetByID(store) runs ONCE at route registration.
//	//         The returned func runs on EVERY request.
//
// RESPONSE CONVENTION:
// Business outcomes (not found, invalid id, unacknowledged write) are
// answered with a status:false envelope and 200 OK. Store failures and bad
// bodies are returned as errors; the global error handler renders them.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aanand-mishra/student-records-api/internal/errs"
	"github.com/aanand-mishra/student-records-api/internal/http/middleware"
	"github.com/aanand-mishra/student-records-api/internal/storage"
	"github.com/aanand-mishra/student-records-api/internal/types"
	"github.com/aanand-mishra/student-records-api/internal/utils/response"
	"github.com/labstack/echo/v4"
)

// errTrailingData is returned when a body holds more than one JSON value.
var errTrailingData = errors.New("unexpected data after JSON object")

// ─────────────────────────────────────────────────────────────────────────────
// decodeRecord reads exactly one JSON object from body.
//
//	""                        → empty record
//	{"name":"Alice"}          → record
//	[1,2] / "x" / null        → types.ErrNotObject
//	{"name":"Alice"} garbage  → errTrailingData
//
// Client-supplied _id keys are dropped: the store owns identifiers.
// ─────────────────────────────────────────────────────────────────────────────
func decodeRecord(body io.Reader) (types.Record, error) {
	if body == nil {
		return types.Record{}, nil
	}

	dec := json.NewDecoder(body)

	// ── Step 1: the object itself ─────────────────────────────────────
	var record types.Record
	err := dec.Decode(&record)
	if errors.Is(err, io.EOF) {
		return types.Record{}, nil
	}
	if err != nil {
		return nil, err
	}

	// ── Step 2: nothing but whitespace may follow ─────────────────────
	// A second Decode only reports io.EOF when the stream is exhausted.
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return nil, err
	}

	return record.Without(types.IDKey), nil
}

// badBody turns a decode failure into the error the client sees. The body
// limit middleware surfaces an oversized stream as an echo 413 from Read,
// which must stay a 413 rather than become a 400.
func badBody(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return errs.NewBadRequestError(errs.MessageInvalidBody, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /v1/students/list?page=&size=
//
// Success response (200 OK), newest first:
//
//	{ "status": true, "data": [ ... ], "pagination": { "total": 3, "current": 1 } }
//
// pagination.total is the page count for the whole collection and does not
// depend on page. A page past the end returns "data": [].
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		// ── Step 1: read page and size leniently ──────────────────────
		page := parsePageParam(c.QueryParam("page"), defaultPage)
		size := parsePageParam(c.QueryParam("size"), defaultSize)
		skip := (page - 1) * size

		log := middleware.GetLogger(c)
		log.Debug().Int64("page", page).Int64("size", size).Msg("listing students")

		// ── Step 2: fetch the page, then the collection size ──────────
		ctx := c.Request().Context()
		records, err := store.ListStudents(ctx, skip, size)
		if err != nil {
			return errs.NewServiceUnavailableError(err)
		}

		total, err := store.CountStudents(ctx)
		if err != nil {
			return errs.NewServiceUnavailableError(err)
		}

		// ── Step 3: build the page; nil would encode as null ──────────
		p := types.Page{Records: records, TotalPages: totalPages(total, size), Current: page}
		if p.Records == nil {
			p.Records = []types.Record{}
		}

		return response.WriteJSON(c.Response(), http.StatusOK,
			response.Paged(p.Records, p.TotalPages, p.Current))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /v1/students/single/:id
//
// Success response (200 OK):
//
//	{ "status": true, "data": { "_id": "...", ... } }
//
// A malformed id and a missing document get the same answer, and a
// malformed id never reaches the store:
//
//	{ "status": false, "message": "Data not found." }
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Param("id")
		log := middleware.GetLogger(c)
		log.Debug().Str("id", raw).Msg("getting a student")

		// ── Step 1: validate the id before touching the store ─────────
		id, ok := types.ParseID(raw)
		if !ok {
			return response.WriteJSON(c.Response(), http.StatusOK,
				response.Failure(response.MessageNotFound))
		}

		// ── Step 2: look it up ────────────────────────────────────────
		record, err := store.GetStudentByID(c.Request().Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			return response.WriteJSON(c.Response(), http.StatusOK,
				response.Failure(response.MessageNotFound))
		}
		if err != nil {
			return errs.NewServiceUnavailableError(err)
		}

		return response.WriteJSON(c.Response(), http.StatusOK, response.OK(record))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /v1/students/create
//
// Request body: any JSON object; no field is required.
//
//	{ "name": "Alice", "age": 10 }
//
// Success response (200 OK):
//
//	{ "status": true, "_id": "64b7f1c2e4b0a1a2b3c4d5e6", "message": "Data create successful." }
//
// Error responses:
//
//	200 status:false  unacknowledged insert
//	400               body is not exactly one JSON object
//	413               body over the size limit
//	503               store failure
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := middleware.GetLogger(c)
		log.Debug().Msg("creating a student")

		// ── Step 1: decode the body ───────────────────────────────────
		record, err := decodeRecord(c.Request().Body)
		if err != nil {
			return badBody(err)
		}

		// ── Step 2: insert ────────────────────────────────────────────
		res, err := store.CreateStudent(c.Request().Context(), record)
		if err != nil {
			return errs.NewServiceUnavailableError(err)
		}
		if !res.Acknowledged {
			log.Warn().Msg("insert not acknowledged")
			return response.WriteJSON(c.Response(), http.StatusOK,
				response.Failure(response.MessageCreateFailed))
		}

		log.Info().Str("id", res.ID.Hex()).Msg("student created")
		return response.WriteJSON(c.Response(), http.StatusOK, response.Created(res.ID.Hex()))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PATCH /v1/students/update/:id
//
// Only the fields present in the body change:
//
//	stored  { "name": "Bob", "age": 10 }
//	patch   { "age": 11 }
//	result  { "name": "Bob", "age": 11 }
//
// An acknowledged write is a success even when no document matched the id.
// Delete does not behave this way.
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Param("id")
		log := middleware.GetLogger(c)
		log.Debug().Str("id", raw).Msg("updating a student")

		// ── Step 1: decode the patch ──────────────────────────────────
		patch, err := decodeRecord(c.Request().Body)
		if err != nil {
			return badBody(err)
		}

		// ── Step 2: validate the id ───────────────────────────────────
		id, ok := types.ParseID(raw)
		if !ok {
			return response.WriteJSON(c.Response(), http.StatusOK,
				response.Failure(response.MessageInvalidID))
		}

		// Nothing to set; the store would reject an empty $set.
		if len(patch) == 0 {
			return response.WriteJSON(c.Response(), http.StatusOK,
				response.Success(response.MessageUpdated))
		}

		// ── Step 3: apply ─────────────────────────────────────────────
		res, err := store.UpdateStudentByID(c.Request().Context(), id, patch)
		if err != nil {
			return errs.NewServiceUnavailableError(err)
		}
		if !res.Acknowledged {
			return response.WriteJSON(c.Response(), http.StatusOK,
				response.Failure(response.MessageInvalidID))
		}

		log.Info().
			Str("id", raw).
			Int64("matched", res.MatchedCount).
			Int64("modified", res.ModifiedCount).
			Msg("student updated")
		return response.WriteJSON(c.Response(), http.StatusOK,
			response.Success(response.MessageUpdated))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /v1/students/delete/:id
//
//	{ "status": true,  "message": "Delete successful." }
//	{ "status": false, "message": "Delete unsuccessful." }   bad id, no match
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Param("id")
		log := middleware.GetLogger(c)
		log.Debug().Str("id", raw).Msg("deleting a student")

		id, ok := types.ParseID(raw)
		if !ok {
			return response.WriteJSON(c.Response(), http.StatusOK,
				response.Failure(response.MessageDeleteFailed))
		}

		res, err := store.DeleteStudentByID(c.Request().Context(), id)
		if err != nil {
			return errs.NewServiceUnavailableError(err)
		}
		if !res.Acknowledged || res.DeletedCount == 0 {
			return response.WriteJSON(c.Response(), http.StatusOK,
				response.Failure(response.MessageDeleteFailed))
		}

		log.Info().Str("id", raw).Msg("student deleted")
		return response.WriteJSON(c.Response(), http.StatusOK,
			response.Success(response.MessageDeleted))
	}
}
