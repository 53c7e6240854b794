// Package storage defines the Storage interface: the contract any
// document store backend must satisfy to serve the student records API.
//
// Handlers depend only on this interface, so the MongoDB adapter used in
// production, the SQLite adapter used for local development and the mock
// used in tests are interchangeable.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-records-api/internal/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by GetStudentByID when no document has the id.
var ErrNotFound = errors.New("student not found")

// Storage is the document store contract.
type Storage interface {
	// ListStudents returns at most limit records ordered by identifier,
	// newest first, after skipping the first skip records.
	ListStudents(ctx context.Context, skip, limit int64) ([]types.Record, error)

	// CountStudents returns an estimate of the number of documents in the
	// whole collection. It ignores any list filter.
	CountStudents(ctx context.Context) (int64, error)

	// GetStudentByID fetches a single record, or ErrNotFound.
	GetStudentByID(ctx context.Context, id primitive.ObjectID) (types.Record, error)

	// CreateStudent inserts record as-is and lets the store assign the id.
	CreateStudent(ctx context.Context, record types.Record) (types.InsertResult, error)

	// UpdateStudentByID sets the fields present in patch and leaves every
	// other field untouched.
	UpdateStudentByID(ctx context.Context, id primitive.ObjectID, patch types.Record) (types.UpdateResult, error)

	// DeleteStudentByID removes at most one record.
	DeleteStudentByID(ctx context.Context, id primitive.ObjectID) (types.DeleteResult, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection. The Storage must not be used afterwards.
	Close(ctx context.Context) error
}
