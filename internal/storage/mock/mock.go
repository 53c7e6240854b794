// Package mock provides an in-memory storage.Storage for tests. It counts
// calls so tests can assert that a request never reached the store, and it
// can be told to fail or to report unacknowledged writes.
package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/aanand-mishra/student-records-api/internal/storage"
	"github.com/aanand-mishra/student-records-api/internal/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is a mock implementation of storage.Storage.
type Store struct {
	mu       sync.RWMutex
	data     map[primitive.ObjectID]types.Record
	calls    map[string]int
	err      error
	unacked  bool
	countErr error
}

var _ storage.Storage = (*Store)(nil)

// New creates an empty mock store.
func New() *Store {
	return &Store{
		data:  make(map[primitive.ObjectID]types.Record),
		calls: make(map[string]int),
	}
}

// WithError makes every operation return err.
func (s *Store) WithError(err error) *Store {
	s.err = err
	return s
}

// WithCountError makes only CountStudents fail.
func (s *Store) WithCountError(err error) *Store {
	s.countErr = err
	return s
}

// WithUnacknowledgedWrites makes inserts, updates and deletes report
// Acknowledged=false without touching the data.
func (s *Store) WithUnacknowledgedWrites() *Store {
	s.unacked = true
	return s
}

// Calls returns how many times the named method was invoked.
func (s *Store) Calls(method string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[method]
}

// TotalCalls returns the number of data operations invoked (Ping excluded).
func (s *Store) TotalCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for m, c := range s.calls {
		if m != "Ping" {
			n += c
		}
	}
	return n
}

// Seed inserts a record directly and returns its id.
func (s *Store) Seed(rec types.Record) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := primitive.NewObjectID()
	s.data[id] = rec.Without(types.IDKey)
	return id
}

func (s *Store) track(method string) {
	s.calls[method]++
}

func withID(id primitive.ObjectID, rec types.Record) types.Record {
	out := rec.Without()
	out[types.IDKey] = types.StringValue(id.Hex())
	return out
}

func (s *Store) ListStudents(_ context.Context, skip, limit int64) ([]types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track("ListStudents")
	if s.err != nil {
		return nil, s.err
	}

	ids := make([]primitive.ObjectID, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Hex() > ids[j].Hex() })

	out := make([]types.Record, 0)
	for i := skip; i < int64(len(ids)) && int64(len(out)) < limit; i++ {
		out = append(out, withID(ids[i], s.data[ids[i]]))
	}
	return out, nil
}

func (s *Store) CountStudents(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track("CountStudents")
	if s.err != nil {
		return 0, s.err
	}
	if s.countErr != nil {
		return 0, s.countErr
	}
	return int64(len(s.data)), nil
}

func (s *Store) GetStudentByID(_ context.Context, id primitive.ObjectID) (types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track("GetStudentByID")
	if s.err != nil {
		return nil, s.err
	}
	rec, ok := s.data[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return withID(id, rec), nil
}

func (s *Store) CreateStudent(_ context.Context, record types.Record) (types.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track("CreateStudent")
	if s.err != nil {
		return types.InsertResult{}, s.err
	}
	if s.unacked {
		return types.InsertResult{}, nil
	}
	id := primitive.NewObjectID()
	s.data[id] = record.Without(types.IDKey)
	return types.InsertResult{ID: id, Acknowledged: true}, nil
}

func (s *Store) UpdateStudentByID(_ context.Context, id primitive.ObjectID, patch types.Record) (types.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track("UpdateStudentByID")
	if s.err != nil {
		return types.UpdateResult{}, s.err
	}
	if s.unacked {
		return types.UpdateResult{}, nil
	}
	rec, ok := s.data[id]
	if !ok {
		return types.UpdateResult{Acknowledged: true}, nil
	}
	merged, changed := rec.Merge(patch.Without(types.IDKey))
	s.data[id] = merged
	res := types.UpdateResult{MatchedCount: 1, Acknowledged: true}
	if changed {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (s *Store) DeleteStudentByID(_ context.Context, id primitive.ObjectID) (types.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track("DeleteStudentByID")
	if s.err != nil {
		return types.DeleteResult{}, s.err
	}
	if s.unacked {
		return types.DeleteResult{}, nil
	}
	if _, ok := s.data[id]; !ok {
		return types.DeleteResult{Acknowledged: true}, nil
	}
	delete(s.data, id)
	return types.DeleteResult{DeletedCount: 1, Acknowledged: true}, nil
}

func (s *Store) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track("Ping")
	return s.err
}

func (s *Store) Close(_ context.Context) error {
	return nil
}
