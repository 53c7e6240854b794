package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/student-records-api/internal/config"
	"github.com/aanand-mishra/student-records-api/internal/storage"
	"github.com/aanand-mishra/student-records-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	cfg := &config.Config{
		Storage: config.StorageConfig{
			Driver: config.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "data", "students.db"),
		},
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res, err := s.CreateStudent(ctx, types.Record{
		types.IDKey: types.StringValue("ignored"),
		"name":      types.StringValue("Alice"),
		"age":       types.IntValue(10),
		"guardian":  types.ObjectValue(types.Record{"name": types.StringValue("Ann")}),
	})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.False(t, res.ID.IsZero())

	got, err := s.GetStudentByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID.Hex(), got.ID())
	assert.True(t, types.StringValue("Alice").Equal(got["name"]))
	assert.True(t, types.IntValue(10).Equal(got["age"]))
	assert.Equal(t, types.KindObject, got["guardian"].Kind())
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetStudentByID(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListAndCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var ids []primitive.ObjectID
	for i := 0; i < 5; i++ {
		res, err := s.CreateStudent(ctx, types.Record{"n": types.IntValue(int64(i))})
		require.NoError(t, err)
		ids = append(ids, res.ID)
	}

	n, err := s.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	page, err := s.ListStudents(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[3].Hex(), page[0].ID())
	assert.Equal(t, ids[2].Hex(), page[1].ID())

	page, err = s.ListStudents(ctx, 10, 2)
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateStudent(ctx, types.Record{
		"name": types.StringValue("Bob"),
		"age":  types.IntValue(10),
	})
	require.NoError(t, err)

	res, err := s.UpdateStudentByID(ctx, created.ID, types.Record{"age": types.IntValue(11)})
	require.NoError(t, err)
	assert.Equal(t, types.UpdateResult{MatchedCount: 1, ModifiedCount: 1, Acknowledged: true}, res)

	got, err := s.GetStudentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, types.IntValue(11).Equal(got["age"]))
	assert.True(t, types.StringValue("Bob").Equal(got["name"]))

	res, err = s.UpdateStudentByID(ctx, created.ID, types.Record{"age": types.IntValue(11)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.ModifiedCount)

	res, err = s.UpdateStudentByID(ctx, primitive.NewObjectID(), types.Record{"age": types.IntValue(1)})
	require.NoError(t, err)
	assert.Equal(t, types.UpdateResult{Acknowledged: true}, res)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateStudent(ctx, types.Record{"name": types.StringValue("Cara")})
	require.NoError(t, err)

	res, err := s.DeleteStudentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, types.DeleteResult{DeletedCount: 1, Acknowledged: true}, res)

	res, err = s.DeleteStudentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.DeletedCount)

	_, err = s.GetStudentByID(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
