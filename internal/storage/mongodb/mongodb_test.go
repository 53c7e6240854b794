package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aanand-mishra/student-records-api/internal/config"
	"github.com/aanand-mishra/student-records-api/internal/storage"
	"github.com/aanand-mishra/student-records-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newIntegrationStore connects to MONGO_TEST_URI and uses a throwaway
// collection that is dropped when the test ends.
func newIntegrationStore(t *testing.T) *MongoDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test in short mode")
	}
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	cfg := &config.Config{
		Mongo: config.MongoConfig{
			URI:            uri,
			Database:       "students_api_test",
			Collection:     "students_" + primitive.NewObjectID().Hex(),
			ConnectTimeout: 5 * time.Second,
		},
	}

	m, err := New(context.Background(), cfg)
	if err != nil {
		t.Skipf("MongoDB not available for testing: %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		_ = m.coll.Drop(ctx)
		_ = m.Close(ctx)
	})
	return m
}

func TestMongoDB_CRUD(t *testing.T) {
	m := newIntegrationStore(t)
	ctx := context.Background()

	first, err := m.CreateStudent(ctx, types.Record{"name": types.StringValue("Alice"), "age": types.IntValue(10)})
	require.NoError(t, err)
	require.True(t, first.Acknowledged)

	second, err := m.CreateStudent(ctx, types.Record{"name": types.StringValue("Bob")})
	require.NoError(t, err)

	list, err := m.ListStudents(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID.Hex(), list[0].ID())

	n, err := m.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	upd, err := m.UpdateStudentByID(ctx, first.ID, types.Record{"age": types.IntValue(11)})
	require.NoError(t, err)
	assert.Equal(t, types.UpdateResult{MatchedCount: 1, ModifiedCount: 1, Acknowledged: true}, upd)

	got, err := m.GetStudentByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, types.IntValue(11).Equal(got["age"]))
	assert.True(t, types.StringValue("Alice").Equal(got["name"]))

	upd, err = m.UpdateStudentByID(ctx, primitive.NewObjectID(), types.Record{"age": types.IntValue(1)})
	require.NoError(t, err)
	assert.True(t, upd.Acknowledged)
	assert.Zero(t, upd.MatchedCount)

	del, err := m.DeleteStudentByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)

	_, err = m.GetStudentByID(ctx, first.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.NoError(t, m.Ping(ctx))
}
