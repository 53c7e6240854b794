package mongodb

import (
	"testing"
	"time"

	"github.com/aanand-mishra/student-records-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToBSON(t *testing.T) {
	doc := toBSON(types.Record{
		"name":     types.StringValue("Alice"),
		"age":      types.IntValue(10),
		"gpa":      types.FloatValue(3.5),
		"active":   types.BoolValue(true),
		"note":     types.NullValue(),
		"guardian": types.ObjectValue(types.Record{"name": types.StringValue("Ann")}),
		"tags":     types.ArrayValue(types.StringValue("a"), types.IntValue(1)),
	})

	assert.Equal(t, bson.M{
		"name":     "Alice",
		"age":      int64(10),
		"gpa":      3.5,
		"active":   true,
		"note":     nil,
		"guardian": bson.M{"name": "Ann"},
		"tags":     bson.A{"a", int64(1)},
	}, doc)
}

func TestFromBSON(t *testing.T) {
	id := primitive.NewObjectID()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	rec, err := fromBSON(bson.M{
		"_id":      id,
		"name":     "Alice",
		"age":      int32(10),
		"credits":  int64(120),
		"gpa":      3.5,
		"enrolled": primitive.NewDateTimeFromTime(at),
		"guardian": bson.D{{Key: "name", Value: "Ann"}},
		"address":  bson.M{"city": "Dhaka"},
		"tags":     bson.A{"a", int32(1), nil},
		"photo":    primitive.Binary{Data: []byte("hi")},
	})
	require.NoError(t, err)

	assert.Equal(t, id.Hex(), rec.ID())
	assert.Equal(t, types.StringValue("Alice"), rec["name"])
	assert.Equal(t, types.IntValue(10), rec["age"])
	assert.Equal(t, types.IntValue(120), rec["credits"])
	assert.Equal(t, types.FloatValue(3.5), rec["gpa"])
	assert.Equal(t, types.StringValue("2024-03-01T12:00:00Z"), rec["enrolled"])
	assert.Equal(t, types.ObjectValue(types.Record{"name": types.StringValue("Ann")}), rec["guardian"])
	assert.Equal(t, types.ObjectValue(types.Record{"city": types.StringValue("Dhaka")}), rec["address"])
	assert.Equal(t, types.ArrayValue(types.StringValue("a"), types.IntValue(1), types.NullValue()), rec["tags"])
	assert.Equal(t, types.StringValue("aGk="), rec["photo"])
}

func TestBSONRoundTrip(t *testing.T) {
	in := types.Record{
		"name": types.StringValue("Bo"),
		"list": types.ArrayValue(types.ObjectValue(types.Record{"k": types.BoolValue(false)})),
	}

	raw, err := bson.Marshal(toBSON(in))
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	out, err := fromBSON(doc)
	require.NoError(t, err)
	assert.True(t, types.ObjectValue(in).Equal(types.ObjectValue(out)))
}
