package mongodb

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/aanand-mishra/student-records-api/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func toBSON(r types.Record) bson.M {
	doc := make(bson.M, len(r))
	for k, v := range r {
		doc[k] = valueToBSON(v)
	}
	return doc
}

func valueToBSON(v types.Value) any {
	switch v.Kind() {
	case types.KindString:
		s, _ := v.AsString()
		return s
	case types.KindInt:
		i, _ := v.AsInt()
		return i
	case types.KindFloat:
		f, _ := v.AsFloat()
		return f
	case types.KindBool:
		b, _ := v.AsBool()
		return b
	case types.KindObject:
		obj, _ := v.AsObject()
		return toBSON(obj)
	case types.KindArray:
		arr, _ := v.AsArray()
		out := make(bson.A, len(arr))
		for i, e := range arr {
			out[i] = valueToBSON(e)
		}
		return out
	}
	return nil
}

// fromBSON converts a decoded document into a Record. BSON types with no
// JSON counterpart are rendered the way they appear in extended JSON
// relaxed mode: ObjectIDs as hex, dates as RFC 3339 strings.
func fromBSON(doc bson.M) (types.Record, error) {
	rec := make(types.Record, len(doc))
	for k, x := range doc {
		v, err := valueFromBSON(x)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		rec[k] = v
	}
	return rec, nil
}

func valueFromBSON(x any) (types.Value, error) {
	switch t := x.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return types.NullValue(), nil
	case primitive.ObjectID:
		return types.StringValue(t.Hex()), nil
	case primitive.DateTime:
		return types.StringValue(t.Time().UTC().Format(time.RFC3339Nano)), nil
	case primitive.Timestamp:
		return types.IntValue(int64(t.T)), nil
	case primitive.Decimal128:
		return types.StringValue(t.String()), nil
	case primitive.Binary:
		return types.StringValue(base64.StdEncoding.EncodeToString(t.Data)), nil
	case primitive.Regex:
		return types.StringValue(t.String()), nil
	case primitive.M:
		rec, err := fromBSON(bson.M(t))
		if err != nil {
			return types.Value{}, err
		}
		return types.ObjectValue(rec), nil
	case map[string]any:
		rec, err := fromBSON(bson.M(t))
		if err != nil {
			return types.Value{}, err
		}
		return types.ObjectValue(rec), nil
	case primitive.D:
		m := make(bson.M, len(t))
		for _, e := range t {
			m[e.Key] = e.Value
		}
		rec, err := fromBSON(m)
		if err != nil {
			return types.Value{}, err
		}
		return types.ObjectValue(rec), nil
	case primitive.A:
		return arrayFromBSON(t)
	case []any:
		return arrayFromBSON(t)
	}
	if v, err := types.FromAny(x); err == nil {
		return v, nil
	}
	return types.StringValue(fmt.Sprint(x)), nil
}

func arrayFromBSON(a []any) (types.Value, error) {
	out := make([]types.Value, len(a))
	for i, e := range a {
		v, err := valueFromBSON(e)
		if err != nil {
			return types.Value{}, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = v
	}
	return types.ArrayValue(out...), nil
}
