package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "valid lowercase", input: "64b7f1c2e4b0a1a2b3c4d5e6", valid: true},
		{name: "valid uppercase", input: "64B7F1C2E4B0A1A2B3C4D5E6", valid: true},
		{name: "empty", input: "", valid: false},
		{name: "too short", input: "64b7f1c2e4b0a1a2b3c4d5e", valid: false},
		{name: "too long", input: "64b7f1c2e4b0a1a2b3c4d5e6f", valid: false},
		{name: "not hex", input: "zzzzzzzzzzzzzzzzzzzzzzzz", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseID(tt.input)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Len(t, id.Hex(), 24)
			}
		})
	}
}

func TestRecordMerge(t *testing.T) {
	base := Record{
		"name": StringValue("Bob"),
		"age":  IntValue(10),
	}

	merged, changed := base.Merge(Record{"age": IntValue(11), "city": StringValue("Dhaka")})
	assert.True(t, changed)
	assert.Equal(t, Record{
		"name": StringValue("Bob"),
		"age":  IntValue(11),
		"city": StringValue("Dhaka"),
	}, merged)
	assert.Equal(t, IntValue(10), base["age"], "merge must not mutate the receiver")

	_, changed = base.Merge(Record{"age": FloatValue(10)})
	assert.False(t, changed)

	_, changed = base.Merge(Record{})
	assert.False(t, changed)
}

func TestRecordWithoutAndID(t *testing.T) {
	rec := Record{IDKey: StringValue("64b7f1c2e4b0a1a2b3c4d5e6"), "name": StringValue("Bo")}

	assert.Equal(t, "64b7f1c2e4b0a1a2b3c4d5e6", rec.ID())
	assert.Equal(t, Record{"name": StringValue("Bo")}, rec.Without(IDKey))
	assert.Len(t, rec, 2)
	assert.Equal(t, "", Record{}.ID())
}
