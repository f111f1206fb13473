package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPruneDeepStripsNestedNulls(t *testing.T) {
	input := map[string]interface{}{
		"eventId": "e-1",
		"empty":   nil,
		"attendee": map[string]interface{}{
			"attendeeId": "a-1",
			"profession": nil,
			"answers": []interface{}{
				map[string]interface{}{
					"question": "What do you build?",
					"rank":     nil,
				},
				nil,
			},
		},
	}

	got, ok := PruneDeep(input).(map[string]interface{})
	assert.True(t, ok)

	assert.Equal(t, "e-1", got["eventId"])
	assert.NotContains(t, got, "empty")

	attendee := got["attendee"].(map[string]interface{})
	assert.NotContains(t, attendee, "profession")

	answers := attendee["answers"].([]interface{})
	assert.Len(t, answers, 1, "null array entries must be dropped")
	answer := answers[0].(map[string]interface{})
	assert.NotContains(t, answer, "rank")
	assert.Equal(t, "What do you build?", answer["question"])
}

func TestPruneDeepKeepsScalarsAndEmptyContainers(t *testing.T) {
	assert.Equal(t, "hello", PruneDeep("hello"))
	assert.Equal(t, 3.14, PruneDeep(3.14))
	assert.Equal(t, false, PruneDeep(false))
	assert.Equal(t, map[string]interface{}{}, PruneDeep(map[string]interface{}{}))
	assert.Equal(t, []interface{}{}, PruneDeep([]interface{}{}))
}

func TestPruneDeepIsIdempotent(t *testing.T) {
	input := map[string]interface{}{
		"a": nil,
		"b": map[string]interface{}{"c": nil, "d": "kept"},
	}
	once := PruneDeep(input)
	twice := PruneDeep(once)
	assert.Equal(t, once, twice)
}
