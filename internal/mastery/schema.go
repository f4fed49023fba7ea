package mastery

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// eventBatchSchema is the JSON Schema for an activity event batch file.
// Loosely structured event records are rejected here, at the ingestion
// boundary, before they are decoded into typed events.
const eventBatchSchema = `{
	"type": "object",
	"required": ["events"],
	"properties": {
		"events": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["topic", "kind", "at"],
				"properties": {
					"topic": {"type": "string", "minLength": 1},
					"kind": {"type": "string", "enum": ["quiz", "revisit"]},
					"correct": {"type": "boolean"},
					"duration_secs": {"type": "number", "minimum": 0},
					"at": {"type": "string", "format": "date-time"}
				},
				"additionalProperties": false
			}
		}
	},
	"additionalProperties": false
}`

var (
	eventSchemaOnce sync.Once
	eventSchema     *jsonschema.Schema
	eventSchemaErr  error
)

type eventBatch struct {
	Events []eventEntry `json:"events"`
}

type eventEntry struct {
	Topic        string  `json:"topic"`
	Kind         string  `json:"kind"`
	Correct      bool    `json:"correct"`
	DurationSecs float64 `json:"duration_secs"`
	At           string  `json:"at"`
}

// DecodeEvents parses and validates a JSON event batch. Validation failures
// reject the entire batch.
func DecodeEvents(raw []byte) ([]Event, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("event batch is not valid JSON: %w", err)
	}

	schema, err := compiledEventSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("event batch schema validation failed: %w", err)
	}

	var batch eventBatch
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, fmt.Errorf("decode event batch: %w", err)
	}

	events := make([]Event, len(batch.Events))
	for i, e := range batch.Events {
		at, err := time.Parse(time.RFC3339, e.At)
		if err != nil {
			return nil, fmt.Errorf("event %d: bad timestamp %q: %w", i, e.At, err)
		}
		events[i] = Event{
			Topic:    e.Topic,
			Kind:     EventKind(e.Kind),
			Correct:  e.Correct,
			Duration: time.Duration(e.DurationSecs * float64(time.Second)),
			At:       at,
		}
	}
	return events, nil
}

func compiledEventSchema() (*jsonschema.Schema, error) {
	eventSchemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(eventBatchSchema), &def); err != nil {
			eventSchemaErr = fmt.Errorf("parse event schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://event-batch.json", def); err != nil {
			eventSchemaErr = fmt.Errorf("add event schema resource: %w", err)
			return
		}
		eventSchema, eventSchemaErr = c.Compile("schema://event-batch.json")
	})
	return eventSchema, eventSchemaErr
}
