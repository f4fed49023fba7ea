package topicgraph

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// topicFileSchema is the JSON Schema for a topic graph definition file.
// Validation runs before decoding so malformed input is rejected with a
// schema-level message instead of a partial unmarshal.
const topicFileSchema = `{
	"type": "object",
	"required": ["topics"],
	"properties": {
		"topics": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id", "name"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"name": {"type": "string", "minLength": 1},
					"description": {"type": "string"},
					"keywords": {"type": "array", "items": {"type": "string"}},
					"estimated_mins": {"type": "integer", "minimum": 0},
					"prerequisites": {"type": "array", "items": {"type": "string"}}
				},
				"additionalProperties": false
			}
		}
	},
	"additionalProperties": false
}`

var (
	topicSchemaOnce sync.Once
	topicSchema     *jsonschema.Schema
	topicSchemaErr  error
)

type topicFile struct {
	Topics []topicEntry `json:"topics"`
}

type topicEntry struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Keywords      []string `json:"keywords"`
	EstimatedMins int      `json:"estimated_mins"`
	Prerequisites []string `json:"prerequisites"`
}

// LoadFile reads a topic graph definition from a JSON file, validates it
// against the schema, and builds the Graph.
func LoadFile(path string) (*Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topic graph: %w", err)
	}
	return Load(raw)
}

// Load parses and validates a topic graph definition from raw JSON.
func Load(raw []byte) (*Graph, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("topic graph is not valid JSON: %w", err)
	}

	schema, err := compiledTopicSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("topic graph schema validation failed: %w", err)
	}

	var file topicFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode topic graph: %w", err)
	}

	topics := make([]Topic, len(file.Topics))
	for i, e := range file.Topics {
		topics[i] = Topic{
			ID:            e.ID,
			Name:          e.Name,
			Description:   e.Description,
			Keywords:      e.Keywords,
			EstimatedMins: e.EstimatedMins,
			Prerequisites: e.Prerequisites,
		}
	}

	return New(topics)
}

func compiledTopicSchema() (*jsonschema.Schema, error) {
	topicSchemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(topicFileSchema), &def); err != nil {
			topicSchemaErr = fmt.Errorf("parse topic schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://topic-graph.json", def); err != nil {
			topicSchemaErr = fmt.Errorf("add topic schema resource: %w", err)
			return
		}
		topicSchema, topicSchemaErr = c.Compile("schema://topic-graph.json")
	})
	return topicSchema, topicSchemaErr
}
