package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"todo-cli/internal/model"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// tasksSchema describes the persisted layout: an array of {id, text, completed}.
// There is no version field; a shape change is a breaking change.
const tasksSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "completed"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "text": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var compiledTasksSchema = jsonschema.MustCompileString("todos.schema.json", tasksSchema)

func encodeTasks(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return json.Marshal(tasks)
}

func decodeTasks(b []byte) ([]model.Task, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, fmt.Errorf("%w: empty value", ErrInvalid)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := compiledTasksSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, schemaMessage(err))
	}

	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalid, t.ID)
		}
		seen[t.ID] = true
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// schemaMessage flattens a validation error to its most specific causes.
func schemaMessage(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var msgs []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			msgs = append(msgs, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return strings.Join(msgs, "; ")
}
