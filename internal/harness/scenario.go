package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario for the engine.
// A scenario seeds a store from a fixture, executes a sequence of
// operations, and snapshots both the per-step outcomes and the final
// store state for golden comparison.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture is the initial store content. Fixture application is
	// assumed to succeed; a failing fixture aborts the run.
	Fixture Fixture `yaml:"fixture"`

	// Steps contains the operations to execute, in order. Steps run
	// against the same store, so earlier writes are visible to later
	// reads.
	Steps []Step `yaml:"steps"`
}

// Step is one operation against the store.
//
// Supported ops: add, update, upsert, replace, delete, get, find,
// count, update_many, replace_many, delete_many, add_index.
type Step struct {
	// Op selects the operation.
	Op string `yaml:"op"`

	// Collection names the target collection.
	Collection string `yaml:"collection"`

	// ID is the document id for by-id operations.
	ID string `yaml:"id,omitempty"`

	// Doc is the document body for writes (the patch for updates).
	Doc map[string]any `yaml:"doc,omitempty"`

	// Where restricts filtered operations: every entry is a strict
	// equality on a dot path and the entries are conjoined.
	Where map[string]any `yaml:"where,omitempty"`

	// OrderBy sorts find results on a dot path.
	OrderBy string `yaml:"order_by,omitempty"`

	// Descending flips the sort direction.
	Descending bool `yaml:"descending,omitempty"`

	// Skip drops the first N results after sorting.
	Skip int `yaml:"skip,omitempty"`

	// Limit caps the result count. Zero means no limit.
	Limit int `yaml:"limit,omitempty"`

	// Select projects results through (path, alias) pairs, applied in
	// declaration order.
	Select []ProjectionField `yaml:"select,omitempty"`

	// Index is the index declaration for add_index.
	Index *IndexFixture `yaml:"index,omitempty"`

	// ExpectError names the error code this step must fail with.
	// Empty means the step must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// ProjectionField is one (source path, destination alias) pair of a
// partial select. The "*" alias merges an object source into the
// result root.
type ProjectionField struct {
	Path  string `yaml:"path"`
	Alias string `yaml:"alias"`
}

// Step op constants.
const (
	OpAdd         = "add"
	OpUpdate      = "update"
	OpUpsert      = "upsert"
	OpReplace     = "replace"
	OpDelete      = "delete"
	OpGet         = "get"
	OpFind        = "find"
	OpCount       = "count"
	OpUpdateMany  = "update_many"
	OpReplaceMany = "replace_many"
	OpDeleteMany  = "delete_many"
	OpAddIndex    = "add_index"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if err := validateFixture(&s.Fixture); err != nil {
		return fmt.Errorf("fixture: %w", err)
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	return nil
}

// validateStep validates a single step based on its op.
func validateStep(index int, step *Step) error {
	if step.Collection == "" {
		return fmt.Errorf("steps[%d]: collection is required", index)
	}

	switch step.Op {
	case OpAdd, OpUpdate, OpUpsert, OpReplace:
		if step.ID == "" {
			return fmt.Errorf("steps[%d]: id is required for %s", index, step.Op)
		}
		if step.Doc == nil {
			return fmt.Errorf("steps[%d]: doc is required for %s", index, step.Op)
		}
	case OpDelete, OpGet:
		if step.ID == "" {
			return fmt.Errorf("steps[%d]: id is required for %s", index, step.Op)
		}
	case OpFind, OpCount, OpDeleteMany:
		// Where is optional: an absent filter matches everything.
	case OpUpdateMany, OpReplaceMany:
		if step.Doc == nil {
			return fmt.Errorf("steps[%d]: doc is required for %s", index, step.Op)
		}
	case OpAddIndex:
		if step.Index == nil {
			return fmt.Errorf("steps[%d]: index is required for add_index", index)
		}
		if len(step.Index.Fields) == 0 {
			return fmt.Errorf("steps[%d]: index.fields is required", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}

	for i, f := range step.Select {
		if f.Path == "" || f.Alias == "" {
			return fmt.Errorf("steps[%d].select[%d]: path and alias are required", index, i)
		}
	}
	return nil
}
