package questionset

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathaxy/internal/levels"
	"github.com/abhisek/mathaxy/internal/questiongen"
)

// ErrInvalidSet is returned when a document does not match the set schema.
var ErrInvalidSet = errors.New("invalid question set document")

const schemaURL = "schema://mathaxy/question-set.json"

var setSchema = map[string]any{
	"type":     "object",
	"required": []any{"level", "questions"},
	"properties": map[string]any{
		"level": map[string]any{"type": "integer", "minimum": 0},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"maxItems": questiongen.SpaceSize,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"addend1", "addend2", "correct_answer"},
				"properties": map[string]any{
					"addend1":            map[string]any{"type": "integer", "minimum": 0, "maximum": questiongen.MaxAddend},
					"addend2":            map[string]any{"type": "integer", "minimum": 0, "maximum": questiongen.MaxAddend},
					"correct_answer":     map[string]any{"type": "integer", "minimum": 0, "maximum": 2 * questiongen.MaxAddend},
					"time_limit_seconds": map[string]any{"type": "number", "minimum": 0},
				},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a parsed JSON value, not Go maps with int values.
		raw, err := json.Marshal(setSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Report is the outcome of verifying a set.
type Report struct {
	Level      int                  `json:"level"`
	Stats      questiongen.SetStats `json:"stats"`
	Violations []string             `json:"violations,omitempty"`
}

// OK reports whether the set passed every check.
func (r Report) OK() bool {
	return len(r.Violations) == 0
}

// Decode parses a JSON or YAML document into a Set after schema validation.
func Decode(data []byte, f Format) (Set, error) {
	var doc any
	switch f {
	case FormatYAML:
		// Validate the document as written so missing keys are reported
		// rather than decoded as zero values.
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return Set{}, fmt.Errorf("%w: %v", ErrInvalidSet, err)
		}
		raw, err := json.Marshal(generic)
		if err != nil {
			return Set{}, fmt.Errorf("%w: %v", ErrInvalidSet, err)
		}
		data = raw
	case FormatText:
		return Set{}, fmt.Errorf("%w: text exports cannot be verified", ErrInvalidSet)
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return Set{}, fmt.Errorf("%w: %v", ErrInvalidSet, err)
	}
	sch, err := schema()
	if err != nil {
		return Set{}, err
	}
	if err := sch.Validate(doc); err != nil {
		return Set{}, fmt.Errorf("%w: %v", ErrInvalidSet, err)
	}

	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		return Set{}, fmt.Errorf("%w: %v", ErrInvalidSet, err)
	}
	return s, nil
}

// Verify checks s against the question rules and its level's constraints.
func Verify(s Set) Report {
	st := questiongen.Stats(s.Questions)
	r := Report{Level: s.Level, Stats: st}

	for i, q := range s.Questions {
		if !questiongen.Validate(q) {
			r.Violations = append(r.Violations, fmt.Sprintf("question %d (%s): answer %d is wrong or addends out of range",
				i+1, q.Combination(), q.CorrectAnswer))
		}
	}
	if !st.Unique {
		r.Violations = append(r.Violations, "duplicate combinations")
	}

	c := levels.ConstraintFor(s.Level)
	if c.ForbidZeroAddend && st.ZeroAddend > 0 {
		r.Violations = append(r.Violations, fmt.Sprintf("%d zero-addend questions on a level that forbids them", st.ZeroAddend))
	} else if limit := c.EffectiveMaxZero(); limit != levels.Unbounded && st.ZeroAddend > limit {
		r.Violations = append(r.Violations, fmt.Sprintf("%d zero-addend questions, at most %d allowed", st.ZeroAddend, limit))
	}
	if want := min(c.MinTwoDigitSum, st.Count); st.TwoDigitSum < want {
		r.Violations = append(r.Violations, fmt.Sprintf("%d two-digit sums, at least %d required", st.TwoDigitSum, want))
	}
	return r
}
