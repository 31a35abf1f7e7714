// Package questionset exports generated question sets and verifies exported
// sets against the level rules.
package questionset

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathaxy/internal/levels"
	"github.com/abhisek/mathaxy/internal/questiongen"
)

// Format is an export encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

// Set is the exported form of a generated question set.
type Set struct {
	Level     int                    `json:"level" yaml:"level"`
	Questions []questiongen.Question `json:"questions" yaml:"questions"`
	Stats     *questiongen.SetStats  `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// NewSet wraps qs with its stats.
func NewSet(level int, qs []questiongen.Question) Set {
	st := questiongen.Stats(qs)
	return Set{Level: level, Questions: qs, Stats: &st}
}

// Encode writes s to w in format f.
func Encode(w io.Writer, s Set, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return encodeText(w, s)
	}
}

func encodeText(w io.Writer, s Set) error {
	cfg := levels.Get(s.Level)
	if _, err := fmt.Fprintf(w, "Level %d (%s)\n", s.Level, cfg.Description); err != nil {
		return err
	}
	for i, q := range s.Questions {
		if _, err := fmt.Fprintf(w, "%3d. %-12s %2d\n", i+1, q.Text(), q.CorrectAnswer); err != nil {
			return err
		}
	}
	if s.Stats != nil {
		_, err := fmt.Fprintf(w, "%d questions, %d with a zero addend, %d with a two-digit sum\n",
			s.Stats.Count, s.Stats.ZeroAddend, s.Stats.TwoDigitSum)
		return err
	}
	return nil
}
