package questionset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathaxy/internal/questiongen"
)

func generated(t *testing.T, level int) Set {
	t.Helper()
	qs, err := questiongen.New(questiongen.WithSeed(1)).Generate(level, 20)
	require.NoError(t, err)
	return NewSet(level, qs)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, "yml": FormatYAML, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestRoundTripVerifies(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			set := generated(t, 10)
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, set, f))

			decoded, err := Decode(buf.Bytes(), f)
			require.NoError(t, err)
			assert.Equal(t, set.Questions, decoded.Questions)

			r := Verify(decoded)
			assert.True(t, r.OK(), "violations: %v", r.Violations)
			assert.Equal(t, 20, r.Stats.Count)
		})
	}
}

func TestEncodeText(t *testing.T) {
	var buf bytes.Buffer
	set := NewSet(1, []questiongen.Question{questiongen.NewQuestion(3, 4, 0)})
	require.NoError(t, Encode(&buf, set, FormatText))
	out := buf.String()
	assert.Contains(t, out, "Level 1")
	assert.Contains(t, out, "3 + 4 = ?")
	assert.Contains(t, out, "1 questions")
}

func TestDecode_SchemaViolations(t *testing.T) {
	tests := map[string]string{
		"missing questions": `{"level": 3}`,
		"addend too large":  `{"level": 3, "questions": [{"addend1": 12, "addend2": 1, "correct_answer": 13}]}`,
		"empty set":         `{"level": 3, "questions": []}`,
		"not json":          `level: 3`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(doc), FormatJSON)
			assert.ErrorIs(t, err, ErrInvalidSet)
		})
	}
}

func TestDecode_YAMLMissingKeys(t *testing.T) {
	tests := map[string]string{
		"missing answer": "level: 3\nquestions:\n  - addend1: 2\n    addend2: 3\n",
		"missing addend": "level: 3\nquestions:\n  - addend2: 3\n    correct_answer: 3\n",
		"missing level":  "questions:\n  - addend1: 2\n    addend2: 3\n    correct_answer: 5\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(doc), FormatYAML)
			assert.ErrorIs(t, err, ErrInvalidSet)
		})
	}

	s, err := Decode([]byte("level: 3\nquestions:\n  - addend1: 2\n    addend2: 3\n    correct_answer: 5\n"), FormatYAML)
	require.NoError(t, err)
	require.Len(t, s.Questions, 1)
	assert.Equal(t, 5, s.Questions[0].CorrectAnswer)
}

func TestDecode_TextRejected(t *testing.T) {
	_, err := Decode([]byte("Level 1"), FormatText)
	assert.ErrorIs(t, err, ErrInvalidSet)
}

func TestVerify_ConstraintViolations(t *testing.T) {
	qs := []questiongen.Question{
		questiongen.NewQuestion(0, 4, 0),
		questiongen.NewQuestion(0, 4, 0),
		{Addend1: 2, Addend2: 2, CorrectAnswer: 5},
	}
	r := Verify(Set{Level: 10, Questions: qs})
	assert.False(t, r.OK())

	joined := strings.Join(r.Violations, "\n")
	assert.Contains(t, joined, "answer 5 is wrong")
	assert.Contains(t, joined, "duplicate")
	assert.Contains(t, joined, "forbids")
	assert.Contains(t, joined, "two-digit")
}

func TestVerify_ZeroCap(t *testing.T) {
	qs := []questiongen.Question{
		questiongen.NewQuestion(0, 1, 0),
		questiongen.NewQuestion(0, 2, 0),
		questiongen.NewQuestion(0, 3, 0),
	}
	r := Verify(Set{Level: 6, Questions: qs})
	require.Len(t, r.Violations, 1)
	assert.Contains(t, r.Violations[0], "at most 2")
}
