package questions_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/geoquiz/internal/questions"
)

func TestLoad_Embedded(t *testing.T) {
	qs, err := questions.Load("")
	require.NoError(t, err)
	require.Len(t, qs, 6)

	assert.Equal(t, "question_australia", qs[0].ID)
	assert.True(t, qs[0].Answer)
	assert.Equal(t, "question_mideast", qs[2].ID)
	assert.False(t, qs[2].Answer)
	for _, q := range qs {
		assert.NotEmpty(t, q.Text)
		assert.False(t, q.Answered)
		assert.False(t, q.CheatedOn)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
questions:
  - id: a
    text: " first "
    answer: false
  - id: b
    text: second
    answer: true
`), 0o644))

	qs, err := questions.Load(path)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "first", qs[0].Text)
	assert.False(t, qs[0].Answer)
	assert.True(t, qs[1].Answer)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := questions.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: "questions: []"},
		{name: "not yaml", raw: "questions: [:"},
		{name: "missing id", raw: "questions:\n  - text: x\n    answer: true"},
		{name: "missing text", raw: "questions:\n  - id: x\n    answer: true"},
		{name: "missing answer", raw: "questions:\n  - id: x\n    text: y"},
		{name: "duplicate", raw: "questions:\n  - {id: x, text: y, answer: true}\n  - {id: x, text: z, answer: false}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := questions.Parse([]byte(tt.raw))
			require.Error(t, err)
		})
	}

	_, err := questions.Parse([]byte("questions: []"))
	require.ErrorIs(t, err, questions.ErrEmptyBank)
}
