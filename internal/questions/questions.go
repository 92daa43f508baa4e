// internal/questions/questions.go
//
// Question bank loading for the quiz.
//
// Responsibilities:
//   - Load the bank from a YAML file when a path is configured.
//   - Otherwise fall back to the embedded default bank (assets/questions.yaml).
//   - Validate entries: non-empty id and text, unique ids, at least one question.
//
// File format:
//
//	questions:
//	  - id: question_australia
//	    text: Canberra is the capital of Australia.
//	    answer: true
package questions

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/geoquiz/assets"
	"github.com/robalobadob/geoquiz/internal/quiz"
)

// ErrEmptyBank is returned when a bank holds no questions.
var ErrEmptyBank = errors.New("questions: bank is empty")

// entry is one question as written in the bank file.
type entry struct {
	ID     string `yaml:"id"`
	Text   string `yaml:"text"`
	Answer *bool  `yaml:"answer"`
}

type bankFile struct {
	Questions []entry `yaml:"questions"`
}

// Load reads the bank at path, or the embedded default when path is empty.
func Load(path string) ([]quiz.Question, error) {
	if path == "" {
		raw, err := assets.DefaultQuestions()
		if err != nil {
			return nil, fmt.Errorf("read embedded bank: %w", err)
		}
		return Parse(raw)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	qs, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return qs, nil
}

// Parse decodes and validates a YAML bank.
func Parse(raw []byte) ([]quiz.Question, error) {
	var f bankFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	if len(f.Questions) == 0 {
		return nil, ErrEmptyBank
	}

	seen := make(map[string]struct{}, len(f.Questions))
	out := make([]quiz.Question, 0, len(f.Questions))
	for i, e := range f.Questions {
		id := strings.TrimSpace(e.ID)
		text := strings.TrimSpace(e.Text)
		switch {
		case id == "":
			return nil, fmt.Errorf("question %d: missing id", i)
		case text == "":
			return nil, fmt.Errorf("question %q: missing text", id)
		case e.Answer == nil:
			return nil, fmt.Errorf("question %q: missing answer", id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("question %q: duplicate id", id)
		}
		seen[id] = struct{}{}
		out = append(out, quiz.Question{ID: id, Text: text, Answer: *e.Answer})
	}
	return out, nil
}
