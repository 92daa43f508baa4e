package assets

import (
	"embed"
)

//go:embed questions.yaml
var FS embed.FS

// DefaultQuestions returns the raw embedded question bank.
func DefaultQuestions() ([]byte, error) {
	return FS.ReadFile("questions.yaml")
}
