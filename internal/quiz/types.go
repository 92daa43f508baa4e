// internal/quiz/types.go
//
// Core type definitions for the quiz state store.
// Defines:
//   - Question: one true/false prompt plus its per-session flags.
//   - Session: the ordered question list, current position and score.
//   - Snapshot: the single piece of state a host may persist.
//   - Result/Summary: feedback and scoring views.

package quiz

import "errors"

var (
	// ErrNoQuestions is returned when a session is built from an empty bank.
	ErrNoQuestions = errors.New("quiz: no questions")
	// ErrIndexOutOfRange is returned when a snapshot points outside the bank.
	ErrIndexOutOfRange = errors.New("quiz: index out of range")
	// ErrAlreadyAnswered is returned by Submit for a committed question.
	ErrAlreadyAnswered = errors.New("quiz: question already answered")
)

// Question holds a single prompt and its mutable session flags.
// Answered and CheatedOn only ever go from false to true.
type Question struct {
	ID        string // Stable text identifier (e.g. "question_australia").
	Text      string // Display text for the prompt.
	Answer    bool   // Ground truth.
	Answered  bool   // Set once the user commits an answer.
	CheatedOn bool   // Set once the answer was revealed via a cheat token.
}

// Session is the quiz state store for one app session.
// It is not safe for concurrent use; hosts serialize access.
type Session struct {
	questions []Question // fixed membership, owned by the session
	current   int        // always in [0, len(questions))
	correct   int        // correct answers recorded so far
}

// Snapshot is the externally persistable part of a Session.
type Snapshot struct {
	CurrentIndex int `json:"currentIndex"`
}

// Result is the feedback for a submitted answer.
type Result struct {
	Correct   bool `json:"correct"`
	CheatedOn bool `json:"cheatedOn"`
}

// Summary is the scoring view of a session.
type Summary struct {
	Total           int  `json:"total"`
	Answered        int  `json:"answered"`
	Correct         int  `json:"correct"`
	Cheated         int  `json:"cheated"`
	ProgressPercent int  `json:"progressPercent"`
	Complete        bool `json:"complete"`
}
