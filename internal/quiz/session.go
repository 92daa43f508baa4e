// internal/quiz/session.go
//
// Quiz state store for a single session.
// Responsibilities:
//   - Circular navigation over a fixed question list.
//   - Answer commitment and correct-answer counting.
//   - Visitation-based progress and completion.
//   - Snapshot/restore of the current index for host-driven suspend/resume.
//
// Notes:
//   - Progress counts questions visited (by index reached), not questions
//     answered correctly.
//   - The cheat ledger (package cheat) operates on the *Question returned by
//     Current; this package has no dependency on it.
package quiz

import (
	"fmt"
	"math"
)

// New builds a session over a copy of qs with all flags cleared.
// Returns ErrNoQuestions if qs is empty.
func New(qs []Question) (*Session, error) {
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	own := make([]Question, len(qs))
	for i, q := range qs {
		own[i] = Question{ID: q.ID, Text: q.Text, Answer: q.Answer}
	}
	return &Session{questions: own}, nil
}

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// CurrentIndex returns the current position.
func (s *Session) CurrentIndex() int { return s.current }

// MoveToNext advances one question, wrapping from the last to the first.
func (s *Session) MoveToNext() {
	s.current = (s.current + 1) % len(s.questions)
}

// MoveToPrevious retreats one question, wrapping from the first to the last.
func (s *Session) MoveToPrevious() {
	n := len(s.questions)
	s.current = (s.current - 1 + n) % n
}

// Current returns the current question record. The pointer stays valid for
// the session's lifetime.
func (s *Session) Current() *Question { return &s.questions[s.current] }

// Question returns the record at index i.
func (s *Session) Question(i int) (*Question, error) {
	if i < 0 || i >= len(s.questions) {
		return nil, fmt.Errorf("question %d: %w", i, ErrIndexOutOfRange)
	}
	return &s.questions[i], nil
}

// CurrentQuestionText returns the prompt identifier of the current question.
func (s *Session) CurrentQuestionText() string { return s.Current().ID }

// CurrentQuestionAnswer returns the correct answer of the current question.
func (s *Session) CurrentQuestionAnswer() bool { return s.Current().Answer }

// IsCurrentAnswered reports whether the current question has been committed.
func (s *Session) IsCurrentAnswered() bool { return s.Current().Answered }

// AnswerQuestion marks the current question as answered. Idempotent.
func (s *Session) AnswerQuestion() { s.Current().Answered = true }

// RecordCorrectAnswer increments the correct count. Callers invoke it at most
// once per question, before or together with AnswerQuestion.
func (s *Session) RecordCorrectAnswer() { s.correct++ }

// CorrectCount returns the number of correct answers recorded.
func (s *Session) CorrectCount() int { return s.correct }

// Submit commits answer for the current question: it records a correct
// answer when it matches, then marks the question answered.
func (s *Session) Submit(answer bool) (Result, error) {
	q := s.Current()
	if q.Answered {
		return Result{CheatedOn: q.CheatedOn}, ErrAlreadyAnswered
	}
	res := Result{Correct: answer == q.Answer, CheatedOn: q.CheatedOn}
	if res.Correct {
		s.RecordCorrectAnswer()
	}
	s.AnswerQuestion()
	return res, nil
}

// QuizProgressPercent returns round(100 * (current+1) / len).
func (s *Session) QuizProgressPercent() int {
	return int(math.Round(100 * float64(s.current+1) / float64(len(s.questions))))
}

// IsComplete reports whether the last question has been reached.
func (s *Session) IsComplete() bool { return s.QuizProgressPercent() == 100 }

// Summary returns the scoring view of the session.
func (s *Session) Summary() Summary {
	sum := Summary{
		Total:           len(s.questions),
		Correct:         s.correct,
		ProgressPercent: s.QuizProgressPercent(),
		Complete:        s.IsComplete(),
	}
	for _, q := range s.questions {
		if q.Answered {
			sum.Answered++
		}
		if q.CheatedOn {
			sum.Cheated++
		}
	}
	return sum
}

// Snapshot captures the current index.
func (s *Session) Snapshot() Snapshot { return Snapshot{CurrentIndex: s.current} }

// Restore moves to the index held by snap. Flags and score are untouched.
func (s *Session) Restore(snap Snapshot) error {
	if snap.CurrentIndex < 0 || snap.CurrentIndex >= len(s.questions) {
		return fmt.Errorf("restore %d of %d: %w", snap.CurrentIndex, len(s.questions), ErrIndexOutOfRange)
	}
	s.current = snap.CurrentIndex
	return nil
}
