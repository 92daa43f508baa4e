// internal/cheat/ledger.go
//
// Cheat ledger: a session-wide token budget spent on answer reveals.
//
// Per-question state over {Answered, CheatedOn}:
//   (false,false) --reveal--> (false,true)   needs a token, consumes one
//   (false,*)     --commit--> (true,*)       handled by quiz.Session
//   (true,*) is terminal; reveal after commit fails.
package cheat

import (
	"errors"
	"fmt"

	"github.com/robalobadob/geoquiz/internal/quiz"
)

// DefaultBudget is the number of tokens a new session starts with.
const DefaultBudget = 3

// ErrPreconditionViolation is returned by SpendToken when CanCheat is false.
var ErrPreconditionViolation = errors.New("cheat: precondition violation")

// Ledger tracks the remaining token budget.
type Ledger struct {
	tokens int
}

// NewLedger returns a ledger holding budget tokens. Negative budgets are
// treated as zero.
func NewLedger(budget int) *Ledger {
	if budget < 0 {
		budget = 0
	}
	return &Ledger{tokens: budget}
}

// TokensRemaining returns the unspent budget.
func (l *Ledger) TokensRemaining() int { return l.tokens }

// CanCheat reports whether q may be revealed: a token is left and q is
// neither answered nor already cheated on.
func (l *Ledger) CanCheat(q *quiz.Question) bool {
	return l.tokens > 0 && !q.CheatedOn && !q.Answered
}

// SpendToken consumes one token and marks q as cheated on. Nothing is
// mutated when it fails.
func (l *Ledger) SpendToken(q *quiz.Question) error {
	if !l.CanCheat(q) {
		return fmt.Errorf("spend on %q (tokens=%d answered=%t cheated=%t): %w",
			q.ID, l.tokens, q.Answered, q.CheatedOn, ErrPreconditionViolation)
	}
	l.tokens--
	q.CheatedOn = true
	return nil
}
