package quiz_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/geoquiz/internal/quiz"
)

func bank(n int) []quiz.Question {
	qs := make([]quiz.Question, n)
	for i := range qs {
		qs[i] = quiz.Question{
			ID:     gofakeit.UUID(),
			Text:   gofakeit.Question(),
			Answer: i%2 == 0,
		}
	}
	return qs
}

func newSession(t *testing.T, n int) *quiz.Session {
	t.Helper()
	s, err := quiz.New(bank(n))
	require.NoError(t, err)
	return s
}

func TestNew_EmptyBank(t *testing.T) {
	_, err := quiz.New(nil)
	require.ErrorIs(t, err, quiz.ErrNoQuestions)
}

func TestNew_ClearsFlags(t *testing.T) {
	qs := bank(2)
	qs[0].Answered = true
	qs[1].CheatedOn = true

	s, err := quiz.New(qs)
	require.NoError(t, err)

	for i := 0; i < s.Len(); i++ {
		q, err := s.Question(i)
		require.NoError(t, err)
		assert.False(t, q.Answered)
		assert.False(t, q.CheatedOn)
	}
}

func TestNew_DoesNotShareBank(t *testing.T) {
	qs := bank(2)
	s, err := quiz.New(qs)
	require.NoError(t, err)

	s.AnswerQuestion()
	s.Current().CheatedOn = true
	assert.False(t, qs[0].Answered)
	assert.False(t, qs[0].CheatedOn)
}

func TestNavigation_Wraps(t *testing.T) {
	for _, n := range []int{1, 2, 4, 6, 7} {
		for start := 0; start < n; start++ {
			for steps := 0; steps <= 2*n+1; steps++ {
				s := newSession(t, n)
				require.NoError(t, s.Restore(quiz.Snapshot{CurrentIndex: start}))
				for i := 0; i < steps; i++ {
					s.MoveToNext()
				}
				assert.Equal(t, (start+steps)%n, s.CurrentIndex(), "next n=%d start=%d steps=%d", n, start, steps)

				require.NoError(t, s.Restore(quiz.Snapshot{CurrentIndex: start}))
				for i := 0; i < steps; i++ {
					s.MoveToPrevious()
				}
				want := ((start-steps)%n + n) % n
				assert.Equal(t, want, s.CurrentIndex(), "prev n=%d start=%d steps=%d", n, start, steps)
			}
		}
	}
}

func TestNavigation_Edges(t *testing.T) {
	s := newSession(t, 4)
	s.MoveToPrevious()
	assert.Equal(t, 3, s.CurrentIndex())
	s.MoveToNext()
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestCurrentAccessors(t *testing.T) {
	qs := bank(3)
	s, err := quiz.New(qs)
	require.NoError(t, err)

	s.MoveToNext()
	assert.Equal(t, qs[1].ID, s.CurrentQuestionText())
	assert.Equal(t, qs[1].Answer, s.CurrentQuestionAnswer())
	assert.False(t, s.IsCurrentAnswered())
}

func TestAnswerQuestion_Idempotent(t *testing.T) {
	s := newSession(t, 3)
	s.AnswerQuestion()
	s.AnswerQuestion()
	assert.True(t, s.IsCurrentAnswered())
	assert.Equal(t, 1, s.Summary().Answered)
	assert.Equal(t, 0, s.CorrectCount())

	s.MoveToNext()
	assert.False(t, s.IsCurrentAnswered())
}

func TestSubmit(t *testing.T) {
	s := newSession(t, 2)

	res, err := s.Submit(s.CurrentQuestionAnswer())
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.False(t, res.CheatedOn)
	assert.Equal(t, 1, s.CorrectCount())
	assert.True(t, s.IsCurrentAnswered())

	_, err = s.Submit(s.CurrentQuestionAnswer())
	require.ErrorIs(t, err, quiz.ErrAlreadyAnswered)
	assert.Equal(t, 1, s.CorrectCount())

	s.MoveToNext()
	s.Current().CheatedOn = true
	res, err = s.Submit(!s.CurrentQuestionAnswer())
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.True(t, res.CheatedOn)
	assert.Equal(t, 1, s.CorrectCount())
}

func TestProgress(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{n: 1, want: []int{100}},
		{n: 3, want: []int{33, 67, 100}},
		{n: 4, want: []int{25, 50, 75, 100}},
		{n: 6, want: []int{17, 33, 50, 67, 83, 100}},
	}
	for _, tt := range tests {
		s := newSession(t, tt.n)
		prev := 0
		for i, want := range tt.want {
			got := s.QuizProgressPercent()
			assert.Equal(t, want, got, "n=%d idx=%d", tt.n, i)
			assert.GreaterOrEqual(t, got, prev)
			assert.Equal(t, i == tt.n-1, s.IsComplete())
			prev = got
			if i < tt.n-1 {
				s.MoveToNext()
			}
		}
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := newSession(t, 5)
	s.MoveToNext()
	s.MoveToNext()
	s.AnswerQuestion()
	snap := s.Snapshot()
	assert.Equal(t, quiz.Snapshot{CurrentIndex: 2}, snap)

	s.MoveToNext()
	require.NoError(t, s.Restore(snap))
	assert.Equal(t, 2, s.CurrentIndex())
	assert.True(t, s.IsCurrentAnswered())

	for _, bad := range []int{-1, 5, 99} {
		err := s.Restore(quiz.Snapshot{CurrentIndex: bad})
		require.ErrorIs(t, err, quiz.ErrIndexOutOfRange)
		assert.Equal(t, 2, s.CurrentIndex())
	}
}

func TestSummary(t *testing.T) {
	s := newSession(t, 4)
	_, err := s.Submit(s.CurrentQuestionAnswer())
	require.NoError(t, err)
	s.MoveToNext()
	s.Current().CheatedOn = true
	_, err = s.Submit(!s.CurrentQuestionAnswer())
	require.NoError(t, err)

	assert.Equal(t, quiz.Summary{
		Total:           4,
		Answered:        2,
		Correct:         1,
		Cheated:         1,
		ProgressPercent: 50,
	}, s.Summary())
}
