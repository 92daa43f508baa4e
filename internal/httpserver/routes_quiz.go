// internal/httpserver/routes_quiz.go
//
// HTTP routes for the quiz screen. Exposed under /quiz:
//   - GET  /quiz          → current question view
//   - POST /quiz/new      → start a fresh session (flags, score and tokens reset)
//   - POST /quiz/next     → move to the next question (wraps)
//   - POST /quiz/prev     → move to the previous question (wraps)
//   - POST /quiz/answer   → commit a true/false answer for the current question
//   - POST /quiz/cheat    → report the reveal screen outcome; spends a token when shown
//   - GET  /quiz/summary  → scoring view
//   - POST /quiz/suspend  → persist the current index, return a snapshot token
//   - POST /quiz/resume   → restore the index from a snapshot token
//
// Every handler holds s.mu for the whole core interaction.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/geoquiz/internal/cheat"
	"github.com/robalobadob/geoquiz/internal/quiz"
	"github.com/robalobadob/geoquiz/internal/store"
)

const (
	msgCorrect   = "Correct!"
	msgIncorrect = "Incorrect!"
	msgJudgment  = "Cheating is wrong."
)

// mountQuiz registers all /quiz routes.
func (s *Server) mountQuiz(r chi.Router) {
	r.Route("/quiz", func(r chi.Router) {
		r.Get("/", s.handleView)
		r.Post("/new", s.handleNew)
		r.Post("/next", s.handleNext)
		r.Post("/prev", s.handlePrev)
		r.Post("/answer", s.handleAnswer)
		r.Post("/cheat", s.handleCheat)
		r.Get("/summary", s.handleSummary)
		r.Post("/suspend", s.handleSuspend)
		r.Post("/resume", s.handleResume)
	})
}

// quizView is the presentation state of the current question.
type quizView struct {
	Index           int    `json:"index"`
	Total           int    `json:"total"`
	QuestionID      string `json:"questionId"`
	Text            string `json:"text"`
	Answered        bool   `json:"answered"`
	CheatedOn       bool   `json:"cheatedOn"`
	CanCheat        bool   `json:"canCheat"`
	TokensRemaining int    `json:"tokensRemaining"`
	ProgressPercent int    `json:"progressPercent"`
	Complete        bool   `json:"complete"`
	Message         string `json:"message,omitempty"`
}

// view builds the current quizView. Callers hold s.mu.
func (s *Server) view() quizView {
	q := s.session.Current()
	v := quizView{
		Index:           s.session.CurrentIndex(),
		Total:           s.session.Len(),
		QuestionID:      q.ID,
		Text:            q.Text,
		Answered:        q.Answered,
		CheatedOn:       q.CheatedOn,
		CanCheat:        s.ledger.CanCheat(q),
		TokensRemaining: s.ledger.TokensRemaining(),
		ProgressPercent: s.session.QuizProgressPercent(),
		Complete:        s.session.IsComplete(),
	}
	if v.Complete {
		v.Message = fmt.Sprintf("Congratulation! Your score is %d%%", v.ProgressPercent)
	}
	return v
}

// -----------------------------------------------------------------------------
// view / navigation

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = json.NewEncoder(w).Encode(s.view())
}

// handleNew discards the live session and starts a fresh one.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.resetSession(); err != nil {
		log.Error().Err(err).Msg("reset session")
		http.Error(w, `{"error":"reset_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(s.view())
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, (*quiz.Session).MoveToNext)
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, (*quiz.Session).MoveToPrevious)
}

// navigate applies move to the live session and writes the resulting view.
func (s *Server) navigate(w http.ResponseWriter, move func(*quiz.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	move(s.session)
	v := s.view()
	log.Debug().Int("index", v.Index).Int("progress", v.ProgressPercent).Msg("navigate")
	if v.Complete {
		log.Info().Int("correct", s.session.CorrectCount()).Msg("quiz completed")
	}
	_ = json.NewEncoder(w).Encode(v)
}

// -----------------------------------------------------------------------------
// /quiz/answer

type answerReq struct {
	Answer *bool `json:"answer"`
}

type answerRes struct {
	Correct   bool     `json:"correct"`
	CheatedOn bool     `json:"cheatedOn"`
	Message   string   `json:"message"`
	Quiz      quizView `json:"quiz"`
}

// handleAnswer commits the user's answer for the current question.
// A second answer for the same question is rejected with 409.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Answer == nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.session.Submit(*req.Answer)
	if err != nil {
		if errors.Is(err, quiz.ErrAlreadyAnswered) {
			http.Error(w, `{"error":"already_answered"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	msg := msgIncorrect
	if res.Correct {
		msg = msgCorrect
	}
	if res.CheatedOn {
		msg = msgJudgment
	}
	log.Info().
		Str("question", s.session.CurrentQuestionText()).
		Bool("correct", res.Correct).
		Bool("cheated", res.CheatedOn).
		Msg("answer committed")

	_ = json.NewEncoder(w).Encode(answerRes{
		Correct:   res.Correct,
		CheatedOn: res.CheatedOn,
		Message:   msg,
		Quiz:      s.view(),
	})
}

// -----------------------------------------------------------------------------
// /quiz/cheat

// cheatReq is the outcome of the reveal screen. Shown defaults to true.
type cheatReq struct {
	Shown *bool `json:"shown"`
}

type cheatRes struct {
	Answer          *bool    `json:"answer,omitempty"`
	TokensRemaining int      `json:"tokensRemaining"`
	Quiz            quizView `json:"quiz"`
}

// handleCheat spends a token on the current question when the answer was
// shown. Calling it while the question cannot be cheated on is a client bug:
// strict mode panics (recovered as 500), otherwise it answers 409.
func (s *Server) handleCheat(w http.ResponseWriter, r *http.Request) {
	var req cheatReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Shown != nil && !*req.Shown {
		_ = json.NewEncoder(w).Encode(cheatRes{TokensRemaining: s.ledger.TokensRemaining(), Quiz: s.view()})
		return
	}

	q := s.session.Current()
	if err := s.ledger.SpendToken(q); err != nil {
		log.Error().Err(err).Str("question", q.ID).Msg("cheat precondition violated")
		if s.opts.Strict && errors.Is(err, cheat.ErrPreconditionViolation) {
			panic(err)
		}
		http.Error(w, `{"error":"precondition_violation"}`, http.StatusConflict)
		return
	}
	log.Info().Str("question", q.ID).Int("tokens", s.ledger.TokensRemaining()).Msg("cheat token spent")

	answer := q.Answer
	_ = json.NewEncoder(w).Encode(cheatRes{
		Answer:          &answer,
		TokensRemaining: s.ledger.TokensRemaining(),
		Quiz:            s.view(),
	})
}

// -----------------------------------------------------------------------------
// /quiz/summary

type summaryRes struct {
	quiz.Summary
	TokensRemaining int `json:"tokensRemaining"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = json.NewEncoder(w).Encode(summaryRes{Summary: s.session.Summary(), TokensRemaining: s.ledger.TokensRemaining()})
}

// -----------------------------------------------------------------------------
// /quiz/suspend, /quiz/resume

type suspendRes struct {
	Token        string `json:"token"`
	CurrentIndex int    `json:"currentIndex"`
}

// handleSuspend saves the current index under a new snapshot ID and returns
// a signed token for it (also set as a cookie).
func (s *Server) handleSuspend(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.session.Snapshot()
	id := uuid.NewString()
	if err := s.opts.Store.Save(r.Context(), id, snap); err != nil {
		log.Error().Err(err).Msg("save snapshot")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	tok, exp, err := s.signSnapshot(id, snap.CurrentIndex)
	if err != nil {
		log.Error().Err(err).Msg("sign snapshot")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setSnapshotCookie(w, tok, exp)
	log.Info().Str("snapshot", id).Int("index", snap.CurrentIndex).Msg("session suspended")

	_ = json.NewEncoder(w).Encode(suspendRes{Token: tok, CurrentIndex: snap.CurrentIndex})
}

type resumeReq struct {
	Token string `json:"token"`
}

// handleResume restores the index from a snapshot token (body, bearer or cookie).
func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	var req resumeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	tok := strings.TrimSpace(req.Token)
	if tok == "" {
		tok = bearerOrCookie(r)
	}
	if tok == "" {
		http.Error(w, `{"error":"missing_token"}`, http.StatusBadRequest)
		return
	}
	claims, err := s.parseSnapshot(tok)
	if err != nil {
		log.Warn().Err(err).Msg("resume")
		http.Error(w, `{"error":"invalid_token"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.opts.Store.Get(r.Context(), claims.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		snap = quiz.Snapshot{CurrentIndex: claims.Index}
	case err != nil:
		log.Error().Err(err).Str("snapshot", claims.ID).Msg("load snapshot")
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}
	if err := s.session.Restore(snap); err != nil {
		log.Warn().Err(err).Str("snapshot", claims.ID).Msg("restore snapshot")
		http.Error(w, `{"error":"index_out_of_range"}`, http.StatusBadRequest)
		return
	}
	log.Info().Str("snapshot", claims.ID).Int("index", snap.CurrentIndex).Msg("session resumed")

	_ = json.NewEncoder(w).Encode(s.view())
}
