package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kibria30/Mini-Gomoku/pkg/engine"
)

func (s *Server) handleChoose(w http.ResponseWriter, r *http.Request) {
	var req chooseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid payload"))
		return
	}
	board, err := boardFromRows(req.Board)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	toMove, err := playerToColor(req.ToMove)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if status := boardStatus(board); status.Terminal() {
		writeError(w, http.StatusConflict, errors.New("position is already "+status.String()))
		return
	}

	sess := s.sessions.acquire(req.SessionID)
	budget := time.Duration(req.BudgetMs) * time.Millisecond
	if budget <= 0 {
		budget = s.cfg.TimeBudget()
	}
	s.hub.publishStarted(searchStartedPayload{
		SessionID: sess.id,
		ToMove:    req.ToMove,
		BudgetMs:  budget.Milliseconds(),
	})

	start := time.Now()
	result, err := sess.engine.ChooseMove(r.Context(), board, toMove, budget, engine.ParseDifficulty(req.Difficulty))
	if err != nil {
		writeError(w, statusForEngineErr(err), err)
		return
	}
	elapsed := time.Since(start)

	resp := chooseResponse{
		SessionID: sess.id,
		Move:      moveDTO{X: result.Move.X, Y: result.Move.Y, Player: colorToInt(result.Move.Color)},
		Score:     result.Score,
		Depth:     result.Depth,
		Nodes:     result.Nodes,
		WinProb:   engine.WinProbability(result.Score),
		ElapsedMs: elapsed.Milliseconds(),
	}
	s.hub.publishResult(searchResultPayload{
		SessionID: resp.SessionID,
		Move:      resp.Move,
		Score:     resp.Score,
		Depth:     resp.Depth,
		Nodes:     resp.Nodes,
		WinProb:   resp.WinProb,
		ElapsedMs: resp.ElapsedMs,
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid payload"))
		return
	}
	board, err := boardFromRows(req.Board)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	perspective, err := playerToColor(req.Perspective)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sess := s.sessions.acquire(req.SessionID)
	score, err := sess.engine.Evaluate(board, perspective)
	if err != nil {
		writeError(w, statusForEngineErr(err), err)
		return
	}
	writeJSON(w, http.StatusOK, evaluateResponse{
		SessionID: sess.id,
		Score:     score,
		WinProb:   engine.WinProbability(score),
		Status:    boardStatus(board).String(),
	})
}

func (s *Server) handleTTStatus(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.acquire(r.URL.Query().Get("session_id"))
	tt := sess.engine.TT()
	count := tt.Len()
	capacity := tt.Capacity()
	usage := 0.0
	if capacity > 0 {
		usage = float64(count) / float64(capacity)
	}
	writeJSON(w, http.StatusOK, ttStatusResponse{
		SessionID: sess.id,
		Count:     count,
		Capacity:  capacity,
		Usage:     usage,
		Full:      count >= capacity,
	})
}

func (s *Server) handleTTClear(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.acquire(r.URL.Query().Get("session_id"))
	sess.engine.Reset()
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.id,
		"cleared":    true,
	})
}
