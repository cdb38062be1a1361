package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kibria30/Mini-Gomoku/internal/config"
	"github.com/kibria30/Mini-Gomoku/pkg/engine"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.BoardSize = 9
	cfg.Search.MaxDepth = 3
	cfg.Search.TimeBudgetMs = 2000
	return NewServer(cfg)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func emptyRows(size int) [][]int {
	rows := make([][]int, size)
	for y := range rows {
		rows[y] = make([]int, size)
	}
	return rows
}

func TestPing(t *testing.T) {
	s := testServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/ping", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestChooseReturnsLegalMove(t *testing.T) {
	s := testServer(t)
	rows := emptyRows(9)
	rows[4][4] = 1
	rows[4][5] = 2

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/choose", chooseRequest{
		Board:      rows,
		ToMove:     1,
		Difficulty: "easy",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp chooseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	require.Equal(t, 1, resp.Move.Player)
	require.Zero(t, rows[resp.Move.Y][resp.Move.X], "move must land on an empty cell")
	require.GreaterOrEqual(t, resp.Depth, 1)
	require.GreaterOrEqual(t, resp.WinProb, 1)
	require.LessOrEqual(t, resp.WinProb, 99)
}

func TestChooseReusesSession(t *testing.T) {
	s := testServer(t)
	rows := emptyRows(9)
	rows[4][4] = 1

	first := doJSON(t, s.Handler(), http.MethodPost, "/api/choose", chooseRequest{Board: rows, ToMove: 2, Difficulty: "easy"})
	require.Equal(t, http.StatusOK, first.Code)
	var resp1 chooseResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &resp1))

	second := doJSON(t, s.Handler(), http.MethodPost, "/api/choose", chooseRequest{
		SessionID:  resp1.SessionID,
		Board:      rows,
		ToMove:     2,
		Difficulty: "easy",
	})
	require.Equal(t, http.StatusOK, second.Code)
	var resp2 chooseResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp2))
	require.Equal(t, resp1.SessionID, resp2.SessionID)
	require.Equal(t, 1, s.sessions.len())
}

func TestChooseRejectsBadPayloads(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/choose", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	ragged := emptyRows(9)
	ragged[3] = ragged[3][:5]
	rec = doJSON(t, s.Handler(), http.MethodPost, "/api/choose", chooseRequest{Board: ragged, ToMove: 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s.Handler(), http.MethodPost, "/api/choose", chooseRequest{Board: emptyRows(9), ToMove: 3})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s.Handler(), http.MethodPost, "/api/choose", chooseRequest{Board: emptyRows(3), ToMove: 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChooseRejectsFinishedGame(t *testing.T) {
	s := testServer(t)
	rows := emptyRows(9)
	for x := 0; x < 5; x++ {
		rows[0][x] = 1
	}
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/choose", chooseRequest{Board: rows, ToMove: 2})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestEvaluateAntisymmetric(t *testing.T) {
	s := testServer(t)
	rows := emptyRows(9)
	rows[4][3] = 1
	rows[4][4] = 1
	rows[4][5] = 1
	rows[5][4] = 2

	evalFor := func(player int) float64 {
		rec := doJSON(t, s.Handler(), http.MethodPost, "/api/evaluate", evaluateRequest{Board: rows, Perspective: player})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp evaluateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "ongoing", resp.Status)
		return resp.Score
	}
	require.Equal(t, evalFor(1), -evalFor(2))
}

func TestTTStatusAndClear(t *testing.T) {
	s := testServer(t)
	rows := emptyRows(9)
	rows[4][4] = 1
	rows[5][5] = 2

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/choose", chooseRequest{Board: rows, ToMove: 1, Difficulty: "easy"})
	require.Equal(t, http.StatusOK, rec.Code)
	var choose chooseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &choose))

	rec = doJSON(t, s.Handler(), http.MethodGet, "/api/tt?session_id="+choose.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status ttStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, choose.SessionID, status.SessionID)
	require.Positive(t, status.Count, "a completed search leaves entries behind")
	require.Positive(t, status.Capacity)

	rec = doJSON(t, s.Handler(), http.MethodDelete, "/api/tt?session_id="+choose.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s.Handler(), http.MethodGet, "/api/tt?session_id="+choose.SessionID, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Zero(t, status.Count)
}

func TestBoardRowsRoundTrip(t *testing.T) {
	rows := emptyRows(9)
	rows[0][0] = 1
	rows[8][8] = 2
	rows[3][7] = 1

	board, err := boardFromRows(rows)
	require.NoError(t, err)
	require.Equal(t, rows, boardToRows(board))
}

func TestBoardStatusDetectsWin(t *testing.T) {
	rows := emptyRows(9)
	for i := 0; i < 5; i++ {
		rows[i][2] = 2
	}
	board, err := boardFromRows(rows)
	require.NoError(t, err)
	require.Equal(t, engine.StatusWhiteWon, boardStatus(board))
}

func TestSessionStoreEvictsOldest(t *testing.T) {
	store := newSessionStore(engine.Options{}, nil)
	firstID := store.acquire("").id
	store.mu.Lock()
	store.sessions[firstID].lastUsed = time.Now().Add(-time.Hour)
	store.mu.Unlock()
	for i := 1; i <= maxSessions; i++ {
		store.acquire("")
	}
	require.Equal(t, maxSessions, store.len())
	store.mu.Lock()
	_, survived := store.sessions[firstID]
	store.mu.Unlock()
	require.False(t, survived, "oldest session is the eviction victim")
}
