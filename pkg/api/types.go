package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kibria30/Mini-Gomoku/pkg/engine"
)

// Boards cross the wire as [][]int rows of 0 empty, 1 black, 2 white,
// indexed payload[y][x].

type moveDTO struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Player int `json:"player"`
}

type chooseRequest struct {
	SessionID  string  `json:"session_id,omitempty"`
	Board      [][]int `json:"board"`
	ToMove     int     `json:"to_move"`
	BudgetMs   int     `json:"budget_ms,omitempty"`
	Difficulty string  `json:"difficulty,omitempty"`
}

type chooseResponse struct {
	SessionID string  `json:"session_id"`
	Move      moveDTO `json:"move"`
	Score     float64 `json:"score"`
	Depth     int     `json:"depth"`
	Nodes     int64   `json:"nodes"`
	WinProb   int     `json:"win_prob"`
	ElapsedMs int64   `json:"elapsed_ms"`
}

type evaluateRequest struct {
	SessionID   string  `json:"session_id,omitempty"`
	Board       [][]int `json:"board"`
	Perspective int     `json:"perspective"`
}

type evaluateResponse struct {
	SessionID string  `json:"session_id"`
	Score     float64 `json:"score"`
	WinProb   int     `json:"win_prob"`
	Status    string  `json:"status"`
}

type ttStatusResponse struct {
	SessionID string  `json:"session_id"`
	Count     int     `json:"count"`
	Capacity  int     `json:"capacity"`
	Usage     float64 `json:"usage"`
	Full      bool    `json:"full"`
}

func playerToColor(value int) (engine.Color, error) {
	switch value {
	case 1:
		return engine.Black, nil
	case 2:
		return engine.White, nil
	default:
		return 0, fmt.Errorf("player must be 1 or 2, got %d", value)
	}
}

func colorToInt(c engine.Color) int {
	if c == engine.White {
		return 2
	}
	return 1
}

func cellToInt(cell engine.Cell) int {
	switch cell {
	case engine.CellBlack:
		return 1
	case engine.CellWhite:
		return 2
	default:
		return 0
	}
}

// boardFromRows validates and rebuilds a Board from its wire form.
func boardFromRows(rows [][]int) (*engine.Board, error) {
	size := len(rows)
	board, err := engine.NewBoard(size)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), size, engine.ErrInvalidBoard)
		}
		for x, value := range row {
			if value == 0 {
				continue
			}
			color, err := playerToColor(value)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", x, y, engine.ErrInvalidBoard)
			}
			if err := board.Apply(engine.Move{X: x, Y: y, Color: color}); err != nil {
				return nil, err
			}
		}
	}
	return board, nil
}

func boardToRows(board *engine.Board) [][]int {
	size := board.Size()
	rows := make([][]int, size)
	for y := 0; y < size; y++ {
		rows[y] = make([]int, size)
		for x := 0; x < size; x++ {
			rows[y][x] = cellToInt(board.At(x, y))
		}
	}
	return rows
}

// boardStatus derives the terminal state of a wire board by probing every
// stone as a potential last move.
func boardStatus(board *engine.Board) engine.Status {
	size := board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if board.At(x, y) == engine.CellEmpty {
				continue
			}
			if status := board.Outcome(engine.Move{X: x, Y: y}); status.Terminal() {
				return status
			}
		}
	}
	if board.Full() {
		return engine.StatusDraw
	}
	return engine.StatusOngoing
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
