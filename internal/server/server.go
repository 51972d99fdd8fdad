// Package server exposes the validator and solver over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rybkr/sudoku-solver/internal/grid"
	"github.com/rybkr/sudoku-solver/internal/solver"
	"github.com/rybkr/sudoku-solver/internal/validator"
)

// DefaultSolveTimeout bounds one solve request; worst-case search is
// exponential, so requests are always run under a deadline.
const DefaultSolveTimeout = 10 * time.Second

type Handler struct {
	solveTimeout time.Duration
}

// New creates an HTTP handler. A non-positive timeout falls back to
// DefaultSolveTimeout.
func New(solveTimeout time.Duration) *Handler {
	if solveTimeout <= 0 {
		solveTimeout = DefaultSolveTimeout
	}
	return &Handler{solveTimeout: solveTimeout}
}

// Register attaches the API routes to the engine.
func (h *Handler) Register(e *gin.Engine) {
	v1 := e.Group("/api").
		Group("/v1")
	v1.POST("/solve", h.Solve)
	v1.POST("/validate", h.Validate)
}

// gridRequest carries a puzzle either as an 81-character row-major string
// (non-digits are blanks) or as a 9x9 value array.
type gridRequest struct {
	Puzzle string     `json:"puzzle,omitempty"`
	Grid   *[9][9]int `json:"grid,omitempty"`
}

func (req *gridRequest) toGrid() (grid.Grid, error) {
	if req.Grid != nil {
		var g grid.Grid
		for row := 0; row < grid.Size; row++ {
			for col := 0; col < grid.Size; col++ {
				val := req.Grid[row][col]
				if val < 0 || val > 9 {
					return g, fmt.Errorf("cell (%d,%d) holds %d, must be 0-9", row, col, val)
				}
				g[row][col] = val
			}
		}
		return g, nil
	}
	if req.Puzzle != "" {
		return grid.Parse(req.Puzzle)
	}
	return grid.Grid{}, errors.New("request must carry a puzzle string or a grid array")
}

type coordResponse struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type solveResponse struct {
	Solved     bool      `json:"solved"`
	Grid       [9][9]int `json:"grid"`
	Puzzle     string    `json:"puzzle"`
	Steps      int       `json:"steps"`
	DurationMs int64     `json:"durationMs"`
}

func (h *Handler) Solve(c *gin.Context) {
	var req gridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to decode request", "message": err.Error()})
		return
	}
	g, err := req.toGrid()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grid", "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.solveTimeout)
	defer cancel()

	start := time.Now()
	result, err := solver.Solve(ctx, g, nil)
	if err != nil {
		if errors.Is(err, solver.ErrInvalidGrid) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":     "Grid has conflicts",
				"conflicts": toCoordResponses(validator.Conflicts(g).Cells()),
			})
			return
		}
		log.Err(err).Msg("solve request aborted")
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Solve aborted", "message": err.Error()})
		return
	}

	log.Info().
		Bool("solved", result.Solved).
		Int("steps", result.Steps).
		Dur("dur", time.Since(start)).
		Msg("solve")
	c.JSON(http.StatusOK, solveResponse{
		Solved:     result.Solved,
		Grid:       result.Grid,
		Puzzle:     result.Grid.String(),
		Steps:      result.Steps,
		DurationMs: time.Since(start).Milliseconds(),
	})
}

type validateResponse struct {
	Valid     bool            `json:"valid"`
	Complete  bool            `json:"complete"`
	Conflicts []coordResponse `json:"conflicts"`
}

func (h *Handler) Validate(c *gin.Context) {
	var req gridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to decode request", "message": err.Error()})
		return
	}
	g, err := req.toGrid()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grid", "message": err.Error()})
		return
	}

	conflicts := validator.Conflicts(g)
	c.JSON(http.StatusOK, validateResponse{
		Valid:     len(conflicts) == 0,
		Complete:  g.IsComplete(),
		Conflicts: toCoordResponses(conflicts.Cells()),
	})
}

func toCoordResponses(cells []grid.Coord) []coordResponse {
	out := make([]coordResponse, len(cells))
	for i, c := range cells {
		out[i] = coordResponse{Row: c.Row, Col: c.Col}
	}
	return out
}
