// Package life is a Conway's Game of Life engine on a wrapping grid.
// A click toggles the cell under the pointer.
package life

import (
	"context"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/framedrive/internal/core"
	"github.com/vovakirdan/framedrive/internal/engine"
)

// ID is the registry identifier.
const ID = "life"

// settings is filled by prepare before the first construction.
var settings Settings

func init() {
	engine.Register(engine.Module{
		ID:      ID,
		Title:   "Game of Life",
		Prepare: prepare,
		New:     func() (engine.Engine, error) { return New(settings), nil },
	})
}

func prepare(context.Context) error {
	s, err := ParseSettings(patternsYAML)
	if err != nil {
		return err
	}
	settings = s
	return nil
}

// Game holds the board state.
type Game struct {
	board      Board
	cells      []bool
	next       []bool
	elapsed    float64 // Milliseconds not yet turned into generations
	generation int
}

// New creates a board from s and places its seed patterns.
func New(s Settings) *Game {
	g := &Game{
		board: s.Board,
		cells: make([]bool, s.Board.Cols*s.Board.Rows),
		next:  make([]bool, s.Board.Cols*s.Board.Rows),
	}
	for _, p := range s.Seed {
		g.Place(s.Patterns[p.Pattern], p.At[0], p.At[1])
	}
	return g
}

// Place sets the '#' cells of rows with the top-left corner at (col, row).
func (g *Game) Place(rows []string, col, row int) {
	for dy, line := range rows {
		for dx, ch := range line {
			if ch == '#' {
				g.set(col+dx, row+dy, true)
			}
		}
	}
}

// Width returns the surface width in pixels.
func (g *Game) Width() int { return g.board.Cols * g.board.CellSize }

// Height returns the surface height in pixels.
func (g *Game) Height() int { return g.board.Rows * g.board.CellSize }

// Generation returns the number of generations stepped so far.
func (g *Game) Generation() int { return g.generation }

// Alive reports whether the cell at (col, row) is alive. Coordinates wrap.
func (g *Game) Alive(col, row int) bool {
	return g.cells[g.index(col, row)]
}

// Population returns the number of live cells.
func (g *Game) Population() int {
	n := 0
	for _, alive := range g.cells {
		if alive {
			n++
		}
	}
	return n
}

// Advance accumulates delta and steps one generation per tick_ms.
// Negative deltas are ignored; at most max_catch_up generations run per call.
func (g *Game) Advance(deltaMillis float64) error {
	if deltaMillis <= 0 {
		return nil
	}
	g.elapsed += deltaMillis

	steps := 0
	for g.elapsed >= g.board.TickMs && steps < g.board.MaxCatchUp {
		g.Step()
		g.elapsed -= g.board.TickMs
		steps++
	}
	// Drop backlog after a long stall instead of replaying it.
	g.elapsed = math.Min(g.elapsed, g.board.TickMs)
	return nil
}

// Step computes one generation.
func (g *Game) Step() {
	for row := range g.board.Rows {
		for col := range g.board.Cols {
			n := g.neighbours(col, row)
			alive := g.cells[g.index(col, row)]
			g.next[g.index(col, row)] = n == 3 || (alive && n == 2)
		}
	}
	g.cells, g.next = g.next, g.cells
	g.generation++
}

func (g *Game) neighbours(col, row int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && g.cells[g.index(col+dx, row+dy)] {
				n++
			}
		}
	}
	return n
}

// Render paints the background and one square per live cell.
func (g *Game) Render(dst draw.Image) error {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(core.ColorBackground), image.Point{}, draw.Src)

	size := g.board.CellSize
	gap := 0
	if size > 2 {
		gap = 1
	}
	alive := image.NewUniform(core.ColorAlive)
	for row := range g.board.Rows {
		for col := range g.board.Cols {
			if !g.cells[g.index(col, row)] {
				continue
			}
			r := image.Rect(col*size, row*size, (col+1)*size-gap, (row+1)*size-gap)
			draw.Draw(dst, r, alive, image.Point{}, draw.Src)
		}
	}
	return nil
}

// Click toggles the cell containing (x, y). Points outside the board are ignored.
func (g *Game) Click(x, y float64) error {
	col := int(math.Floor(x / float64(g.board.CellSize)))
	row := int(math.Floor(y / float64(g.board.CellSize)))
	if col < 0 || col >= g.board.Cols || row < 0 || row >= g.board.Rows {
		return nil
	}
	i := g.index(col, row)
	g.cells[i] = !g.cells[i]
	return nil
}

func (g *Game) set(col, row int, alive bool) {
	g.cells[g.index(col, row)] = alive
}

// index maps wrapped coordinates to the cell slice.
func (g *Game) index(col, row int) int {
	col = ((col % g.board.Cols) + g.board.Cols) % g.board.Cols
	row = ((row % g.board.Rows) + g.board.Rows) % g.board.Rows
	return row*g.board.Cols + col
}
