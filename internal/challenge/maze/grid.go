package maze

import (
	"fmt"
	"strings"

	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
)

// Cell glyphs.
const (
	Wall     byte = '#'
	Open     byte = ' '
	Monster  byte = 'M'
	Start    byte = 'Y'
	AltStart byte = 'I'
	Exit     byte = 'X'
)

// Position addresses a cell by row and column.
type Position struct {
	Row, Col int
}

func (p Position) Step(d Direction) Position {
	dr, dc := d.delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Grid is a rectangular arena of cells stored row-major. All lookups go
// through InBounds so a move off the edge never aliases another cell.
type Grid struct {
	cells  []byte
	width  int
	height int
	start  Position
}

// ParseGrid reads rows separated by "\n" (or "\r\n"). One trailing line break
// is allowed. The grid must be rectangular, use only known glyphs, and hold
// exactly one start and at least one exit.
func ParseGrid(s string) (*Grid, error) {
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	if s == "" {
		return nil, fmt.Errorf("%w: empty grid", entity.ErrInvalidInput)
	}

	rows := strings.Split(s, "\n")
	width := len(strings.TrimSuffix(rows[0], "\r"))
	if width == 0 {
		return nil, fmt.Errorf("%w: empty row 0", entity.ErrInvalidInput)
	}

	g := &Grid{
		cells:  make([]byte, 0, width*len(rows)),
		width:  width,
		height: len(rows),
	}
	starts, exits := 0, 0
	for r, row := range rows {
		row = strings.TrimSuffix(row, "\r")
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", entity.ErrInvalidInput, r, len(row), width)
		}
		for c := 0; c < len(row); c++ {
			switch ch := row[c]; ch {
			case Wall, Open, Monster:
			case Start, AltStart:
				starts++
				g.start = Position{Row: r, Col: c}
			case Exit:
				exits++
			default:
				return nil, fmt.Errorf("%w: unknown cell %q at %d:%d", entity.ErrInvalidInput, ch, r, c)
			}
		}
		g.cells = append(g.cells, row...)
	}

	switch {
	case starts == 0:
		return nil, fmt.Errorf("%w: no start cell", entity.ErrInvalidInput)
	case starts > 1:
		return nil, fmt.Errorf("%w: %d start cells", entity.ErrInvalidInput, starts)
	case exits == 0:
		return nil, fmt.Errorf("%w: no exit cell", entity.ErrInvalidInput)
	}
	return g, nil
}

func (g *Grid) Width() int { return g.width }

func (g *Grid) Height() int { return g.height }

func (g *Grid) Start() Position { return g.start }

// Len is the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.height && p.Col >= 0 && p.Col < g.width
}

// At returns the glyph at p, or false if p is off the grid.
func (g *Grid) At(p Position) (byte, bool) {
	if !g.InBounds(p) {
		return 0, false
	}
	return g.cells[g.index(p)], true
}

// index must only be called with an in-bounds position.
func (g *Grid) index(p Position) int {
	return p.Row*g.width + p.Col
}

// traversable reports whether the search may step onto a cell.
func traversable(cell byte) bool {
	return cell == Open || cell == Monster || cell == Exit
}
