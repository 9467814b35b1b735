// Package maze implements the MonstrousMaze challenge: walk from the start
// cell to an exit, where every monster cell entered costs one unit of
// endurance.
package maze

import (
	"context"
	"fmt"

	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
)

// Name identifies the challenge in envelopes and registries.
const Name = "MonstrousMaze"

type Challenge struct {
	input entity.MonstrousMazeInput
	grid  *Grid
}

// New validates the grid eagerly; a malformed grid yields an error wrapping
// entity.ErrInvalidInput.
func New(input entity.MonstrousMazeInput) (*Challenge, error) {
	grid, err := ParseGrid(input.Grid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}
	return &Challenge{input: input, grid: grid}, nil
}

func (c *Challenge) Name() string { return Name }

func (c *Challenge) Input() entity.MonstrousMazeInput { return c.input }

func (c *Challenge) Grid() *Grid { return c.grid }

// Solve returns a shortest path found by breadth-first search, or an empty
// path if no exit is reachable.
func (c *Challenge) Solve() entity.MonstrousMazeOutput {
	out, _ := c.SolveContext(context.Background())
	return out
}

// SolveContext is Solve with cancellation, checked once per explored node.
//
// Cells are closed by position alone: once a cell is enqueued it is never
// reconsidered, even if a later route would reach it with more endurance.
// This keeps the accepted-answer set stable; it also means some grids that
// need a detour to save endurance are reported unsolved.
func (c *Challenge) SolveContext(ctx context.Context) (entity.MonstrousMazeOutput, error) {
	g := c.grid
	visited := make([]bool, g.Len())
	arrivals := make([]Direction, g.Len())

	start := Node{Pos: g.Start(), Endurance: c.input.Endurance}
	visited[g.index(start.Pos)] = true
	queue := []Node{start}

	for head := 0; head < len(queue); head++ {
		if err := ctx.Err(); err != nil {
			return entity.MonstrousMazeOutput{}, err
		}

		node := queue[head]
		if cell, _ := g.At(node.Pos); cell == Exit {
			return entity.MonstrousMazeOutput{Path: c.reconstruct(arrivals, node.Pos)}, nil
		}

		for _, d := range searchOrder {
			next, ok := c.advance(node, d)
			if !ok {
				continue
			}
			idx := g.index(next.Pos)
			if visited[idx] {
				continue
			}
			visited[idx] = true
			arrivals[idx] = d
			queue = append(queue, next)
		}
	}

	return entity.MonstrousMazeOutput{}, nil
}

// advance moves node one step in d if the target is on the grid, is
// traversable and, for a monster, leaves at least one unit of endurance.
func (c *Challenge) advance(node Node, d Direction) (Node, bool) {
	next := node.Move(d)
	cell, ok := c.grid.At(next.Pos)
	if !ok || !traversable(cell) {
		return Node{}, false
	}
	if cell == Monster {
		if node.Endurance <= 1 {
			return Node{}, false
		}
		next = next.TakeDamage()
	}
	return next, true
}

// reconstruct walks arrival directions back from end until it reaches a cell
// with none recorded, then returns the forward path.
func (c *Challenge) reconstruct(arrivals []Direction, end Position) string {
	var reversed []rune
	pos := end
	for steps := 0; steps < len(arrivals); steps++ {
		d := arrivals[c.grid.index(pos)]
		if d == None {
			break
		}
		reversed = append(reversed, d.Symbol())
		pos = pos.Step(d.opposite())
		if !c.grid.InBounds(pos) {
			break
		}
	}

	path := make([]rune, len(reversed))
	for i, r := range reversed {
		path[len(reversed)-1-i] = r
	}
	return string(path)
}

// Verify replays the candidate path from the start cell. Walking off the grid
// or into a wall rejects the path immediately. Each monster entered costs one
// unit of endurance, floored at zero; the "more than one unit to enter" rule
// of the search is not re-applied. The path is accepted when it ends on an
// exit and the traveller still has endurance left, or never met a monster.
func (c *Challenge) Verify(out entity.MonstrousMazeOutput) bool {
	node := Node{Pos: c.grid.Start(), Endurance: c.input.Endurance}
	wounded := false

	for _, symbol := range out.Path {
		node = node.Move(DirectionOf(symbol))
		cell, ok := c.grid.At(node.Pos)
		if !ok || cell == Wall {
			return false
		}
		if cell == Monster {
			node = node.TakeDamage()
			wounded = true
		}
	}

	cell, _ := c.grid.At(node.Pos)
	if cell != Exit {
		return false
	}
	return node.Endurance > 0 || !wounded
}
