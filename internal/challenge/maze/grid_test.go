package maze

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
)

func TestParseGrid_Valid(t *testing.T) {
	t.Parallel()

	g, err := ParseGrid("#####\n#Y  #\n# M #\n#  X#\n#####\n")
	require.NoError(t, err)

	assert.Equal(t, 5, g.Width())
	assert.Equal(t, 5, g.Height())
	assert.Equal(t, 25, g.Len())
	assert.Equal(t, Position{Row: 1, Col: 1}, g.Start())

	cell, ok := g.At(Position{Row: 2, Col: 2})
	require.True(t, ok)
	assert.Equal(t, Monster, cell)

	cell, ok = g.At(Position{Row: 3, Col: 3})
	require.True(t, ok)
	assert.Equal(t, Exit, cell)
}

func TestParseGrid_AlternateStartAndCRLF(t *testing.T) {
	t.Parallel()

	g, err := ParseGrid("###\r\n#I#\r\n#X#\r\n###")
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 4, g.Height())
	assert.Equal(t, Position{Row: 1, Col: 1}, g.Start())
}

func TestParseGrid_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		grid string
	}{
		{"empty", ""},
		{"only_newline", "\n"},
		{"ragged", "#####\n#Y X\n#####"},
		{"empty_middle_row", "#Y#\n\n#X#"},
		{"no_start", "###\n# X\n###"},
		{"two_starts", "#####\n#Y IX\n#####"},
		{"no_exit", "###\n#Y \n###"},
		{"unknown_glyph", "#####\n#Y?X#\n#####"},
		{"non_ascii", "#####\n#Yé X#\n######"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := ParseGrid(tc.grid)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, entity.ErrInvalidInput), "err = %v", err)
		})
	}
}

func TestGrid_OutOfBounds(t *testing.T) {
	t.Parallel()

	g, err := ParseGrid("Y X")
	require.NoError(t, err)

	for _, p := range []Position{{-1, 0}, {0, -1}, {1, 0}, {0, 3}, {-1, -1}} {
		_, ok := g.At(p)
		assert.False(t, ok, "position %+v", p)
		assert.False(t, g.InBounds(p), "position %+v", p)
	}
}

func TestNode_MovesAreValues(t *testing.T) {
	t.Parallel()

	n := Node{Pos: Position{Row: 2, Col: 2}, Endurance: 1}

	moved := n.Move(North).Move(East)
	assert.Equal(t, Position{Row: 1, Col: 3}, moved.Pos)
	assert.Equal(t, Position{Row: 2, Col: 2}, n.Pos)

	hurt := n.TakeDamage()
	assert.Equal(t, uint8(0), hurt.Endurance)
	assert.Equal(t, uint8(1), n.Endurance)
	assert.Equal(t, uint8(0), hurt.TakeDamage().Endurance)
}

func TestDirection_Symbols(t *testing.T) {
	t.Parallel()

	for _, d := range searchOrder {
		assert.Equal(t, d, DirectionOf(d.Symbol()))
		assert.Equal(t, d, d.opposite().opposite())
		assert.NotEqual(t, d, d.opposite())
	}
	assert.Equal(t, West, DirectionOf('?'))
	assert.Equal(t, West, DirectionOf('V'))
}
