package maze

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
)

const (
	walledRoom = "#####\n" +
		"#Y  #\n" +
		"#   #\n" +
		"#  X#\n" +
		"#####"

	monsterCorridor = "#######\n" +
		"#Y M X#\n" +
		"#######"

	// The short route to the junction above the bottom corridor costs two
	// monsters; the long route costs none.
	detour = "#########\n" +
		"#YMM MX##\n" +
		"# ## ####\n" +
		"#    ####\n" +
		"#########"

	loop = "##########\n" +
		"#I  M   X#\n" +
		"# ###### #\n" +
		"#        #\n" +
		"##########"
)

func mustNew(t *testing.T, grid string, endurance uint8) *Challenge {
	t.Helper()
	c, err := New(entity.MonstrousMazeInput{Grid: grid, Endurance: endurance})
	require.NoError(t, err)
	return c
}

func TestNew_InvalidGrid(t *testing.T) {
	t.Parallel()

	c, err := New(entity.MonstrousMazeInput{Grid: "#Y#\n##"})
	require.Error(t, err)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, entity.ErrInvalidInput))
}

func TestSolve_Table(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		grid      string
		endurance uint8
		want      string
	}{
		{"walled_room_no_endurance", walledRoom, 0, ">>vv"},
		{"monster_blocks_with_one", monsterCorridor, 1, ""},
		{"monster_passable_with_two", monsterCorridor, 2, ">>>>"},
		{"loop_avoids_monster", loop, 1, "vv>>>>>>>^^"},
		{"loop_through_monster", loop, 2, ">>>>>>>"},
		{"detour_not_found_by_position_only_search", detour, 3, ""},
		{"detour_enough_endurance", detour, 4, ">>>>>"},
		{"walled_off_exit", "#####\n#Y#X#\n#####", 9, ""},
		{"adjacent_exit", "YX", 1, ">"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := mustNew(t, tc.grid, tc.endurance)
			out := c.Solve()
			assert.Equal(t, tc.want, out.Path)
			if tc.want != "" {
				assert.True(t, c.Verify(out), "solver output must replay")
			} else {
				assert.False(t, c.Verify(out))
			}
		})
	}
}

func TestSolve_OutputAlwaysReplays(t *testing.T) {
	t.Parallel()

	grids := []string{walledRoom, monsterCorridor, detour, loop,
		"#########\n" +
			"#Y M M  #\n" +
			"# ##### #\n" +
			"#M  M  X#\n" +
			"#########",
	}
	for _, grid := range grids {
		for endurance := uint8(0); endurance <= 6; endurance++ {
			c := mustNew(t, grid, endurance)
			out := c.Solve()
			if out.Path == "" {
				continue
			}
			require.True(t, c.Verify(out), "grid %q endurance %d path %q", grid, endurance, out.Path)
		}
	}
}

func TestVerify_Table(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		grid      string
		endurance uint8
		path      string
		want      bool
	}{
		{"room_other_shortest", walledRoom, 0, "vv>>", true},
		{"room_long_way", walledRoom, 1, ">>v<<v>>", true},
		{"room_stops_short", walledRoom, 1, ">>v", false},
		{"room_into_wall", walledRoom, 1, "^vv>>", false},
		{"room_passes_exit_then_leaves", walledRoom, 1, ">>vv<", false},
		{"empty_path", walledRoom, 1, "", false},
		{"monster_with_one", monsterCorridor, 1, ">>>>", false},
		{"monster_with_two", monsterCorridor, 2, ">>>>", true},
		{"monster_twice_with_two", monsterCorridor, 2, ">><>>>", false},
		{"monster_twice_with_three", monsterCorridor, 3, ">>><>>", true},
		{"monster_with_zero", monsterCorridor, 0, ">>>>", false},
		{"detour_replays", detour, 3, "vv>>>^^>>", true},
		{"detour_short_way_exhausts", detour, 3, ">>>>>", false},
		{"off_grid_west", "Y X", 1, "<", false},
		{"off_grid_north", "Y X", 1, "^", false},
		{"off_grid_then_back", "Y X", 1, "^v>>", false},
		{"unknown_symbols_are_west", "X Y", 1, "ab", true},
		{"unknown_symbols_run_off", "Y X", 1, "?", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := mustNew(t, tc.grid, tc.endurance)
			assert.Equal(t, tc.want, c.Verify(entity.MonstrousMazeOutput{Path: tc.path}))
		})
	}
}

func TestSolveContext_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := mustNew(t, walledRoom, 0).SolveContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.Path)
}

func TestName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "MonstrousMaze", mustNew(t, "YX", 0).Name())
}
