package game_test

import (
	"errors"
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/they4kman/sparsesweep/game"
)

// scriptedRand returns its draws in order, then zeros
type scriptedRand struct {
	draws []int
	calls int
}

func (r *scriptedRand) Intn(n int) int {
	defer func() { r.calls++ }()
	if r.calls < len(r.draws) {
		return r.draws[r.calls] % n
	}
	return 0
}

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newBoard(t *testing.T, rows, cols, mines int, rnd game.Rand) *game.Board {
	t.Helper()
	board, err := game.NewBoard(game.BoardConfig{
		Rows:   rows,
		Cols:   cols,
		Mines:  mines,
		Rand:   rnd,
		Logger: quietLogger(),
	})
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	board.Start()
	return board
}

func mustReveal(t *testing.T, board *game.Board, row, col int) {
	t.Helper()
	if err := board.Reveal(row, col); err != nil {
		t.Fatalf("Reveal(%d, %d) failed: %v", row, col, err)
	}
}

func mustFlag(t *testing.T, board *game.Board, row, col int) {
	t.Helper()
	if err := board.ToggleFlag(row, col); err != nil {
		t.Fatalf("ToggleFlag(%d, %d) failed: %v", row, col, err)
	}
}

func stateAt(t *testing.T, board *game.Board, row, col int) game.CellState {
	t.Helper()
	state, err := board.CellState(row, col)
	if err != nil {
		t.Fatalf("CellState(%d, %d) failed: %v", row, col, err)
	}
	return state
}

func valueAt(t *testing.T, board *game.Board, row, col int) int {
	t.Helper()
	value, err := board.CellValue(row, col)
	if err != nil {
		t.Fatalf("CellValue(%d, %d) failed: %v", row, col, err)
	}
	return value
}

// checkMineField verifies the mine count and that every cell's value is the
// number of its mined neighbors
func checkMineField(t *testing.T, board *game.Board) {
	t.Helper()
	rows, cols := board.Dimensions()

	mines := 0
	for entry := range board.Values() {
		if entry.Value == game.Mine {
			mines++
		} else if entry.Value <= 0 || entry.Value > 8 {
			t.Fatalf("Stored value %d at (%d, %d) is neither a mine nor a count", entry.Value, entry.Row, entry.Col)
		}
	}
	if mines != board.MineCount() {
		t.Fatalf("Expected %d mines, found %d", board.MineCount(), mines)
	}
	if board.ValueCount() > rows*cols {
		t.Fatalf("More stored values (%d) than cells (%d)", board.ValueCount(), rows*cols)
	}

	for coord := range board.Cells() {
		value := valueAt(t, board, coord.Row, coord.Col)
		if value == game.Mine {
			continue
		}
		neighborMines := 0
		for _, neighbor := range board.Neighbors(coord) {
			if valueAt(t, board, neighbor.Row, neighbor.Col) == game.Mine {
				neighborMines++
			}
		}
		if value != neighborMines {
			t.Fatalf("Cell %v holds %d but has %d mined neighbors", coord, value, neighborMines)
		}
	}
}

// checkAllRevealed verifies that a finished board reads every cell as
// revealed without storing a state for any of them
func checkAllRevealed(t *testing.T, board *game.Board) {
	t.Helper()
	if board.DefaultState() != game.Revealed || board.StateCount() != 0 || board.FlaggedCount() != 0 {
		t.Fatalf("Expected an empty state grid defaulting to revealed, got default %v with %d states and %d flags",
			board.DefaultState(), board.StateCount(), board.FlaggedCount())
	}
	for coord := range board.Cells() {
		if state := stateAt(t, board, coord.Row, coord.Col); state != game.Revealed {
			t.Fatalf("Cell %v should be revealed, got %v", coord, state)
		}
	}
}

func TestBoardConstruction(t *testing.T) {
	cases := []struct {
		rows, cols, mines int
		valid             bool
	}{
		{9, 9, 10, true},
		{9, 9, 80, true},
		{1, 2, 1, true},
		{9, 9, 0, false},
		{9, 9, 81, false},
		{9, 9, -3, false},
		{0, 9, 1, false},
		{9, 0, 1, false},
		{1, 1, 1, false},
		{math.MaxInt/2 + 1, 2, 1, false},
		{math.MaxInt, math.MaxInt, 1, false},
	}

	for _, c := range cases {
		board, err := game.NewBoard(game.BoardConfig{Rows: c.rows, Cols: c.cols, Mines: c.mines})
		if c.valid {
			if err != nil {
				t.Errorf("%dx%d with %d mines: unexpected error %v", c.rows, c.cols, c.mines, err)
				continue
			}
			if board.Phase() != game.NotStarted || board.ValueCount() != 0 || board.StateCount() != 0 {
				t.Errorf("%dx%d with %d mines: board not empty after construction", c.rows, c.cols, c.mines)
			}
			continue
		}
		if !errors.Is(err, game.ErrConfiguration) {
			t.Errorf("%dx%d with %d mines: expected ErrConfiguration, got %v", c.rows, c.cols, c.mines, err)
		}
		var configErr *game.ConfigError
		if !errors.As(err, &configErr) {
			t.Errorf("%dx%d with %d mines: expected *ConfigError, got %T", c.rows, c.cols, c.mines, err)
		}
	}
}

func TestOutOfRangeCommands(t *testing.T) {
	board := newBoard(t, 3, 4, 2, nil)
	for _, coord := range []game.Coord{{-1, 0}, {0, -1}, {3, 0}, {0, 4}} {
		if err := board.Reveal(coord.Row, coord.Col); !errors.Is(err, game.ErrOutOfRange) {
			t.Errorf("Reveal%v: expected ErrOutOfRange, got %v", coord, err)
		}
		if err := board.ToggleFlag(coord.Row, coord.Col); !errors.Is(err, game.ErrOutOfRange) {
			t.Errorf("ToggleFlag%v: expected ErrOutOfRange, got %v", coord, err)
		}
		if _, err := board.CellValue(coord.Row, coord.Col); !errors.Is(err, game.ErrOutOfRange) {
			t.Errorf("CellValue%v: expected ErrOutOfRange, got %v", coord, err)
		}
		if _, err := board.CellState(coord.Row, coord.Col); !errors.Is(err, game.ErrOutOfRange) {
			t.Errorf("CellState%v: expected ErrOutOfRange, got %v", coord, err)
		}
	}

	// Range errors are reported even when the phase forbids the action
	board.Reset()
	if err := board.Reveal(7, 7); !errors.Is(err, game.ErrOutOfRange) {
		t.Fatalf("Expected ErrOutOfRange before start, got %v", err)
	}
}

func TestCommandsIgnoredBeforeStart(t *testing.T) {
	board, err := game.NewBoard(game.BoardConfig{Rows: 3, Cols: 3, Mines: 1, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	mustReveal(t, board, 1, 1)
	mustFlag(t, board, 0, 0)
	if board.MinesPlaced() || board.StateCount() != 0 || board.FlaggedCount() != 0 {
		t.Fatalf("Commands before Start must be no-ops")
	}

	board.Start()
	board.Start()
	if board.Phase() != game.Playing {
		t.Fatalf("Expected Playing after Start, got %v", board.Phase())
	}
}

// Scenario B: a 1x3 board whose first reveal is the middle cell
func TestFirstRevealInMiddleOfStrip(t *testing.T) {
	for _, draw := range []int{0, 1} {
		board := newBoard(t, 1, 3, 1, &scriptedRand{draws: []int{draw}})
		mustReveal(t, board, 0, 1)

		if !board.MinesPlaced() {
			t.Fatalf("Mines should be placed by the first reveal")
		}
		protected, ok := board.Protected()
		if !ok || protected != (game.Coord{Row: 0, Col: 1}) {
			t.Fatalf("Expected protected cell (0, 1), got %v (%v)", protected, ok)
		}

		left, right := valueAt(t, board, 0, 0), valueAt(t, board, 0, 2)
		if (left == game.Mine) == (right == game.Mine) {
			t.Fatalf("Exactly one end should hold the mine, got %d and %d", left, right)
		}
		if value := valueAt(t, board, 0, 1); value != 1 {
			t.Fatalf("Middle cell should count one mine, got %d", value)
		}
		if board.Phase() != game.Playing {
			t.Fatalf("Expected Playing after first reveal, got %v", board.Phase())
		}
		checkMineField(t, board)

		safe := 0
		if left == game.Mine {
			safe = 2
		}
		mustReveal(t, board, 0, safe)
		if board.Phase() != game.Won {
			t.Fatalf("Expected Won after revealing the last safe cell, got %v", board.Phase())
		}
	}
}

func TestFirstRevealNeverLoses(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		rows, cols := 2+rnd.Intn(8), 2+rnd.Intn(8)
		mines := 1 + rnd.Intn(rows*cols-1)

		board := newBoard(t, rows, cols, mines, rnd)
		row, col := rnd.Intn(rows), rnd.Intn(cols)
		mustReveal(t, board, row, col)

		if board.Phase() == game.Lost {
			t.Fatalf("Seed %d: first reveal at (%d, %d) lost a %dx%d board with %d mines", seed, row, col, rows, cols, mines)
		}
		if valueAt(t, board, row, col) == game.Mine {
			t.Fatalf("Seed %d: mine placed on the first revealed cell", seed)
		}
		checkMineField(t, board)
	}
}

func TestFullBoardWinsOnFirstReveal(t *testing.T) {
	board := newBoard(t, 5, 5, 24, rand.New(rand.NewSource(7)))
	mustReveal(t, board, 2, 3)
	if board.Phase() != game.Won {
		t.Fatalf("The only safe cell was revealed, expected Won, got %v", board.Phase())
	}
	checkAllRevealed(t, board)
}

// twoMineBoard is 4x4 with mines at (0, 0) and (0, 3), first revealed at (3, 0):
//
//	* 1 1 *
//	1 1 1 1
//	0 0 0 0
//	0 0 0 0
func twoMineBoard(t *testing.T) *game.Board {
	t.Helper()
	board := newBoard(t, 4, 4, 2, &scriptedRand{draws: []int{0, 3}})
	mustReveal(t, board, 3, 0)
	if valueAt(t, board, 0, 0) != game.Mine || valueAt(t, board, 0, 3) != game.Mine {
		t.Fatalf("Unexpected mine layout")
	}
	return board
}

func TestCascadeStopsAtNumbers(t *testing.T) {
	board := twoMineBoard(t)
	checkMineField(t, board)

	if board.StateCount() != 12 {
		t.Fatalf("Expected the cascade to reveal 12 cells, got %d", board.StateCount())
	}
	for col := 0; col < 4; col++ {
		if state := stateAt(t, board, 0, col); state != game.Hidden {
			t.Fatalf("Cell (0, %d) should stay hidden, got %v", col, state)
		}
		if state := stateAt(t, board, 1, col); state != game.Revealed {
			t.Fatalf("Cell (1, %d) should be revealed, got %v", col, state)
		}
	}
	if board.Phase() != game.Playing {
		t.Fatalf("Expected Playing, got %v", board.Phase())
	}
}

func TestCascadeNeverRevealsMine(t *testing.T) {
	for seed := int64(1); seed <= 100; seed++ {
		board := newBoard(t, 12, 12, 15, rand.New(rand.NewSource(seed)))
		mustReveal(t, board, 6, 6)
		if board.Phase() == game.Lost {
			t.Fatalf("Seed %d: cascade revealed a mine", seed)
		}
		if board.Phase() != game.Playing {
			continue
		}
		for entry := range board.States() {
			if entry.Value == game.Revealed && valueAt(t, board, entry.Row, entry.Col) == game.Mine {
				t.Fatalf("Seed %d: mine at (%d, %d) revealed", seed, entry.Row, entry.Col)
			}
		}
	}
}

func TestLargeEmptyBoardCascade(t *testing.T) {
	board := newBoard(t, 300, 300, 1, &scriptedRand{draws: []int{0}})
	mustReveal(t, board, 299, 299)
	if board.Phase() != game.Won {
		t.Fatalf("Expected a single reveal to clear the board, got %v", board.Phase())
	}
	if board.StateCount() != 0 {
		t.Fatalf("A finished board should store no states, got %d", board.StateCount())
	}
	if stateAt(t, board, 150, 150) != game.Revealed || stateAt(t, board, 0, 0) != game.Revealed {
		t.Fatalf("Every cell should read as revealed once the game is won")
	}
}

func TestWinIgnoresFlags(t *testing.T) {
	board := twoMineBoard(t)
	mustFlag(t, board, 0, 0)
	mustFlag(t, board, 0, 3)

	mustReveal(t, board, 0, 1)
	if board.Phase() != game.Playing {
		t.Fatalf("One safe cell remains, expected Playing, got %v", board.Phase())
	}
	rows, cols := board.Dimensions()
	if board.StateCount()-board.FlaggedCount() == rows*cols-board.MineCount() {
		t.Fatalf("Win condition met early")
	}

	mustReveal(t, board, 0, 2)
	if board.Phase() != game.Won {
		t.Fatalf("Expected Won, got %v", board.Phase())
	}
}

func TestRevealLosesOnMine(t *testing.T) {
	board := twoMineBoard(t)
	mustReveal(t, board, 0, 3)

	if board.Phase() != game.Lost {
		t.Fatalf("Expected Lost, got %v", board.Phase())
	}
	detonated, ok := board.Detonated()
	if !ok || detonated != (game.Coord{Row: 0, Col: 3}) {
		t.Fatalf("Expected detonated mine at (0, 3), got %v (%v)", detonated, ok)
	}
	checkAllRevealed(t, board)

	// Terminal phases ignore further commands
	mustFlag(t, board, 0, 0)
	mustReveal(t, board, 0, 1)
	board.Start()
	if board.Phase() != game.Lost || board.FlaggedCount() != 0 {
		t.Fatalf("Commands after losing must be no-ops")
	}
}

func TestToggleFlag(t *testing.T) {
	board := twoMineBoard(t)

	mustFlag(t, board, 0, 1)
	if stateAt(t, board, 0, 1) != game.Flagged || board.FlaggedCount() != 1 {
		t.Fatalf("Expected a flag at (0, 1)")
	}

	// Flagged cells cannot be revealed
	mustReveal(t, board, 0, 1)
	if stateAt(t, board, 0, 1) != game.Flagged {
		t.Fatalf("Revealing a flagged cell must be a no-op")
	}

	mustFlag(t, board, 0, 1)
	if stateAt(t, board, 0, 1) != game.Hidden || board.FlaggedCount() != 0 {
		t.Fatalf("Flagging twice should return the cell to hidden")
	}

	// Revealed cells cannot be flagged
	mustFlag(t, board, 3, 3)
	if stateAt(t, board, 3, 3) != game.Revealed || board.FlaggedCount() != 0 {
		t.Fatalf("Flagging a revealed cell must be a no-op")
	}
}

func TestFlagBeforeFirstReveal(t *testing.T) {
	board := newBoard(t, 3, 3, 1, &scriptedRand{draws: []int{0}})
	mustFlag(t, board, 2, 2)
	if board.MinesPlaced() {
		t.Fatalf("Flagging must not place mines")
	}
	mustReveal(t, board, 1, 1)
	if board.FlaggedCount() != 1 || stateAt(t, board, 2, 2) != game.Flagged {
		t.Fatalf("Flag lost across the first reveal")
	}
}

// chordBoard is 3x3 with mines at (0, 0) and (0, 2), first revealed at (1, 1):
//
//	* 2 *
//	1 2 1
//	0 0 0
func chordBoard(t *testing.T) *game.Board {
	t.Helper()
	board := newBoard(t, 3, 3, 2, &scriptedRand{draws: []int{0, 2}})
	mustReveal(t, board, 1, 1)
	if valueAt(t, board, 0, 0) != game.Mine || valueAt(t, board, 0, 2) != game.Mine {
		t.Fatalf("Unexpected mine layout")
	}
	if valueAt(t, board, 1, 1) != 2 || board.StateCount() != 1 {
		t.Fatalf("Expected a single revealed 2 at (1, 1)")
	}
	return board
}

func TestChordWithCorrectFlags(t *testing.T) {
	board := chordBoard(t)
	mustFlag(t, board, 0, 0)
	mustFlag(t, board, 0, 2)
	mustReveal(t, board, 1, 1)

	if board.Phase() != game.Won {
		t.Fatalf("Expected the chord to win, got %v", board.Phase())
	}
}

// Scenario C: flags are not checked before a chord
func TestChordWithWrongFlagsLoses(t *testing.T) {
	board := chordBoard(t)
	mustFlag(t, board, 0, 0)
	mustFlag(t, board, 0, 1)
	mustReveal(t, board, 1, 1)

	if board.Phase() != game.Lost {
		t.Fatalf("Expected the chord to lose, got %v", board.Phase())
	}
	detonated, _ := board.Detonated()
	if detonated != (game.Coord{Row: 0, Col: 2}) {
		t.Fatalf("Expected (0, 2) to detonate, got %v", detonated)
	}
}

func TestChordNeedsEnoughFlags(t *testing.T) {
	board := chordBoard(t)
	mustFlag(t, board, 0, 0)
	mustReveal(t, board, 1, 1)

	if board.StateCount() != 2 || board.Phase() != game.Playing {
		t.Fatalf("Chord with too few flags must be a no-op")
	}
}

func TestRevealedEmptyCellIsNoop(t *testing.T) {
	board := twoMineBoard(t)
	before := board.StateCount()
	mustReveal(t, board, 3, 3)
	if board.StateCount() != before || board.Phase() != game.Playing {
		t.Fatalf("Re-revealing an empty cell must be a no-op")
	}
}

func TestReset(t *testing.T) {
	board := chordBoard(t)
	mustFlag(t, board, 0, 0)
	mustFlag(t, board, 0, 1)
	mustReveal(t, board, 1, 1)

	checkAllRevealed(t, board)

	board.Reset()
	if board.Phase() != game.NotStarted {
		t.Fatalf("Expected NotStarted after Reset, got %v", board.Phase())
	}
	if board.DefaultState() != game.Hidden || stateAt(t, board, 1, 1) != game.Hidden {
		t.Fatalf("Reset must hide every cell again")
	}
	if board.FlaggedCount() != 0 || board.ValueCount() != 0 || board.StateCount() != 0 {
		t.Fatalf("Reset must clear both grids and the flag count")
	}
	if board.MinesPlaced() {
		t.Fatalf("Reset must clear the placed mines")
	}
	if _, ok := board.Protected(); ok {
		t.Fatalf("Reset must clear the protected cell")
	}
	if _, ok := board.Detonated(); ok {
		t.Fatalf("Reset must clear the detonated cell")
	}

	board.Start()
	mustReveal(t, board, 2, 2)
	if !board.MinesPlaced() || board.Phase() == game.Lost {
		t.Fatalf("A reset board should play a fresh game")
	}
	protected, _ := board.Protected()
	if protected != (game.Coord{Row: 2, Col: 2}) {
		t.Fatalf("Expected new protected cell (2, 2), got %v", protected)
	}
	checkMineField(t, board)
}

func TestSafeAreaClearsNeighbors(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		board, err := game.NewBoard(game.BoardConfig{
			Rows:   5,
			Cols:   5,
			Mines:  16,
			Mode:   game.SafeArea,
			Rand:   rand.New(rand.NewSource(seed)),
			Logger: quietLogger(),
		})
		if err != nil {
			t.Fatalf("Failed to create board: %v", err)
		}
		board.Start()
		mustReveal(t, board, 2, 2)

		if value := valueAt(t, board, 2, 2); value != 0 {
			t.Fatalf("Seed %d: first cell should have no mined neighbors, got %d", seed, value)
		}
		checkMineField(t, board)
	}
}

func TestSafeAreaFallsBackWhenCrowded(t *testing.T) {
	board, err := game.NewBoard(game.BoardConfig{
		Rows:   3,
		Cols:   3,
		Mines:  8,
		Mode:   game.SafeArea,
		Logger: quietLogger(),
	})
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	board.Start()
	mustReveal(t, board, 1, 1)
	if board.Phase() != game.Won {
		t.Fatalf("Expected the only safe cell to win, got %v", board.Phase())
	}
	if valueAt(t, board, 1, 1) != 8 {
		t.Fatalf("Expected the center to count 8 mines")
	}
}
