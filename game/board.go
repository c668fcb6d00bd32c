package game

import (
	"iter"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/they4kman/sparsesweep/util/sparse"
)

// Rand is the source of randomness used to place mines. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type BoardConfig struct {
	Rows, Cols int
	Mines      int
	Mode       Mode

	// Rand places the mines. A time-seeded source is used when nil.
	Rand Rand
	// Logger defaults to the logrus standard logger
	Logger logrus.FieldLogger
}

// Board is a minesweeper game whose cell values and cell states are each
// held in a sparse grid. A cell with no mine and no mined neighbor has no
// entry in values, and a hidden cell has no entry in states.
type Board struct {
	rows, cols int
	numMines   int
	mode       Mode

	values *sparse.Grid[int]
	states *sparse.Grid[CellState]

	phase       Phase
	numFlags    int
	protected   *Coord
	detonated   *Coord
	minesPlaced bool

	rand Rand
	log  logrus.FieldLogger
}

func NewBoard(config BoardConfig) (*Board, error) {
	if err := validateDimensions(config.Rows, config.Cols, config.Mines); err != nil {
		return nil, err
	}

	values, err := sparse.NewGrid(config.Rows, config.Cols, 0)
	if err != nil {
		return nil, err
	}
	states, err := sparse.NewGrid(config.Rows, config.Cols, Hidden)
	if err != nil {
		return nil, err
	}

	board := &Board{
		rows:     config.Rows,
		cols:     config.Cols,
		numMines: config.Mines,
		mode:     config.Mode,
		values:   values,
		states:   states,
		phase:    NotStarted,
		rand:     config.Rand,
		log:      config.Logger,
	}
	if board.rand == nil {
		board.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if board.log == nil {
		board.log = logrus.StandardLogger()
	}
	return board, nil
}

func (board *Board) Dimensions() (rows, cols int) {
	return board.rows, board.cols
}

func (board *Board) NumCells() int {
	return board.rows * board.cols
}

func (board *Board) MineCount() int {
	return board.numMines
}

func (board *Board) FlaggedCount() int {
	return board.numFlags
}

func (board *Board) Phase() Phase {
	return board.phase
}

func (board *Board) Mode() Mode {
	return board.mode
}

func (board *Board) MinesPlaced() bool {
	return board.minesPlaced
}

// Protected returns the first cell revealed since the last reset
func (board *Board) Protected() (Coord, bool) {
	if board.protected == nil {
		return Coord{}, false
	}
	return *board.protected, true
}

// Detonated returns the mine whose reveal lost the game
func (board *Board) Detonated() (Coord, bool) {
	if board.detonated == nil {
		return Coord{}, false
	}
	return *board.detonated, true
}

// CellValue returns -1 for a mine, otherwise the number of neighboring mines
func (board *Board) CellValue(row, col int) (int, error) {
	return board.values.Get(row, col)
}

func (board *Board) CellState(row, col int) (CellState, error) {
	return board.states.Get(row, col)
}

// ValueCount returns the number of cells holding a mine or a mine count
func (board *Board) ValueCount() int {
	return board.values.Count()
}

// StateCount returns the number of cells with a stored state. While the game
// is in play those are the flagged and revealed cells; once it is over, no
// state is stored at all.
func (board *Board) StateCount() int {
	return board.states.Count()
}

// DefaultState is the state of every cell that States does not yield: Hidden
// while the game is in play, Revealed once it is over
func (board *Board) DefaultState() CellState {
	return board.states.Default()
}

// Values yields every mine and numbered cell in row-major order
func (board *Board) Values() iter.Seq[sparse.Entry[int]] {
	return board.values.Entries()
}

// States yields every cell whose state differs from DefaultState, in
// row-major order
func (board *Board) States() iter.Seq[sparse.Entry[CellState]] {
	return board.states.Entries()
}

func (board *Board) setPhase(act action) bool {
	next, ok := transition(board.phase, act)
	if !ok {
		return false
	}
	if next != board.phase {
		board.log.WithFields(logrus.Fields{
			"from": board.phase,
			"to":   next,
		}).Debug("phase changed")
	}
	board.phase = next
	return true
}

func (board *Board) Start() {
	board.setPhase(actStart)
}

// Reset discards both grids and every counter, returning the board to NotStarted
func (board *Board) Reset() {
	board.setPhase(actReset)
	board.values.Clear()
	board.states = board.newStates(Hidden)
	board.numFlags = 0
	board.protected = nil
	board.detonated = nil
	board.minesPlaced = false
}

// ToggleFlag flags a hidden cell, or unflags a flagged one
func (board *Board) ToggleFlag(row, col int) error {
	state, err := board.states.Get(row, col)
	if err != nil {
		return err
	}
	if _, ok := transition(board.phase, actFlag); !ok {
		return nil
	}

	coord := Coord{row, col}
	switch state {
	case Revealed:
		return nil
	case Flagged:
		board.setState(coord, Hidden)
		board.numFlags--
	default:
		board.setState(coord, Flagged)
		board.numFlags++
	}

	board.log.WithFields(logrus.Fields{
		"cell":  coord,
		"flags": board.numFlags,
	}).Debug("flag toggled")
	return nil
}

// Reveal opens a hidden cell, or chords an already revealed numbered cell.
// The first reveal after a reset places the mines, never on the revealed cell.
func (board *Board) Reveal(row, col int) error {
	state, err := board.states.Get(row, col)
	if err != nil {
		return err
	}
	if _, ok := transition(board.phase, actReveal); !ok {
		return nil
	}

	coord := Coord{row, col}
	switch state {
	case Flagged:
		// A flag must be removed before the cell can be revealed. The win
		// condition counts on flagged cells never becoming revealed here.
		return nil
	case Hidden:
		if !board.minesPlaced {
			board.protected = &coord
			board.placeMines(coord)
		}
		board.open(coord)
	case Revealed:
		board.chord(coord)
	}
	return nil
}

// hasWon compares the revealed non-flag cells against the non-mine cells
func (board *Board) hasWon() bool {
	return board.states.Count()-board.numFlags == board.NumCells()-board.numMines
}

func (board *Board) win() {
	if !board.setPhase(actWin) {
		return
	}
	board.revealAll()
	board.log.WithFields(logrus.Fields{
		"rows":  board.rows,
		"cols":  board.cols,
		"mines": board.numMines,
	}).Info("game won")
}

func (board *Board) lose(mine Coord) {
	if !board.setPhase(actLose) {
		return
	}
	board.detonated = &mine
	board.revealAll()
	board.log.WithFields(logrus.Fields{
		"cell": mine,
	}).Info("game lost")
}

// revealAll reveals every cell for display once the game is over, by
// replacing the state grid with an empty one whose default is Revealed.
// Flags go with the old grid.
func (board *Board) revealAll() {
	board.states = board.newStates(Revealed)
	board.numFlags = 0
}

func (board *Board) newStates(def CellState) *sparse.Grid[CellState] {
	// The dimensions were validated by NewBoard
	states, _ := sparse.NewGrid(board.rows, board.cols, def)
	return states
}
