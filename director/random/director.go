package random

import (
	"math/rand"
	"time"

	"github.com/they4kman/sparsesweep/game"
	"github.com/they4kman/sparsesweep/util/collections"
)

// Director reveals hidden, unflagged cells at random
type Director struct {
	board *game.Board
	rand  game.Rand
}

// New creates a director drawing from rnd, or from a time-seeded source if nil
func New(rnd game.Rand) *Director {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Director{rand: rnd}
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	if director.rand == nil {
		director.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

// HiddenCells lists the board's hidden cells in row-major order
func HiddenCells(board *game.Board) []game.Coord {
	if board.DefaultState() != game.Hidden {
		// The game is over and every cell is revealed
		return nil
	}

	touched := collections.NewSet[game.Coord]()
	for entry := range board.States() {
		touched.Add(game.Coord{Row: entry.Row, Col: entry.Col})
	}

	hidden := make([]game.Coord, 0, board.NumCells()-touched.Len())
	for coord := range board.Cells() {
		if !touched.Contains(coord) {
			hidden = append(hidden, coord)
		}
	}
	return hidden
}

func (director *Director) Act() (bool, error) {
	if director.board.Phase() != game.Playing {
		return false, nil
	}

	hidden := HiddenCells(director.board)
	if len(hidden) == 0 {
		return false, nil
	}

	cell := hidden[director.rand.Intn(len(hidden))]
	if err := director.board.Reveal(cell.Row, cell.Col); err != nil {
		return false, err
	}
	return true, nil
}
