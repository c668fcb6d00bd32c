package game

import (
	"fmt"
	"iter"
)

// Coord addresses a single cell by row and column
type Coord struct {
	Row, Col int
}

func (coord Coord) String() string {
	return fmt.Sprintf("(%d, %d)", coord.Row, coord.Col)
}

var neighborOffsets = [8]Coord{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func (board *Board) inRange(coord Coord) bool {
	return board.values.InRange(coord.Row, coord.Col)
}

// Neighbors returns the in-range cells surrounding coord, in row-major order
func (board *Board) Neighbors(coord Coord) []Coord {
	neighbors := make([]Coord, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		neighbor := Coord{coord.Row + offset.Row, coord.Col + offset.Col}
		if board.inRange(neighbor) {
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}

// Cells yields every coordinate of the board in row-major order
func (board *Board) Cells() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for row := 0; row < board.rows; row++ {
			for col := 0; col < board.cols; col++ {
				if !yield(Coord{row, col}) {
					return
				}
			}
		}
	}
}

// valueAt and stateAt are only called with coordinates already known to be
// in range, so the grids' range errors cannot occur.
func (board *Board) valueAt(coord Coord) int {
	value, _ := board.values.Get(coord.Row, coord.Col)
	return value
}

func (board *Board) stateAt(coord Coord) CellState {
	state, _ := board.states.Get(coord.Row, coord.Col)
	return state
}

func (board *Board) setValue(coord Coord, value int) {
	_ = board.values.Set(coord.Row, coord.Col, value)
}

func (board *Board) setState(coord Coord, state CellState) {
	_ = board.states.Set(coord.Row, coord.Col, state)
}
