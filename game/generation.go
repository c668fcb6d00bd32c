package game

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/they4kman/sparsesweep/util/collections"
)

// protectedArea returns the linear indexes, ascending, which must stay free of
// mines given the first revealed cell
func (board *Board) protectedArea(first Coord) []int {
	area := []Coord{first}
	if board.mode == SafeArea {
		withNeighbors := append(area, board.Neighbors(first)...)
		if board.NumCells()-len(withNeighbors) >= board.numMines {
			area = withNeighbors
		}
	}

	indexes := make([]int, len(area))
	for i, coord := range area {
		indexes[i] = coord.Row*board.cols + coord.Col
	}
	slices.Sort(indexes)
	return indexes
}

// placeMines picks the mine positions among every cell outside the protected
// area, using Floyd's sampling algorithm: exactly one draw per mine, and no
// retries however the draws fall.
func (board *Board) placeMines(first Coord) {
	excluded := board.protectedArea(first)
	available := board.NumCells() - len(excluded)

	chosen := collections.NewSet[int]()
	order := make([]int, 0, board.numMines)
	for j := available - board.numMines; j < available; j++ {
		pick := board.rand.Intn(j + 1)
		if chosen.Contains(pick) {
			pick = j
		}
		chosen.Add(pick)
		order = append(order, pick)
	}

	for _, pick := range order {
		// Map the pick from the available cells back onto the board by
		// stepping over each excluded index at or below it
		idx := pick
		for _, skip := range excluded {
			if idx >= skip {
				idx++
			}
		}
		board.placeMine(Coord{idx / board.cols, idx % board.cols})
	}

	board.minesPlaced = true
	board.log.WithFields(logrus.Fields{
		"mines":     board.numMines,
		"protected": first,
		"mode":      board.mode,
		"entries":   board.values.Count(),
	}).Debug("mines placed")
}

// placeMine stores a mine, replacing any count there, and increments the count
// of each neighbor that is not itself a mine
func (board *Board) placeMine(coord Coord) {
	board.setValue(coord, Mine)
	for _, neighbor := range board.Neighbors(coord) {
		if value := board.valueAt(neighbor); value != Mine {
			board.setValue(neighbor, value+1)
		}
	}
}
