package game

import (
	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
)

// open reveals a hidden cell. A mine loses the game; a cell without mined
// neighbors has its neighbors opened too, breadth-first from a work list so
// large empty regions cannot exhaust the stack.
func (board *Board) open(start Coord) {
	var pending deque.Deque[Coord]
	pending.PushBack(start)

	opened := 0
	for pending.Len() > 0 {
		coord := pending.PopFront()

		// A cell may be queued by several neighbors; only the first visit counts
		if board.stateAt(coord) != Hidden {
			continue
		}
		board.setState(coord, Revealed)
		opened++

		value := board.valueAt(coord)
		if value == Mine {
			board.lose(coord)
			return
		}

		if board.hasWon() {
			board.win()
			break
		}

		if value == 0 {
			for _, neighbor := range board.Neighbors(coord) {
				if board.stateAt(neighbor) == Hidden {
					pending.PushBack(neighbor)
				}
			}
		}
	}

	if opened > 1 {
		board.log.WithFields(logrus.Fields{
			"cell":   start,
			"opened": opened,
		}).Debug("cascade")
	}
}

// chord opens every hidden neighbor of a revealed numbered cell, once at least
// as many neighbors are flagged as the cell's number. Flags are not checked
// against the actual mines, so a wrong flag can lose the game.
func (board *Board) chord(coord Coord) {
	value := board.valueAt(coord)
	if value <= 0 {
		return
	}

	neighbors := board.Neighbors(coord)
	flagged := 0
	for _, neighbor := range neighbors {
		if board.stateAt(neighbor) == Flagged {
			flagged++
		}
	}
	if flagged < value {
		return
	}

	board.log.WithFields(logrus.Fields{
		"cell":    coord,
		"value":   value,
		"flagged": flagged,
	}).Debug("chord")

	for _, neighbor := range neighbors {
		if board.phase != Playing {
			return
		}
		if board.stateAt(neighbor) == Hidden {
			board.open(neighbor)
		}
	}
}
