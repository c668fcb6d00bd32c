package game

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// BoardSnapshot is an exportable record of a board. Board holds one line per
// row, using:
//
//	O  mine          *  the mine that lost the game   F  flagged mine
//	#  hidden cell   f  flagged cell                  .  revealed empty cell
//	1-8 revealed numbered cell
type BoardSnapshot struct {
	Rows      int    `yaml:"rows"`
	Cols      int    `yaml:"cols"`
	Mines     int    `yaml:"mines"`
	Mode      string `yaml:"mode"`
	Phase     string `yaml:"phase"`
	Flags     int    `yaml:"flags"`
	Protected []int  `yaml:"protected,flow,omitempty"`
	Detonated []int  `yaml:"detonated,flow,omitempty"`
	Board     string `yaml:"board"`
}

func (board *Board) Snapshot() *BoardSnapshot {
	snapshot := &BoardSnapshot{
		Rows:  board.rows,
		Cols:  board.cols,
		Mines: board.numMines,
		Mode:  board.mode.String(),
		Phase: board.phase.String(),
		Flags: board.numFlags,
		Board: board.serialize(),
	}
	if protected, ok := board.Protected(); ok {
		snapshot.Protected = []int{protected.Row, protected.Col}
	}
	if detonated, ok := board.Detonated(); ok {
		snapshot.Detonated = []int{detonated.Row, detonated.Col}
	}
	return snapshot
}

// serialize only visits stored entries. Every other cell holds no mine and
// is in the state grid's default state.
func (board *Board) serialize() string {
	revealed := board.states.Default() == Revealed
	fill := "#"
	if revealed {
		fill = "."
	}

	lineWidth := board.cols + 1
	out := []byte(strings.Repeat(strings.Repeat(fill, board.cols)+"\n", board.rows))
	at := func(row, col int) *byte {
		return &out[row*lineWidth+col]
	}

	for entry := range board.values.Entries() {
		switch {
		case entry.Value == Mine:
			*at(entry.Row, entry.Col) = 'O'
		case revealed:
			*at(entry.Row, entry.Col) = strconv.Itoa(entry.Value)[0]
		}
	}

	for entry := range board.states.Entries() {
		isMine := board.valueAt(Coord{entry.Row, entry.Col}) == Mine
		cell := at(entry.Row, entry.Col)

		switch {
		case entry.Value == Flagged && isMine:
			*cell = 'F'
		case entry.Value == Flagged:
			*cell = 'f'
		case isMine:
			// Revealed mines keep their mine glyph
		default:
			if value := board.valueAt(Coord{entry.Row, entry.Col}); value > 0 {
				*cell = strconv.Itoa(value)[0]
			} else {
				*cell = '.'
			}
		}
	}

	if board.detonated != nil {
		*at(board.detonated.Row, board.detonated.Col) = '*'
	}

	return strings.TrimSuffix(string(out), "\n")
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
