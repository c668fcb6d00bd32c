package game

import "fmt"

// CellState is the visibility of a single cell
type CellState int

const (
	Hidden CellState = iota
	Flagged
	Revealed
)

var cellStateNames = map[CellState]string{
	Hidden:   "hidden",
	Flagged:  "flagged",
	Revealed: "revealed",
}

func (state CellState) String() string {
	if name, ok := cellStateNames[state]; ok {
		return name
	}
	return fmt.Sprintf("CellState(%d)", int(state))
}

type Phase int

const (
	NotStarted Phase = iota
	Playing
	Lost
	Won
)

var phaseNames = map[Phase]string{
	NotStarted: "not_started",
	Playing:    "playing",
	Lost:       "lost",
	Won:        "won",
}

func (phase Phase) String() string {
	if name, ok := phaseNames[phase]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(phase))
}

// IsOver returns whether the phase is terminal
func (phase Phase) IsOver() bool {
	return phase == Lost || phase == Won
}

// Mode controls which cells the first reveal keeps free of mines
type Mode int

const (
	// SafeCell keeps only the first revealed cell free of mines
	SafeCell Mode = iota
	// SafeArea also clears the first revealed cell's neighbors, whenever the
	// board has room for every mine outside that area
	SafeArea
)

var ModeNames = map[string]Mode{
	"safe-cell": SafeCell,
	"safe-area": SafeArea,
}

func (mode Mode) String() string {
	for name, m := range ModeNames {
		if m == mode {
			return name
		}
	}
	return fmt.Sprintf("Mode(%d)", int(mode))
}

// ParseMode looks up a mode by its name
func ParseMode(name string) (Mode, error) {
	if mode, ok := ModeNames[name]; ok {
		return mode, nil
	}
	return SafeCell, fmt.Errorf("invalid game mode %q", name)
}

// Mine is the stored value of a cell holding a mine
const Mine = -1
