package constraint

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/they4kman/sparsesweep/director/random"
	"github.com/they4kman/sparsesweep/game"
	"github.com/they4kman/sparsesweep/util/collections"
)

// Director plays moves it can deduce from the revealed numbers, and only
// guesses when no deduction is available
type Director struct {
	board    *game.Board
	fallback *random.Director
	log      logrus.FieldLogger

	observations       []*Observation
	observationsByCell map[game.Coord][]*Observation
}

// Observation states that exactly numMines of cells hold a mine
type Observation struct {
	origin   *game.Coord
	numMines int
	cells    collections.Set[game.Coord]
}

func (observation Observation) String() string {
	cells := make([]string, 0, observation.cells.Len())
	for _, cell := range sortedCells(observation.cells) {
		cells = append(cells, cell.String())
	}

	originRepr := "?"
	if observation.origin != nil {
		originRepr = observation.origin.String()
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, strings.Join(cells, ", "))
}

// New creates a director which guesses with fallback when stuck
func New(fallback *random.Director, logger logrus.FieldLogger) *Director {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Director{fallback: fallback, log: logger}
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	if director.fallback == nil {
		director.fallback = random.New(nil)
	}
	director.fallback.Init(board)
}

func (director *Director) Act() (bool, error) {
	if director.board.Phase() != game.Playing {
		return false, nil
	}

	director.observe()

	for _, actor := range []func() (bool, error){
		director.actDeliberate,
		director.actSubset,
	} {
		if acted, err := actor(); acted || err != nil {
			return acted, err
		}
	}

	director.log.Debug("no deduction available, guessing")
	return director.fallback.Act()
}

// observe rebuilds one observation per revealed numbered cell that still
// borders hidden cells
func (director *Director) observe() {
	board := director.board
	director.observations = nil
	director.observationsByCell = make(map[game.Coord][]*Observation)

	for entry := range board.Values() {
		if entry.Value <= 0 {
			continue
		}
		origin := game.Coord{Row: entry.Row, Col: entry.Col}
		if state, _ := board.CellState(origin.Row, origin.Col); state != game.Revealed {
			continue
		}

		observation := &Observation{
			origin:   &origin,
			numMines: entry.Value,
			cells:    collections.NewSet[game.Coord](),
		}
		for _, neighbor := range board.Neighbors(origin) {
			switch state, _ := board.CellState(neighbor.Row, neighbor.Col); state {
			case game.Flagged:
				observation.numMines--
			case game.Hidden:
				observation.cells.Add(neighbor)
			}
		}

		director.addObservation(observation)
	}
}

func (director *Director) addObservation(observation *Observation) {
	// Don't add vacuous observations
	if observation.cells.Len() == 0 {
		return
	}

	for cell := range observation.cells {
		for _, other := range director.observationsByCell[cell] {
			// Don't add duplicates
			if other.cells.Equal(observation.cells) {
				return
			}
		}
	}

	for cell := range observation.cells {
		director.observationsByCell[cell] = append(director.observationsByCell[cell], observation)
	}
	director.observations = append(director.observations, observation)
}

// actDeliberate flags a cell of an observation whose cells are all mines, or
// chords an observation whose mines are all flagged
func (director *Director) actDeliberate() (bool, error) {
	for _, observation := range director.observations {
		switch {
		case observation.numMines < 0:
			// More flags than mines around the origin; some flag is wrong
			continue
		case observation.numMines == observation.cells.Len():
			return director.flag(sortedCells(observation.cells)[0], observation)
		case observation.numMines == 0:
			origin := *observation.origin
			director.log.WithField("observation", observation).Debug("chord")
			return true, director.board.Reveal(origin.Row, origin.Col)
		}
	}
	return false, nil
}

// actSubset compares overlapping observations. When one observation's cells
// are a subset of another's, the remaining cells hold the difference of their
// mines.
func (director *Director) actSubset() (bool, error) {
	for _, observation := range director.observations {
		if observation.numMines < 0 {
			continue
		}

		visited := collections.NewSet[*Observation]()
		for cell := range observation.cells {
			for _, other := range director.observationsByCell[cell] {
				if other == observation || visited.Contains(other) || other.numMines < 0 {
					continue
				}
				visited.Add(other)

				if !observation.cells.IsSubset(other.cells) {
					continue
				}

				split := &Observation{
					numMines: other.numMines - observation.numMines,
					cells:    other.cells.Difference(observation.cells),
				}
				switch {
				case split.cells.Len() == 0:
					continue
				case split.numMines == 0:
					target := sortedCells(split.cells)[0]
					director.log.WithField("observation", split).Debug("reveal deduced safe cell")
					return true, director.board.Reveal(target.Row, target.Col)
				case split.numMines == split.cells.Len():
					return director.flag(sortedCells(split.cells)[0], split)
				}
			}
		}
	}
	return false, nil
}

func (director *Director) flag(cell game.Coord, observation *Observation) (bool, error) {
	director.log.WithField("observation", observation).Debug("flag deduced mine")
	return true, director.board.ToggleFlag(cell.Row, cell.Col)
}

// sortedCells orders cells row-major, so the director's choices repeat
func sortedCells(cells collections.Set[game.Coord]) []game.Coord {
	sorted := make([]game.Coord, 0, cells.Len())
	for cell := range cells {
		sorted = append(sorted, cell)
	}
	slices.SortFunc(sorted, func(a, b game.Coord) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return sorted
}
