package game

import "github.com/sirupsen/logrus"

// Director plays a board through its public commands
type Director interface {
	/**
	 * Initialize the director
	 */
	Init(*Board)

	/**
	 * Perform a single command on the board. Returns false if the director
	 * could not find anything to do.
	 */
	Act() (bool, error)
}

// Autoplay starts the board and lets the director act until the game is
// over, the director gives up, or maxSteps actions have been taken (no limit
// if maxSteps <= 0). It returns the number of actions taken.
func Autoplay(board *Board, director Director, maxSteps int) (int, error) {
	board.Start()
	director.Init(board)

	steps := 0
	for board.Phase() == Playing && (maxSteps <= 0 || steps < maxSteps) {
		acted, err := director.Act()
		if err != nil {
			return steps, err
		}
		if !acted {
			break
		}
		steps++
	}

	board.log.WithFields(logrus.Fields{
		"steps": steps,
		"phase": board.Phase(),
	}).Debug("autoplay finished")
	return steps, nil
}
