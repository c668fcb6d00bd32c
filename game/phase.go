package game

type action int

const (
	actStart action = iota
	actReveal
	actFlag
	actLose
	actWin
	actReset
)

// transition holds every legality rule of the board. It returns the phase
// following the action, or false if the action is not allowed in the current
// phase, in which case the caller does nothing.
func transition(phase Phase, act action) (Phase, bool) {
	switch act {
	case actReset:
		return NotStarted, true
	case actStart:
		if phase == NotStarted {
			return Playing, true
		}
	case actReveal, actFlag:
		if phase == Playing {
			return Playing, true
		}
	case actLose:
		if phase == Playing {
			return Lost, true
		}
	case actWin:
		if phase == Playing {
			return Won, true
		}
	}
	return phase, false
}
