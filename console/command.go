// Package console plays a board over a line-based text interface.
package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/they4kman/sparsesweep/game"
)

var ErrMalformedInput = errors.New("malformed input")

type CommandType int

const (
	RevealCommand CommandType = iota
	FlagCommand
)

// Command is a single turn of console input
type Command struct {
	Type     CommandType
	Row, Col int
}

func (command Command) String() string {
	switch command.Type {
	case FlagCommand:
		return fmt.Sprintf("(%d, %d) Flag", command.Row, command.Col)
	default:
		return fmt.Sprintf("(%d, %d) Reveal", command.Row, command.Col)
	}
}

// ParseCommand reads a line of the form "row col" or "row col ?". Tokens are
// separated by any character other than a digit or '?'. A third token of "?"
// toggles a flag; anything else reveals.
func ParseCommand(line string) (Command, error) {
	tokens := strings.FieldsFunc(line, func(r rune) bool {
		return (r < '0' || r > '9') && r != '?'
	})
	if len(tokens) < 2 {
		return Command{}, fmt.Errorf("%w: expected a row and a column, got %q", ErrMalformedInput, strings.TrimSpace(line))
	}

	row, err := strconv.Atoi(tokens[0])
	if err != nil {
		return Command{}, fmt.Errorf("%w: row %q is not a number", ErrMalformedInput, tokens[0])
	}
	col, err := strconv.Atoi(tokens[1])
	if err != nil {
		return Command{}, fmt.Errorf("%w: column %q is not a number", ErrMalformedInput, tokens[1])
	}

	command := Command{Type: RevealCommand, Row: row, Col: col}
	if len(tokens) >= 3 && tokens[2] == "?" {
		command.Type = FlagCommand
	}
	return command, nil
}

// Apply performs the command on the board
func (command Command) Apply(board *game.Board) error {
	switch command.Type {
	case FlagCommand:
		return board.ToggleFlag(command.Row, command.Col)
	default:
		return board.Reveal(command.Row, command.Col)
	}
}
