package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/they4kman/sparsesweep/game"
)

const (
	title        = "---------- sparsesweep ----------"
	maxLineBytes = 4096
	prompt       = "row, col: "
	tryAgain     = "*Try again*"
	wonMessage   = "YOU WON!!!"
	lostMessage  = "YOU LOST..."
	stoppedLabel = "Game stopped"
)

// Session reads one command per line from In and draws the board to Out
// after every turn
type Session struct {
	Board    *game.Board
	In       io.Reader
	Out      io.Writer
	Renderer *Renderer
	Log      logrus.FieldLogger
}

// Run plays until the game is over or the input ends. Cancelling ctx stops
// the session before the next turn.
func (session *Session) Run(ctx context.Context) (game.Phase, error) {
	board := session.Board
	renderer := session.Renderer
	if renderer == nil {
		renderer = &Renderer{}
	}
	log := session.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	board.Start()
	reader := bufio.NewReader(session.In)
	fmt.Fprintln(session.Out, title)

	for board.Phase() == game.Playing {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(session.Out, stoppedLabel)
			return board.Phase(), err
		}

		fmt.Fprint(session.Out, renderer.Render(board))
		fmt.Fprintln(session.Out)
		fmt.Fprint(session.Out, prompt)

		line, err := readLine(reader)
		if err != nil && !errors.Is(err, ErrMalformedInput) {
			fmt.Fprintln(session.Out)
			fmt.Fprintln(session.Out, stoppedLabel)
			if errors.Is(err, io.EOF) {
				err = nil
			}
			return board.Phase(), err
		}

		var command Command
		if err == nil {
			command, err = ParseCommand(line)
		}
		if err == nil {
			err = command.Apply(board)
		}
		if err != nil {
			if !errors.Is(err, ErrMalformedInput) && !errors.Is(err, game.ErrOutOfRange) {
				return board.Phase(), err
			}
			log.WithFields(logrus.Fields{
				"input": line,
				"error": err,
			}).Debug("rejected console input")
			fmt.Fprintf(session.Out, "\n%s (%v)\n", tryAgain, err)
		}
		fmt.Fprintln(session.Out)
	}

	fmt.Fprint(session.Out, renderer.Render(board))
	if board.Phase() == game.Won {
		fmt.Fprintln(session.Out, wonMessage)
	} else {
		fmt.Fprintln(session.Out, lostMessage)
	}
	return board.Phase(), nil
}

// readLine returns the next line of input without its line ending. A line
// longer than maxLineBytes is read to its end and rejected as malformed.
func readLine(reader *bufio.Reader) (string, error) {
	var line []byte
	tooLong := false
	for {
		fragment, isPrefix, err := reader.ReadLine()
		if err != nil {
			return "", err
		}
		if !tooLong {
			line = append(line, fragment...)
			if len(line) > maxLineBytes {
				tooLong = true
				line = nil
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", fmt.Errorf("%w: line longer than %d bytes", ErrMalformedInput, maxLineBytes)
	}
	return string(line), nil
}
