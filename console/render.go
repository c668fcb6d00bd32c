package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/they4kman/sparsesweep/game"
)

const (
	HiddenGlyph  = "O"
	FlagGlyph    = "?"
	MineGlyph    = "*"
	EmptyGlyph   = " "
	cellSep      = "|"
	counterLabel = "? - "
)

// Glyph returns the character shown for a cell in the given state holding value
func Glyph(state game.CellState, value int) string {
	switch state {
	case game.Hidden:
		return HiddenGlyph
	case game.Flagged:
		return FlagGlyph
	}
	switch {
	case value == game.Mine:
		return MineGlyph
	case value == 0:
		return EmptyGlyph
	default:
		return strconv.Itoa(value)
	}
}

var (
	hiddenStyle = lipgloss.NewStyle().Faint(true)
	flagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	mineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	digitStyles = map[string]lipgloss.Style{
		"1": lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		"2": lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"3": lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		"4": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"5": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"6": lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"7": lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		"8": lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

// Renderer draws a board as a grid of glyphs with row and column indexes
type Renderer struct {
	Color bool
}

func (renderer *Renderer) style(glyph, padded string) string {
	if !renderer.Color {
		return padded
	}
	switch glyph {
	case HiddenGlyph:
		return hiddenStyle.Render(padded)
	case FlagGlyph:
		return flagStyle.Render(padded)
	case MineGlyph:
		return mineStyle.Render(padded)
	}
	if style, ok := digitStyles[glyph]; ok {
		return style.Render(padded)
	}
	return padded
}

// Render draws the board. Every cell starts out as the glyph of the board's
// default state; only cells with a stored value or state are looked up.
func (renderer *Renderer) Render(board *game.Board) string {
	rows, cols := board.Dimensions()

	base := Glyph(board.DefaultState(), 0)
	glyphs := make([][]string, rows)
	for row := range glyphs {
		glyphs[row] = make([]string, cols)
		for col := range glyphs[row] {
			glyphs[row][col] = base
		}
	}
	for entry := range board.Values() {
		state, _ := board.CellState(entry.Row, entry.Col)
		glyphs[entry.Row][entry.Col] = Glyph(state, entry.Value)
	}
	for entry := range board.States() {
		value, _ := board.CellValue(entry.Row, entry.Col)
		glyphs[entry.Row][entry.Col] = Glyph(entry.Value, value)
	}

	labelWidth := len(strconv.Itoa(rows - 1))
	cellWidth := len(strconv.Itoa(cols - 1))

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth+1))
	for col := 0; col < cols; col++ {
		if col > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%*d", cellWidth, col)
	}
	fmt.Fprintf(&b, "    %s%d\n", counterLabel, board.FlaggedCount())

	for row, line := range glyphs {
		fmt.Fprintf(&b, "%*d ", labelWidth, row)
		for col, glyph := range line {
			if col > 0 {
				b.WriteString(cellSep)
			}
			b.WriteString(renderer.style(glyph, fmt.Sprintf("%*s", cellWidth, glyph)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
