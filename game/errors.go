package game

import (
	"fmt"
	"math"

	"github.com/they4kman/sparsesweep/util/sparse"
)

var (
	ErrConfiguration = sparse.ErrConfiguration
	ErrOutOfRange    = sparse.ErrOutOfRange
)

// ConfigError reports board parameters rejected at construction
type ConfigError struct {
	Rows, Cols int
	Mines      int
}

func (e *ConfigError) Error() string {
	switch {
	case e.Rows <= 0:
		return fmt.Sprintf("cannot create a board with %d rows", e.Rows)
	case e.Cols <= 0:
		return fmt.Sprintf("cannot create a board with %d columns", e.Cols)
	case e.Rows > math.MaxInt/e.Cols:
		return fmt.Sprintf("cannot create a %dx%d board: too many cells", e.Rows, e.Cols)
	case e.Mines <= 0:
		return fmt.Sprintf("cannot create a board with %d mines: at least one is required", e.Mines)
	default:
		return fmt.Sprintf("not enough space for %d mines (%d >= %d * %d)", e.Mines, e.Mines, e.Rows, e.Cols)
	}
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

func validateDimensions(rows, cols, mines int) error {
	if rows <= 0 || cols <= 0 || rows > math.MaxInt/cols || mines <= 0 || mines >= rows*cols {
		return &ConfigError{Rows: rows, Cols: cols, Mines: mines}
	}
	return nil
}
