package sparse

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("invalid configuration")
	ErrOutOfRange    = errors.New("coordinate out of range")
)

// ConfigError reports grid dimensions that cannot hold a single cell, or
// whose cell count overflows an int
type ConfigError struct {
	Rows, Cols int
}

func (e *ConfigError) Error() string {
	if e.Rows <= 0 || e.Cols <= 0 {
		return fmt.Sprintf("cannot create a %dx%d grid: dimensions must be positive", e.Rows, e.Cols)
	}
	return fmt.Sprintf("cannot create a %dx%d grid: too many cells", e.Rows, e.Cols)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// RangeError reports a coordinate outside [0,Rows)×[0,Cols)
type RangeError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("cell (%d, %d) out of range - grid (%d, %d)", e.Row, e.Col, e.Rows, e.Cols)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
