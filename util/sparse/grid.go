// Package sparse provides a 2D grid which only materializes cells holding a
// value other than the grid's declared default.
package sparse

import (
	"iter"
	"math"

	g "github.com/zyedidia/generic"
	"github.com/zyedidia/generic/avl"
)

// Entry is a single stored cell of a Grid
type Entry[V any] struct {
	Row, Col int
	Value    V
}

// Grid is a rows×cols matrix backed by an ordered map keyed by the cell's
// linear index (row*cols + col). Cells equal to the default are never stored,
// so an in-order walk of the map is a row-major scan of the non-default cells.
type Grid[V comparable] struct {
	rows, cols int
	def        V

	entries *avl.Tree[int, V]
	count   int
}

// NewGrid creates an empty grid. Every cell initially reads as def. The
// number of cells must fit in an int, so that every cell has its own index.
func NewGrid[V comparable](rows, cols int, def V) (*Grid[V], error) {
	if rows <= 0 || cols <= 0 || rows > math.MaxInt/cols {
		return nil, &ConfigError{Rows: rows, Cols: cols}
	}
	return &Grid[V]{
		rows:    rows,
		cols:    cols,
		def:     def,
		entries: avl.New[int, V](g.Less[int]),
	}, nil
}

func (grid *Grid[V]) Rows() int {
	return grid.rows
}

func (grid *Grid[V]) Cols() int {
	return grid.cols
}

// Default returns the value of every cell that has no stored entry
func (grid *Grid[V]) Default() V {
	return grid.def
}

// InRange returns whether (row, col) lies within the grid
func (grid *Grid[V]) InRange(row, col int) bool {
	return row >= 0 && row < grid.rows && col >= 0 && col < grid.cols
}

func (grid *Grid[V]) index(row, col int) (int, error) {
	if !grid.InRange(row, col) {
		return 0, &RangeError{Row: row, Col: col, Rows: grid.rows, Cols: grid.cols}
	}
	return row*grid.cols + col, nil
}

// Get returns the value at (row, col), or the default if nothing is stored there
func (grid *Grid[V]) Get(row, col int) (V, error) {
	idx, err := grid.index(row, col)
	if err != nil {
		var zero V
		return zero, err
	}
	if value, ok := grid.entries.Get(idx); ok {
		return value, nil
	}
	return grid.def, nil
}

// Set stores value at (row, col). Setting the default removes any stored
// entry, keeping the grid sparse.
func (grid *Grid[V]) Set(row, col int, value V) error {
	idx, err := grid.index(row, col)
	if err != nil {
		return err
	}

	_, exists := grid.entries.Get(idx)
	if value == grid.def {
		if exists {
			grid.entries.Remove(idx)
			grid.count--
		}
		return nil
	}

	grid.entries.Put(idx, value)
	if !exists {
		grid.count++
	}
	return nil
}

// Count returns the number of stored (non-default) entries
func (grid *Grid[V]) Count() int {
	return grid.count
}

// Clear removes every stored entry
func (grid *Grid[V]) Clear() {
	grid.entries = avl.New[int, V](g.Less[int])
	grid.count = 0
}

// stopWalk unwinds an in-progress tree walk once the consumer stops
type stopWalk struct{}

// Entries returns the stored entries in row-major order. The sequence may be
// ranged over any number of times; each pass reflects the grid's contents at
// the time it runs. Breaking out of the loop abandons the rest of the walk.
func (grid *Grid[V]) Entries() iter.Seq[Entry[V]] {
	return func(yield func(Entry[V]) bool) {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(stopWalk); !ok {
					panic(r)
				}
			}
		}()
		grid.entries.Each(func(idx int, value V) {
			entry := Entry[V]{Row: idx / grid.cols, Col: idx % grid.cols, Value: value}
			if !yield(entry) {
				panic(stopWalk{})
			}
		})
	}
}
