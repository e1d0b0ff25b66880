package landscape

import (
	"errors"
	"fmt"
)

// Engine error kinds. Typed errors below match these with errors.Is.
var (
	ErrTableBounds = errors.New("lookup table index out of range")
	ErrInputShape  = errors.New("input shape mismatch")
)

// TableBoundsError reports a computed lookup index that falls outside its table.
// Row and Col are the grid cell being synthesized, or -1 when the lookup is not
// tied to a cell (water, debug dumps).
type TableBoundsError struct {
	Table string
	Index int
	Len   int
	Row   int
	Col   int
}

func (e *TableBoundsError) Error() string {
	if e.Row < 0 && e.Col < 0 {
		return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Table, e.Index, e.Len)
	}
	return fmt.Sprintf("%s: index %d out of range [0,%d) at cell (%d,%d)",
		e.Table, e.Index, e.Len, e.Row, e.Col)
}

// Is reports whether target is ErrTableBounds.
func (e *TableBoundsError) Is(target error) bool {
	return target == ErrTableBounds
}

// InputShapeError reports a table or grid whose size differs from what the
// engine requires.
type InputShapeError struct {
	What string
	Got  int
	Want int
}

func (e *InputShapeError) Error() string {
	return fmt.Sprintf("%s: got size %d, want %d", e.What, e.Got, e.Want)
}

// Is reports whether target is ErrInputShape.
func (e *InputShapeError) Is(target error) bool {
	return target == ErrInputShape
}

func boundsErr(table string, index, length, row, col int) error {
	return &TableBoundsError{Table: table, Index: index, Len: length, Row: row, Col: col}
}
