package errortypes

import (
	"errors"
	"fmt"
)

// ErrSourcePos extends the error interface with the position in the template
// source where the error occurred.
type ErrSourcePos interface {
	error
	File() string
	Line() int
	Col() int
}

// NewErrSourcePosf creates an error conforming to the ErrSourcePos interface.
func NewErrSourcePosf(file string, line, col int, format string, args ...interface{}) error {
	return &errSourcePos{
		error: fmt.Errorf(format, args...),
		file:  file,
		line:  line,
		col:   col,
	}
}

// IsErrSourcePos reports whether any error in err's chain carries a source
// position.
func IsErrSourcePos(err error) bool {
	return ToErrSourcePos(err) != nil
}

// ToErrSourcePos returns the first error in err's chain that carries a source
// position, or nil if there is none.
func ToErrSourcePos(err error) ErrSourcePos {
	for err != nil {
		if pos, ok := err.(ErrSourcePos); ok {
			return pos
		}
		err = errors.Unwrap(err)
	}
	return nil
}

var _ ErrSourcePos = &errSourcePos{}

type errSourcePos struct {
	error
	file string
	line int
	col  int
}

func (e *errSourcePos) File() string { return e.file }
func (e *errSourcePos) Line() int    { return e.line }
func (e *errSourcePos) Col() int     { return e.col }
