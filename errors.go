// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

import (
	"github.com/pkg/errors"
)

// ErrBadVar is returned when a clause references a variable outside
// [0, Varnum).
var ErrBadVar = errors.New("variable out of range")

// ErrEmptyClause is returned by AddClause when a clause simplifies to the
// empty clause at level 0 (spec.md §7 "Trivial UNSAT at parse").
var ErrEmptyClause = errors.New("empty clause: formula is trivially unsatisfiable")

// seterror accumulates an error on the solver, chaining with any previous
// one. This mirrors reduce/bdd.go's BDD.seterror: the solver keeps going
// whenever it can, but remembers the first cause.
func (s *Solver) seterror(cause error) error {
	if s.err != nil {
		s.err = errors.Wrap(s.err, cause.Error())
		return s.err
	}
	s.err = cause
	return s.err
}

// Error returns the error status of the solver, or nil if there has been
// none (spec.md §7).
func (s *Solver) Error() error { return s.err }
