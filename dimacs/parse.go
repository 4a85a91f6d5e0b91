// Package dimacs reads the DIMACS CNF text format (spec.md §6 "Input
// (CNF)") and loads it into an allsat.Solver. This is the "external
// collaborator" spec.md §1 explicitly puts out of scope for the core; it
// is built on the standard library plus github.com/pkg/errors for error
// wrapping, justified in DESIGN.md (no example repo or file in the
// retrieval pack parses DIMACS, or any line-oriented integer format close
// enough to be worth adapting).
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ttoda/allsat"
)

// Header is the "p cnf <nvars> <nclauses>" line.
type Header struct {
	Vars    int
	Clauses int
}

// ErrNoHeader is returned when the input ends before a "p cnf" line is
// seen.
var ErrNoHeader = errors.New("dimacs: missing \"p cnf\" header line")

// Parse reads DIMACS text from r and loads every clause into s, as
// spec.md §6 specifies: lines starting with 'c' or 'p' (other than the one
// header) are ignored; every other line is a whitespace-separated sequence
// of signed non-zero integers terminated by 0, one clause per line (a
// clause may also span multiple lines, its terminating 0 is what matters).
// Variables are numbered from 1 in the input and translated to allsat's
// 0-based Var here.
func Parse(r io.Reader, s *allsat.Solver) (Header, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var header Header
	seenHeader := false
	var pending []allsat.Lit

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			continue
		case 'p':
			if seenHeader {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "cnf" {
				return header, errors.Errorf("dimacs: malformed header %q", line)
			}
			nv, err := strconv.Atoi(fields[2])
			if err != nil {
				return header, errors.Wrap(err, "dimacs: bad variable count")
			}
			nc, err := strconv.Atoi(fields[3])
			if err != nil {
				return header, errors.Wrap(err, "dimacs: bad clause count")
			}
			header = Header{Vars: nv, Clauses: nc}
			seenHeader = true
			continue
		}
		if !seenHeader {
			return header, ErrNoHeader
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return header, errors.Wrapf(err, "dimacs: malformed literal %q", field)
			}
			if n == 0 {
				if err := s.AddClause(pending); err != nil {
					return header, err
				}
				pending = pending[:0]
				continue
			}
			v := allsat.Var(abs(n) - 1)
			pending = append(pending, allsat.MkLit(v, n < 0))
		}
	}
	if err := scanner.Err(); err != nil {
		return header, errors.Wrap(err, "dimacs: read error")
	}
	if !seenHeader {
		return header, ErrNoHeader
	}
	if len(pending) > 0 {
		if err := s.AddClause(pending); err != nil {
			return header, err
		}
	}
	return header, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// NewSolver is a convenience wrapper: parse the header first to size the
// solver, then load every clause.
func NewSolver(r io.Reader, opts ...allsat.Option) (*allsat.Solver, Header, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, Header{}, errors.Wrap(err, "dimacs: read error")
	}
	header, err := peekHeader(string(buf))
	if err != nil {
		return nil, header, err
	}
	s := allsat.New(header.Vars, opts...)
	if _, err := Parse(strings.NewReader(string(buf)), s); err != nil {
		return s, header, err
	}
	return s, header, nil
}

func peekHeader(text string) (Header, error) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == 'c' {
			continue
		}
		if line[0] != 'p' {
			break
		}
		fields := strings.Fields(line)
		if len(fields) != 4 || fields[1] != "cnf" {
			return Header{}, fmt.Errorf("dimacs: malformed header %q", line)
		}
		nv, err1 := strconv.Atoi(fields[2])
		nc, err2 := strconv.Atoi(fields[3])
		if err1 != nil || err2 != nil {
			return Header{}, fmt.Errorf("dimacs: malformed header %q", line)
		}
		return Header{Vars: nv, Clauses: nc}, nil
	}
	return Header{}, ErrNoHeader
}
