package dimacs

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttoda/allsat"
)

const sampleCNF = `c a tiny implication-chain formula
c (x1 v x2) & (-x1 v x3)
p cnf 3 2
1 2 0
-1 3 0
`

func TestNewSolverParsesHeaderAndClauses(t *testing.T) {
	s, header, err := NewSolver(strings.NewReader(sampleCNF))
	require.NoError(t, err)
	assert.Equal(t, 3, header.Vars)
	assert.Equal(t, 2, header.Clauses)
	assert.Equal(t, 3, s.Varnum())

	_, err = s.Solve()
	require.NoError(t, err)
	assert.Equal(t, 0, s.TotalSolutions().Cmp(big.NewInt(4)))
}

func TestParseSkipsCommentsAndHandlesMultilineClause(t *testing.T) {
	const text = "c comment\np cnf 2 1\n1\n2 0\n"
	s := allsat.New(2)
	header, err := Parse(strings.NewReader(text), s)
	require.NoError(t, err)
	assert.Equal(t, Header{Vars: 2, Clauses: 1}, header)

	_, err = s.Solve()
	require.NoError(t, err)
	assert.Equal(t, 0, s.TotalSolutions().Cmp(big.NewInt(3)))
}

func TestParseMissingHeaderFails(t *testing.T) {
	s := allsat.New(1)
	_, err := Parse(strings.NewReader("1 0\n"), s)
	assert.Equal(t, ErrNoHeader, err)
}

func TestParseMalformedLiteralFails(t *testing.T) {
	s := allsat.New(1)
	_, err := Parse(strings.NewReader("p cnf 1 1\nabc 0\n"), s)
	require.Error(t, err)
}

func TestParseRejectsBadHeaderField(t *testing.T) {
	s := allsat.New(1)
	_, err := Parse(strings.NewReader("p cnf one 1\n"), s)
	require.Error(t, err)
}

func TestNewSolverSurfacesTrivialUnsat(t *testing.T) {
	const text = "p cnf 1 2\n1 0\n-1 0\n"
	s, _, err := NewSolver(strings.NewReader(text))
	require.Error(t, err)
	assert.ErrorIs(t, err, allsat.ErrEmptyClause)
	assert.Error(t, s.Error())
}
