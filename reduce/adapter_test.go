// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package reduce

import (
	"math/big"
	"testing"

	"github.com/ttoda/allsat"
)

func lit(v int, sign bool) allsat.Lit { return allsat.MkLit(allsat.Var(v), sign) }

// scenarioCount loads a CNF (spec.md §8 scenario table) into a solver, runs
// it to completion and cross-checks the engine's own count against the
// independent Apply-based oracle built from the same clauses.
func scenarioCount(t *testing.T, nvars int, clauses [][]allsat.Lit, want int64) {
	t.Helper()
	s := allsat.New(nvars)
	for _, c := range clauses {
		if err := s.AddClause(c); err != nil {
			if err == allsat.ErrEmptyClause && want == 0 {
				return
			}
			t.Fatalf("AddClause: %v", err)
		}
	}
	if _, err := s.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	got := s.TotalSolutions()
	if got.Cmp(big.NewInt(want)) != 0 {
		t.Fatalf("solver count = %s, want %d", got, want)
	}
	match, solverCount, oracleCount, err := VerifyCounts(s)
	if err != nil {
		t.Fatalf("VerifyCounts: %v", err)
	}
	if !match {
		t.Fatalf("oracle mismatch: solver=%s oracle=%s", solverCount, oracleCount)
	}
}

func TestVerifyCountsScenarioA(t *testing.T) {
	scenarioCount(t, 1, [][]allsat.Lit{{lit(0, false)}}, 1)
}

func TestVerifyCountsScenarioB(t *testing.T) {
	scenarioCount(t, 2, nil, 4)
}

// (x1 v x2) & (-x1 v x3): see solver_test.go's
// TestScenarioCImplicationChain for the count derivation (4, not 8).
func TestVerifyCountsScenarioC(t *testing.T) {
	scenarioCount(t, 3, [][]allsat.Lit{
		{lit(0, false), lit(1, false)},
		{lit(0, true), lit(2, false)},
	}, 4)
}

func TestVerifyCountsScenarioE(t *testing.T) {
	scenarioCount(t, 3, [][]allsat.Lit{
		{lit(0, false), lit(1, false), lit(2, false)},
	}, 7)
}

// TestVerifyCountsScenarioF is the pigeonhole instance PHP(3,2): three
// pigeons, two holes, no injective assignment exists.
func TestVerifyCountsScenarioF(t *testing.T) {
	// variables: x[p][h] = pigeon p in hole h, p in 0..2, h in 0..1; var index = p*2+h
	v := func(p, h int) int { return p*2 + h }
	var clauses [][]allsat.Lit
	for p := 0; p < 3; p++ {
		clauses = append(clauses, []allsat.Lit{lit(v(p, 0), false), lit(v(p, 1), false)})
	}
	for h := 0; h < 2; h++ {
		for p1 := 0; p1 < 3; p1++ {
			for p2 := p1 + 1; p2 < 3; p2++ {
				clauses = append(clauses, []allsat.Lit{lit(v(p1, h), true), lit(v(p2, h), true)})
			}
		}
	}
	scenarioCount(t, 6, clauses, 0)
}

func TestReplayOBDDMatchesOracle(t *testing.T) {
	s := allsat.New(3)
	clauses := [][]allsat.Lit{
		{lit(0, false), lit(1, false)},
		{lit(0, true), lit(2, false)},
	}
	for _, c := range clauses {
		if err := s.AddClause(c); err != nil {
			t.Fatalf("AddClause: %v", err)
		}
	}
	if _, err := s.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	oracleBDD, oracleNode, err := BuildOracle(3, clauses)
	if err != nil {
		t.Fatalf("BuildOracle: %v", err)
	}
	replayed := ReplayOBDD(oracleBDD, s.OBDD())
	if oracleBDD.Satcount(replayed).Cmp(oracleBDD.Satcount(oracleNode)) != 0 {
		t.Fatalf("replayed OBDD's model count does not match the oracle's characteristic function")
	}
}
