// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

import "testing"

// TestCacheWidthsManualFormula checks separator and cutset widths against a
// manual calculation for a hand-made 5-clause formula over 4 variables:
//
//	(x1 v x2) (x2 v x3) (x3 v x4) (x1 v x4) (x2 v x4)
//
// buildSeparators tracks, per variable v, the highest-numbered variable
// appearing alongside it in any clause (wOf[v]); separator(i) is every
// v <= i with wOf[v] > i. Every variable here co-occurs, through some
// clause, with x4, so wOf[v] = 4 for v = 1..4, giving:
//
//	sep(1) = {x1}                width 1
//	sep(2) = {x1, x2}            width 2
//	sep(3) = {x1, x2, x3}        width 3
//	sep(4) = {}                  width 0
//
// buildCutsets accumulates a delta array over clause spans [lo, hi]
// (delta[lo]++, delta[hi+1]--) and prefix-sums it, so cutwidth(i) counts
// clauses with lo <= i <= hi (inclusive of hi, unlike the separately
// populated per-boundary cutsets lists):
//
//	clause spans: (1,2) (2,3) (3,4) (1,4) (2,4)
//	cutwidth(1) = 2   [(1,2), (1,4)]
//	cutwidth(2) = 4   [(1,2), (2,3), (1,4), (2,4)]
//	cutwidth(3) = 4   [(2,3), (3,4), (1,4), (2,4)]
//	cutwidth(4) = 3   [(3,4), (1,4), (2,4)]
func TestCacheWidthsManualFormula(t *testing.T) {
	lit := func(v int, sign bool) Lit { return MkLit(Var(v), sign) }
	clauses := []*Clause{
		newClause([]Lit{lit(0, false), lit(1, false)}, false), // x1 v x2
		newClause([]Lit{lit(1, false), lit(2, false)}, false), // x2 v x3
		newClause([]Lit{lit(2, false), lit(3, false)}, false), // x3 v x4
		newClause([]Lit{lit(0, false), lit(3, false)}, false), // x1 v x4
		newClause([]Lit{lit(1, false), lit(3, false)}, false), // x2 v x4
	}

	sepCM := &cacheManager{mode: CacheSeparator, nvars: 4}
	sepCM.buildSeparators(clauses)
	wantSep := []int{0, 1, 2, 3, 0} // index 0 unused
	for i := 1; i <= 4; i++ {
		if sepCM.pathwidth[i] != wantSep[i] {
			t.Fatalf("separator width at boundary %d = %d, want %d", i, sepCM.pathwidth[i], wantSep[i])
		}
	}

	cutCM := &cacheManager{mode: CacheCutset, nvars: 4}
	cutCM.buildCutsets(clauses)
	wantCut := []int{0, 2, 4, 4, 3}
	for i := 1; i <= 4; i++ {
		if cutCM.cutwidth[i] != wantCut[i] {
			t.Fatalf("cutset width at boundary %d = %d, want %d", i, cutCM.cutwidth[i], wantCut[i])
		}
	}
}

// TestCacheForceMissAlwaysMisses exercises the NoCache testing hook: once
// forceMiss is set, probe never reports a hit even after an insert at the
// same boundary and key.
func TestCacheForceMissAlwaysMisses(t *testing.T) {
	s := New(2)
	s.cache = newCacheManager(s)
	s.cache.forceMiss = true

	_, key, ok := s.cache.probe(s, 1)
	if ok {
		t.Fatalf("probe reported a hit with forceMiss set")
	}
	s.cache.forceMiss = false
	s.cache.insert(1, key, topID)
	s.cache.forceMiss = true
	if _, _, ok := s.cache.probe(s, 1); ok {
		t.Fatalf("probe reported a hit with forceMiss set, despite a prior insert")
	}
}

// TestCacheProbeInsertRoundTrip checks that inserting a fingerprint at a
// boundary makes a subsequent probe with the same assignment hit with the
// inserted value.
func TestCacheProbeInsertRoundTrip(t *testing.T) {
	s := New(2)
	s.cache = newCacheManager(s)

	s.assigns[0] = lTrue
	_, key, ok := s.cache.probe(s, 1)
	if ok {
		t.Fatalf("probe hit before any insert")
	}
	s.cache.insert(1, key, topID)

	id, _, ok := s.cache.probe(s, 1)
	if !ok {
		t.Fatalf("probe missed after insert with an identical assignment")
	}
	if id != topID {
		t.Fatalf("probe returned %d, want topID", id)
	}
}

// TestCacheNoCacheOptionYieldsSameCount is the §8.6 cache-correctness
// property: disabling the cache must not change the solution count. The
// pigeonhole-free formula of scenario C is small enough to make both
// search runs deterministic and comparable.
func TestCacheNoCacheOptionYieldsSameCount(t *testing.T) {
	build := func(opts ...Option) *Solver {
		s := New(3, opts...)
		clauses := [][]Lit{
			{MkLit(0, false), MkLit(1, false)},
			{MkLit(0, true), MkLit(2, false)},
		}
		for _, c := range clauses {
			if err := s.AddClause(c); err != nil {
				t.Fatalf("AddClause: %v", err)
			}
		}
		if _, err := s.Solve(); err != nil {
			t.Fatalf("Solve: %v", err)
		}
		return s
	}

	withCache := build()
	withoutCache := build(NoCache())

	if withCache.TotalSolutions().Cmp(withoutCache.TotalSolutions()) != 0 {
		t.Fatalf("cache changed the solution count: with=%s without=%s",
			withCache.TotalSolutions(), withoutCache.TotalSolutions())
	}
}
