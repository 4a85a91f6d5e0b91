// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

import "fmt"

// Stats holds the run counters spec.md §6 asks a surrounding collaborator
// to report as text; Solver itself only accumulates them, String renders
// them as text, and printing is left to that collaborator (spec.md §1).
type Stats struct {
	Conflicts      int64
	Decisions      int64
	Propagations   int64
	Inspects       int64
	ConflictLits   int64 // literals in learnt clauses before minimisation
	DeletedLits    int64 // literals removed by self-subsumption minimisation
	Refreshes      int64
	OBDDNodes      int64 // cumulative nodes across refreshes
	CacheLookups   int64
	CacheHits      int64
}

// String renders the counters one "name value" pair per line.
func (st Stats) String() string {
	return fmt.Sprintf(
		"conflicts %d\ndecisions %d\npropagations %d\ninspects %d\nconflict literals %d (%.1f%% deleted)\nrefreshes %d\n|obdd| %d\ncache lookups %d\ncache hits %d\n",
		st.Conflicts, st.Decisions, st.Propagations, st.Inspects,
		st.ConflictLits, st.deletedPct(), st.Refreshes, st.OBDDNodes,
		st.CacheLookups, st.CacheHits,
	)
}

func (st Stats) deletedPct() float64 {
	if st.ConflictLits == 0 {
		return 0
	}
	return 100 * float64(st.DeletedLits) / float64(st.ConflictLits)
}
