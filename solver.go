// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

import (
	"math/big"
	"math/rand"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Solver is the AllSAT engine of spec.md §4.9 ("Solver lifecycle"): variable
// vectors, the clause and watch store, the working OBDD, the cache, and
// statistics, all owned by one value rather than the original's
// process-wide arenas (spec.md DESIGN NOTES §9, "thread it through the
// solver as an owned allocator").
type Solver struct {
	cfg *configs

	nvars int

	assigns   []lbool
	reasons   []*Clause
	levels    []int32
	sublevels []int32

	watches [][]Watch // indexed by literal (2*v+sign)

	clauses []*Clause
	learnts []*Clause
	units   []Lit // original unit clauses, enqueued at level 0 instead of stored
	qtail   int   // not advanced by the search; reduceDB does not consult it

	trail       []Lit
	trailLim    []int32 // trailLim[d] = trail index where decision level d+1 began
	decisionLit []Lit   // decisionLit[d] = the (possibly flipped) decision literal of level d+1
	flippedAt   []bool  // flippedAt[d] = whether level d+1's decision has been chronologically flipped
	qhead       int     // next trail position to propagate

	level    int32 // current decision level; 0 is root
	sublevel int32 // running sublevel counter, monotonic across the whole solve
	lim      int32 // BJ/CBJ running minimum level ever reached; limUnset until the first jump/flip

	nextvar int // next variable (0-based) to decide, natural order

	obdd        *OBDD
	obddPath    []obddID // root..frontier, rebuilt every time extend() runs
	cache       *cacheManager
	boundaryKeys map[int]fingerprintKey // last fingerprint computed at each cache boundary on the current branch
	cumulative  *big.Int                // solution count flushed across prior refreshes

	claInc      float64
	clauseDecay float64

	rng *rand.Rand

	interrupt int32 // set via atomic.StoreInt32 from a signal handler

	stats Stats
	log   *logrus.Logger

	err error
}

// New builds a Solver ready to accept clauses over nvars variables. Mirrors
// reduce's functional-options constructor (reduce.New): every
// tunable is a construction-time Option, nothing is mutable global state.
func New(nvars int, opts ...Option) *Solver {
	cfg := defaultConfigs()
	for _, opt := range opts {
		opt(cfg)
	}
	s := &Solver{
		cfg:          cfg,
		claInc:       1,
		clauseDecay:  cfg.clauseDecay,
		rng:          rand.New(rand.NewSource(cfg.randomSeed)),
		log:          logrus.New(),
		lim:          limUnset,
		boundaryKeys: make(map[int]fingerprintKey),
		cumulative:   new(big.Int),
	}
	s.log.SetLevel(logrus.WarnLevel)
	s.reserve(nvars)
	s.obdd = NewOBDD(nvars)
	s.obddPath = []obddID{s.obdd.Root()}
	return s
}

// reserve grows every per-variable array to cover at least n variables,
// doubling as spec.md §4.9's setnvars prescribes.
func (s *Solver) reserve(n int) {
	if n <= s.nvars {
		return
	}
	size := s.nvars
	if size == 0 {
		size = 1
	}
	for size < n {
		size *= 2
	}
	newAssigns := make([]lbool, size)
	copy(newAssigns, s.assigns)
	s.assigns = newAssigns

	newReasons := make([]*Clause, size)
	copy(newReasons, s.reasons)
	s.reasons = newReasons

	newLevels := make([]int32, size)
	copy(newLevels, s.levels)
	s.levels = newLevels

	newSub := make([]int32, size)
	copy(newSub, s.sublevels)
	s.sublevels = newSub

	newWatches := make([][]Watch, 2*size)
	copy(newWatches, s.watches)
	s.watches = newWatches

	s.nvars = n
}

// Varnum returns the number of variables the solver was built over.
func (s *Solver) Varnum() int { return s.nvars }

// OBDD returns the solver's working OBDD (valid mid-solve for inspection,
// and final once Solve returns).
func (s *Solver) OBDD() *OBDD { return s.obdd }

// TotalSolutions returns the exact total model count, summing whatever was
// flushed across prior refreshes with the current OBDD's own count
// (spec.md §8.7 "Refresh correctness").
func (s *Solver) TotalSolutions() *big.Int {
	total := new(big.Int).Set(s.cumulative)
	return total.Add(total, s.obdd.NSolsBig())
}

// Stats returns a snapshot of the solver's run statistics.
func (s *Solver) Stats() Stats { return s.stats }

// Clauses returns the solver's original (non-learnt) clauses as literal
// slices, letting an independent oracle (see reduce.BuildOracle) rebuild the
// same CNF without depending on the CDCL engine's own OBDD construction.
func (s *Solver) Clauses() [][]Lit {
	out := make([][]Lit, 0, len(s.clauses)+len(s.units))
	for _, c := range s.clauses {
		out = append(out, append([]Lit(nil), c.Lits()...))
	}
	for _, u := range s.units {
		out = append(out, []Lit{u})
	}
	return out
}

// value returns the current truth value of a literal.
func (s *Solver) value(l Lit) lbool {
	a := s.assigns[l.Var()]
	if a == lUndef {
		return lUndef
	}
	if l.Sign() {
		if a == lTrue {
			return lFalse
		}
		return lTrue
	}
	return a
}

// Interrupt requests that the next propagation boundary stop the search
// (spec.md §5 "Cancellation"); safe to call from a signal handler.
func (s *Solver) Interrupt() { atomic.StoreInt32(&s.interrupt, 1) }

func (s *Solver) interrupted() bool { return atomic.LoadInt32(&s.interrupt) != 0 }

// AddClause installs a clause given as raw signed DIMACS-style integers
// translated to Lits by the caller (the dimacs package), performing the
// simplifications of spec.md §4.9: sort, deduplicate, tautology detection,
// satisfied-at-level-0 detection, and watcher installation. It returns
// ErrEmptyClause (via seterror) if the clause simplifies to false at level
// 0, witnessing a trivially UNSAT formula.
func (s *Solver) AddClause(lits []Lit) error {
	if s.err != nil {
		return s.err
	}
	out := append([]Lit(nil), lits...)
	sortLits(out)
	j := 0
	var prev Lit = LitUndef
	for _, l := range out {
		if int(l.Var()) >= s.nvars {
			return s.seterror(ErrBadVar)
		}
		if l == prev {
			continue // duplicate literal
		}
		if j > 0 && l == out[j-1].Neg() {
			return nil // tautology: clause is trivially true, drop it
		}
		if s.value(l) == lTrue {
			return nil // satisfied at level 0
		}
		if s.value(l) == lFalse {
			prev = l
			continue // falsified at level 0: drop the literal
		}
		out[j] = l
		j++
		prev = l
	}
	out = out[:j]
	switch len(out) {
	case 0:
		return s.seterror(ErrEmptyClause)
	case 1:
		s.units = append(s.units, out[0])
		return s.enqueue(out[0], nil)
	default:
		c := newClause(out, false)
		s.clauses = append(s.clauses, c)
		s.attachClause(c)
		return nil
	}
}

func sortLits(lits []Lit) {
	for i := 1; i < len(lits); i++ {
		for j := i; j > 0 && lits[j] < lits[j-1]; j-- {
			lits[j], lits[j-1] = lits[j-1], lits[j]
		}
	}
}

// attachClause installs watches on a clause's first two literals, using the
// inline binary watch when the clause has exactly two literals (spec.md §3
// "a binary clause may be stored inline ... to avoid the indirection").
func (s *Solver) attachClause(c *Clause) {
	lits := c.lits
	if len(lits) == 2 {
		s.watch(lits[0].Neg(), binaryWatch(lits[1]))
		s.watch(lits[1].Neg(), binaryWatch(lits[0]))
		return
	}
	s.watch(lits[0].Neg(), clauseWatch(c))
	s.watch(lits[1].Neg(), clauseWatch(c))
}

func (s *Solver) watch(l Lit, w Watch) {
	idx := int(l)
	s.watches[idx] = append(s.watches[idx], w)
}

// Delete releases the solver's OBDD pool and cache, mirroring spec.md
// §4.9's solver_delete; in Go this just drops references for the GC.
func (s *Solver) Delete() {
	s.obdd = nil
	s.cache = nil
	s.watches = nil
	s.clauses = nil
	s.learnts = nil
}
