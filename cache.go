// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

// cacheManager is the subspace-equivalence cache of spec.md §4.6: one trie
// per variable boundary, keyed by a fingerprint (separator or cutset mode)
// of the partial assignment at that boundary. Boundaries are 1-based
// variable labels (matching OBDD node labels); index 0 is unused.
type cacheManager struct {
	mode  CacheMode
	nvars int

	separators [][]Var // separators[i]: sorted separator variables at boundary i
	pathwidth  []int

	cutsets  [][]*Clause // cutsets[i]: clauses spanning boundary i
	cutwidth []int

	tries []*trie

	forceMiss bool // NoCache testing hook (spec.md §8.6)
}

// newCacheManager builds the cache from the solver's original clauses. It
// must run before the first decision, since width/separator/cutset data
// depends on the final clause set (spec.md §4.6 "At the start of solve").
func newCacheManager(s *Solver) *cacheManager {
	cm := &cacheManager{mode: s.cfg.cacheMode, nvars: s.nvars, forceMiss: s.cfg.noCache}
	if cm.mode == CacheCutset {
		cm.buildCutsets(s.clauses)
	} else {
		cm.buildSeparators(s.clauses)
	}
	cm.tries = make([]*trie, s.nvars+1)
	for i := 1; i <= s.nvars; i++ {
		w := cm.width(i)
		cm.tries[i] = newTrie(w)
	}
	return cm
}

func (cm *cacheManager) width(i int) int {
	if cm.mode == CacheCutset {
		return cm.cutwidth[i]
	}
	return cm.pathwidth[i]
}

// buildSeparators computes, for every variable v (1-based), the highest
// variable w(v) co-occurring with v in some clause; separator[i] is then
// every v <= i with w(v) > i (spec.md §3 "Separator set at boundary i").
func (cm *cacheManager) buildSeparators(clauses []*Clause) {
	n := cm.nvars
	wOf := make([]int, n+1)
	for _, c := range clauses {
		maxVar := 0
		for _, l := range c.Lits() {
			if v := int(l.Var()) + 1; v > maxVar {
				maxVar = v
			}
		}
		for _, l := range c.Lits() {
			v := int(l.Var()) + 1
			if maxVar > wOf[v] {
				wOf[v] = maxVar
			}
		}
	}
	cm.separators = make([][]Var, n+1)
	cm.pathwidth = make([]int, n+1)
	for i := 1; i <= n; i++ {
		var sep []Var
		for v := 1; v <= i; v++ {
			if wOf[v] > i {
				sep = append(sep, Var(v-1))
			}
		}
		cm.separators[i] = sep
		cm.pathwidth[i] = len(sep)
	}
}

// buildCutsets computes cutwidth via a prefix-sum over clause spans, and
// the explicit cutsets[i] clause lists (spec.md §3 "Cutset at boundary i",
// §4.6 "Cutset mode").
func (cm *cacheManager) buildCutsets(clauses []*Clause) {
	n := cm.nvars
	type span struct {
		lo, hi int
		c      *Clause
	}
	spans := make([]span, 0, len(clauses))
	delta := make([]int, n+2)
	for _, c := range clauses {
		lo, hi := n+1, 0
		for _, l := range c.Lits() {
			v := int(l.Var()) + 1
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		spans = append(spans, span{lo: lo, hi: hi, c: c})
		delta[lo]++
		if hi+1 <= n+1 {
			delta[hi+1]--
		}
	}
	cm.cutwidth = make([]int, n+1)
	cm.cutsets = make([][]*Clause, n+1)
	running := 0
	for i := 1; i <= n; i++ {
		running += delta[i]
		cm.cutwidth[i] = running
	}
	for _, sp := range spans {
		for i := sp.lo; i < sp.hi && i <= n; i++ {
			cm.cutsets[i] = append(cm.cutsets[i], sp.c)
		}
	}
}

// fingerprint materialises the bit-key at boundary i under the solver's
// current (decision-restricted, for cutset mode) assignment.
func (cm *cacheManager) fingerprint(s *Solver, i int) fingerprintKey {
	w := cm.width(i)
	key := newFingerprintKey(w)
	if cm.mode == CacheCutset {
		for j, c := range cm.cutsets[i] {
			if cm.clauseSatisfied(s, c, i) {
				key.setBit(j)
			}
		}
		return key
	}
	for j, v := range cm.separators[i] {
		if s.assigns[v] == lTrue {
			key.setBit(j)
		}
	}
	return key
}

// clauseSatisfied reports whether c is satisfied under the decision
// assignment restricted to variables <= i, per spec.md §3's cutset
// fingerprint definition: a literal only counts if its variable's current
// value was set by a decision (s.reasons == nil), not forced by
// propagation, and its 1-based variable index does not exceed i.
func (cm *cacheManager) clauseSatisfied(s *Solver, c *Clause, i int) bool {
	for _, l := range c.Lits() {
		v := l.Var()
		if int(v)+1 > i {
			continue
		}
		if s.assigns[v] == lUndef || s.reasons[v] != nil {
			continue
		}
		if s.value(l) == lTrue {
			return true
		}
	}
	return false
}

// probe looks up the fingerprint at boundary i and reports a hit together
// with the computed key (the caller inserts the key later, at backtrack
// time, via insert).
func (cm *cacheManager) probe(s *Solver, i int) (obddID, fingerprintKey, bool) {
	key := cm.fingerprint(s, i)
	if cm.forceMiss {
		return 0, key, false
	}
	v, ok := cm.tries[i].search(key)
	return obddID(v), key, ok
}

// insert records key -> value at boundary i (idempotent: first value for a
// key wins, per the trie's own contract).
func (cm *cacheManager) insert(i int, key fingerprintKey, value obddID) {
	cm.tries[i].insert(key, int(value))
}

// reset is called by the non-blocking search driver's refresh (spec.md
// §4.8 "Refresh": "reset the trie arenas and the cachedvars list").
func (cm *cacheManager) reset() {
	for i := range cm.tries {
		if cm.tries[i] != nil {
			cm.tries[i].reset()
		}
	}
}
