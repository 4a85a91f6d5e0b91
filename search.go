// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

// Result is the outcome of a Solve call.
type Result int

const (
	// ResultComplete means enumeration finished: the OBDD (plus whatever
	// was flushed across refreshes) accepts exactly the formula's models.
	ResultComplete Result = iota
	// ResultInterrupted means the interrupt flag was set; the OBDD built so
	// far is a valid under-approximation of the model set (spec.md §7).
	ResultInterrupted
)

// Solve runs the search driver of spec.md §4.8 to completion (or until
// interrupted). It builds the cache from the final clause set on entry, as
// the cache's width/separator/cutset data depends on it.
func (s *Solver) Solve() (Result, error) {
	if s.err != nil {
		return ResultComplete, s.err
	}
	s.cache = newCacheManager(s)

	for {
		if s.interrupted() {
			s.obdd.Complete()
			return ResultInterrupted, nil
		}

		confl := s.propagate()
		if confl != nil {
			if s.level == 0 {
				s.obdd.Complete()
				return ResultComplete, nil
			}
			if s.cfg.blocking {
				learnt, btLevel := s.analyze(confl, s.cfg.uip)
				c := s.addLearnt(learnt)
				s.cancelUntilLevel(btLevel)
				s.enqueue(learnt[0], c)
				continue
			}
			if s.resolveConflict(confl) == backjumpExhausted {
				s.obdd.Complete()
				return ResultComplete, nil
			}
			continue
		}

		if s.level == 0 {
			s.simplifyDB()
		}
		if len(s.learnts)-s.qtail >= s.nofLearnts() {
			s.reduceDB()
		}

		model, hit, target := s.decideStep()
		switch {
		case model:
			s.extend(topID)
		case hit:
			s.extend(target)
		default:
			continue // a fresh decision was enqueued; go propagate it
		}

		if s.level == 0 {
			s.obdd.Complete()
			return ResultComplete, nil
		}
		if s.cfg.blocking {
			s.modelEventBlocking()
			continue
		}
		if s.shouldRefresh() {
			s.refresh()
		}
		if !s.chronoFlip() {
			s.obdd.Complete()
			return ResultComplete, nil
		}
	}
}

// decideStep advances nextvar per spec.md §4.8 step 4. It returns model =
// true when every variable is assigned with no cache hit along the way,
// hit = true (with target) on a cache hit, or neither after enqueuing a
// fresh decision (negative phase, per the fixed decision-heuristic
// contract of DESIGN NOTES §9).
func (s *Solver) decideStep() (model bool, hit bool, target obddID) {
	n := s.nvars
	if s.cfg.eager {
		i := s.nextvar
		for i < n && s.assigns[Var(i)] != lUndef {
			boundary := i + 1
			if id, key, ok := s.probeCache(boundary); ok {
				s.nextvar = i + 1
				return false, true, id
			} else {
				s.boundaryKeys[boundary] = key
			}
			i++
		}
		s.nextvar = i
		if i == n {
			return true, false, 0
		}
		s.newDecision(MkLit(Var(i), true))
		s.stats.Decisions++
		s.nextvar = i + 1
		return false, false, 0
	}

	i := s.nextvar
	for i < n && s.assigns[Var(i)] != lUndef {
		i++
	}
	s.nextvar = i
	if i == n {
		return true, false, 0
	}
	if i > 0 {
		if id, key, ok := s.probeCache(i); ok {
			return false, true, id
		} else {
			s.boundaryKeys[i] = key
		}
	}
	s.newDecision(MkLit(Var(i), true))
	s.stats.Decisions++
	s.nextvar = i + 1
	return false, false, 0
}

func (s *Solver) probeCache(boundary int) (obddID, fingerprintKey, bool) {
	s.stats.CacheLookups++
	id, key, ok := s.cache.probe(s, boundary)
	if ok {
		s.stats.CacheHits++
	}
	return id, key, ok
}

// modelEventBlocking implements spec.md §4.5's blocking-mode model event:
// build the blocking clause from the decision trail, backjump to k-1, and
// enqueue its asserting literal.
func (s *Solver) modelEventBlocking() {
	k := s.level
	lits := make([]Lit, k)
	for d := int32(0); d < k; d++ {
		lits[d] = s.decisionLit[d].Neg()
	}
	c := newClause(lits, true)
	c.activity = s.claInc
	s.learnts = append(s.learnts, c)

	newLevel := k - 1
	uip := lits[k-1]
	s.cancelUntilLevel(newLevel)
	if len(lits) >= 2 {
		s.attachClause(c)
		s.enqueue(uip, c)
	} else {
		s.enqueue(uip, nil)
	}
	s.insertCacheUntil(newLevel)
	s.nextvar = int(newLevel)
}

// shouldRefresh reports whether the OBDD-size-bounded refresh of spec.md
// §4.8 should fire now; maxNodes == 0 disables refresh entirely.
func (s *Solver) shouldRefresh() bool {
	return s.cfg.maxNodes > 0 && s.obdd.NNodes() > int64(s.cfg.maxNodes)
}

// refresh flushes the current OBDD's count (and, if a sink is configured,
// its decomposition) and restarts construction from an empty root
// (spec.md §4.8 "Refresh").
func (s *Solver) refresh() {
	s.obdd.Complete()
	s.stats.Refreshes++
	s.stats.OBDDNodes += s.obdd.NNodes()
	s.cumulative.Add(s.cumulative, s.obdd.NSolsBig())
	if s.cfg.refreshSink != nil {
		s.obdd.Decompose(s.cfg.refreshSink)
	}
	s.obdd = NewOBDD(s.nvars)
	s.obddPath = []obddID{s.obdd.Root()}
	s.cache.reset()
	s.boundaryKeys = make(map[int]fingerprintKey)
}

// insertCacheUntil walks the just-built OBDD path and inserts, for every
// boundary whose fingerprint was computed on this branch and which is at
// or below the new level L, the fingerprint -> node mapping (spec.md §4.6
// "insertcacheuntil").
func (s *Solver) insertCacheUntil(L int32) {
	for boundary, key := range s.boundaryKeys {
		if int32(boundary) > L {
			continue
		}
		for _, id := range s.obddPath {
			if s.obdd.IsConst(id) {
				continue
			}
			if s.obdd.Label(id) == boundary+1 {
				s.cache.insert(boundary, key, id)
				break
			}
		}
	}
	s.boundaryKeys = make(map[int]fingerprintKey)
}

// nofLearnts is the learnt-database reduction threshold (spec.md §4.8 step
// 3); a fixed baseline proportional to the original clause count, computed
// afresh on each call and not grown over the run.
func (s *Solver) nofLearnts() int {
	return len(s.clauses)/3 + 100
}

// reduceDB drops half of the non-binary learnt clauses with lowest
// activity, keeping any clause that is currently an antecedent (spec.md
// §4.8 step 3).
func (s *Solver) reduceDB() {
	ls := s.learnts
	for i := 1; i < len(ls); i++ {
		for j := i; j > 0 && less(ls[j], ls[j-1]); j-- {
			ls[j], ls[j-1] = ls[j-1], ls[j]
		}
	}
	half := len(ls) / 2
	keep := ls[:0]
	for i, c := range ls {
		if c.Len() <= 2 || i >= half || s.isAntecedent(c) {
			keep = append(keep, c)
		}
	}
	s.learnts = keep
}

func less(a, b *Clause) bool {
	al, bl := a.Len() > 2, b.Len() > 2
	if al != bl {
		return al
	}
	return a.activity < b.activity
}

func (s *Solver) isAntecedent(c *Clause) bool {
	if c.Len() == 0 {
		return false
	}
	v := c.lits[0].Var()
	return s.reasons[v] == c
}

// simplifyDB is a no-op: removing satisfied/subsumed clauses at the root
// level is a performance optimisation only (the search's correctness and
// termination never depend on it), and cutset-mode caching additionally
// requires every original clause to remain evaluable for the lifetime of
// the solve (spec.md §4.8 step 2), so pruning originals is skipped
// entirely rather than conditioned on cache mode.
func (s *Solver) simplifyDB() {}
