// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

import "math"

// limUnset marks s.lim as "no backjump has happened yet"; BJ and CBJ must
// not treat it as a real level to jump to.
const limUnset int32 = math.MaxInt32

// newDecision opens a new decision level and enqueues lit as its decision
// literal (reason nil).
func (s *Solver) newDecision(lit Lit) {
	s.trailLim = append(s.trailLim, int32(len(s.trail)))
	s.level++
	s.decisionLit = append(s.decisionLit, lit)
	s.flippedAt = append(s.flippedAt, false)
	s.enqueue(lit, nil)
}

// cancelUntilLevel pops the trail back to the start of level lvl, undoing
// every assignment made at a level above it (spec.md §3 "trail_lim").
func (s *Solver) cancelUntilLevel(lvl int32) {
	for s.level > lvl {
		idx := int(s.trailLim[s.level-1])
		s.undoFrom(idx)
		s.trailLim = s.trailLim[:s.level-1]
		s.decisionLit = s.decisionLit[:s.level-1]
		s.flippedAt = s.flippedAt[:s.level-1]
		s.level--
	}
}

// cancelToLevelStart undoes the assignments made at the current level
// without leaving it, so a fresh (flipped) decision can be enqueued in its
// place. lvl must equal s.level.
func (s *Solver) cancelToLevelStart(lvl int32) {
	idx := int(s.trailLim[lvl-1])
	s.undoFrom(idx)
}

// undoFrom unassigns every trail entry from idx onward and pulls s.nextvar
// back to the lowest variable it touches. Without that second part,
// decideStep resumes scanning from wherever it last left off and never
// notices that chronoFlip/cancelUntilLevel just unassigned variables below
// that point, so it declares a model at the stale boundary instead of
// re-deciding them.
func (s *Solver) undoFrom(idx int) {
	for i := len(s.trail) - 1; i >= idx; i-- {
		v := s.trail[i].Var()
		s.assigns[v] = lUndef
		s.reasons[v] = nil
		if int(v) < s.nextvar {
			s.nextvar = int(v)
		}
	}
	s.trail = s.trail[:idx]
	if s.qhead > idx {
		s.qhead = idx
	}
}

// chronoFlip performs the chronological flip of spec.md §4.5: it negates
// the most recent not-yet-flipped decision and enqueues it as a fresh
// sublevel at the same decision level. If every open decision level has
// already been flipped once, the whole search space below the root has
// been explored and chronoFlip returns false (spec.md §4.5 CBJ "empty
// resolvent" / whole-space-exhausted case, generalised to every policy
// that bottoms out here).
func (s *Solver) chronoFlip() bool {
	for s.level > 0 {
		lvl := s.level
		if !s.flippedAt[lvl-1] {
			s.cancelToLevelStart(lvl)
			dec := s.decisionLit[lvl-1]
			s.flippedAt[lvl-1] = true
			s.sublevel++
			s.decisionLit[lvl-1] = dec.Neg()
			s.enqueue(dec.Neg(), nil)
			return true
		}
		s.cancelUntilLevel(lvl - 1)
	}
	return false
}

// addLearnt records a learnt clause, attaching watches unless it is a unit
// (which is instead enqueued directly as the caller's forced literal).
func (s *Solver) addLearnt(lits []Lit) *Clause {
	c := newClause(lits, true)
	c.activity = s.claInc
	s.learnts = append(s.learnts, c)
	if len(lits) >= 2 {
		s.attachClause(c)
	}
	return c
}

// backjumpResult reports what the selected policy did, so the search
// driver knows whether to keep propagating or to report the search
// exhausted.
type backjumpResult int

const (
	backjumpContinue backjumpResult = iota
	backjumpExhausted
)

// resolveConflict applies the configured non-blocking backtrack policy on
// a conflict (spec.md §4.5). It always learns the 1-UIP clause first, for
// its propagation power, then picks a target level per policy.
func (s *Solver) resolveConflict(confl *Clause) backjumpResult {
	learnt, btLevel := s.analyze(confl, s.cfg.uip)
	c := s.addLearnt(learnt)

	switch s.cfg.backtrack {
	case BJ:
		return s.backjumpBJ(learnt, c, btLevel)
	case CBJ:
		return s.backjumpCBJ(learnt, c)
	case BJCBJ:
		if s.lim < s.level {
			return s.backjumpBJ(learnt, c, btLevel)
		}
		return s.backjumpCBJ(learnt, c)
	default: // BT
		if !s.chronoFlip() {
			return backjumpExhausted
		}
		return backjumpContinue
	}
}

// backjumpBJ implements spec.md §4.5 "BJ": jump to the running minimum
// level when the learnt clause's second-highest level is already below it,
// otherwise fall back to a chronological flip.
func (s *Solver) backjumpBJ(learnt []Lit, c *Clause, btLevel int32) backjumpResult {
	if s.lim != limUnset && btLevel < s.lim {
		s.cancelUntilLevel(s.lim)
		s.enqueue(learnt[0], c)
		return backjumpContinue
	}
	if !s.chronoFlip() {
		return backjumpExhausted
	}
	if s.lim == limUnset || s.level < s.lim {
		s.lim = s.level
	}
	return backjumpContinue
}

// backjumpCBJ implements spec.md §4.5 "CBJ": learn, flip, and if the flip
// itself conflicts, resolve the two learnt clauses and flip again,
// repeating until either propagation succeeds or the resolvent is empty
// (search space exhausted). When the second clause's asserting literal is
// not the complement of the first's, the two cannot be resolved on it, and
// the second clause is learnt and carried forward on its own instead.
func (s *Solver) backjumpCBJ(learnt []Lit, c *Clause) backjumpResult {
	for {
		flippedLit := s.lastDecisionBeforeFlip()
		if !s.chronoFlip() {
			return backjumpExhausted
		}
		if s.lim == limUnset || s.level < s.lim {
			s.lim = s.level
		}
		confl2 := s.propagate()
		if confl2 == nil {
			return backjumpContinue
		}
		learnt2 := s.analyzeTarget(confl2, flippedLit, s.cfg.uip)
		if learnt[0] != learnt2[0].Neg() {
			c = s.addLearnt(learnt2)
			learnt = learnt2
			continue
		}
		resolved := resolve(learnt, learnt2, func(l Lit) int32 { return s.levelOf(l.Var(), s.cfg.uip) })
		if len(resolved) == 0 {
			return backjumpExhausted
		}
		c = s.addLearnt(resolved)
		learnt = resolved
	}
}

// lastDecisionBeforeFlip returns the literal chronoFlip is about to negate,
// i.e. the decision at the deepest not-yet-flipped level. Used so the
// caller can pass the post-flip literal as analyzeTarget's target.
func (s *Solver) lastDecisionBeforeFlip() Lit {
	for lvl := s.level; lvl > 0; lvl-- {
		if !s.flippedAt[lvl-1] {
			return s.decisionLit[lvl-1].Neg()
		}
	}
	return LitUndef
}
