// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

// enqueue assigns l true at the solver's current level/sublevel, recording
// reason as its antecedent (nil for a decision or a chronological flip).
// It reports an error only when l is already assigned false, which at level
// 0 witnesses a trivially unsatisfiable formula (spec.md §7).
func (s *Solver) enqueue(l Lit, reason *Clause) error {
	v := l.Var()
	if s.assigns[v] != lUndef {
		if s.value(l) == lFalse {
			if s.level == 0 {
				return s.seterror(ErrEmptyClause)
			}
			return nil
		}
		return nil
	}
	s.assigns[v] = fromSign(l.Sign())
	s.reasons[v] = reason
	s.levels[v] = s.level
	s.sublevels[v] = s.sublevel
	s.trail = append(s.trail, l)
	return nil
}

// propagate performs unit propagation via watched literals (spec.md §4.3):
// for each newly assigned literal p, walk the watch list of p itself (which
// holds every clause whose other watched literal is ¬p), either enqueuing a
// forced literal, rotating to a fresh watch, or reporting a conflict. It
// returns the conflicting clause, or nil once the queue is drained.
func (s *Solver) propagate() *Clause {
	for s.qhead < len(s.trail) {
		p := s.trail[s.qhead]
		s.qhead++
		s.stats.Propagations++

		ws := s.watches[p]
		j := 0
		var conflict *Clause
		for i := 0; i < len(ws); i++ {
			w := ws[i]
			if conflict != nil {
				ws[j] = w
				j++
				continue
			}
			s.stats.Inspects++

			if w.IsBinary() {
				other := w.other
				switch s.value(other) {
				case lFalse:
					conflict = newClause([]Lit{p.Neg(), other}, false)
				case lUndef:
					s.enqueue(other, newClause([]Lit{p.Neg(), other}, false))
				}
				ws[j] = w
				j++
				continue
			}

			c := w.cla
			lits := c.lits
			if lits[0] != p.Neg() {
				lits[0], lits[1] = lits[1], lits[0]
			}
			if s.value(lits[1]) == lTrue {
				ws[j] = w
				j++
				continue
			}
			moved := false
			for k := 2; k < len(lits); k++ {
				if s.value(lits[k]) != lFalse {
					lits[0], lits[k] = lits[k], lits[0]
					s.watch(lits[0].Neg(), w)
					moved = true
					break
				}
			}
			if moved {
				continue
			}
			ws[j] = w
			j++
			switch s.value(lits[1]) {
			case lFalse:
				conflict = c
			case lUndef:
				s.enqueue(lits[1], c)
			}
		}
		s.watches[p] = ws[:j]
		if conflict != nil {
			return conflict
		}
	}
	return nil
}
