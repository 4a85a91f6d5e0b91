// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

// extend is the OBDD builder of spec.md §4.7: given a target (TOP, on a
// model, or a cached node, on a cache hit), it walks from the OBDD root
// along the edges chosen by the solver's current assignment, stops at the
// first missing child, fills in fresh nodes down to target, and records
// the resulting root-to-frontier path in s.obddPath.
//
// Solution counting is not maintained incrementally on an aux field here;
// spec.md DESIGN NOTES §9 already prefers collapsing the saturating and
// big-integer counters into one view, and that view (OBDD.NSolsBig) is
// computed fresh from the completed DAG, so extend only needs to wire
// edges.
func (s *Solver) extend(target obddID) {
	o := s.obdd
	root := o.Root()
	path := []obddID{root}
	p := root

	for !o.IsConst(p) {
		lbl := o.Label(p)
		v := Var(lbl - 1)
		val := s.assigns[v]
		var child obddID
		if val == lTrue {
			child = o.High(p)
		} else {
			child = o.Low(p)
		}
		if child == noChild {
			break
		}
		path = append(path, child)
		p = child
	}

	if p == target {
		s.obddPath = path
		return
	}
	if o.IsConst(p) {
		if !s.cfg.blocking {
			panic("extend: frontier descent reached a terminal without finding the target (revisited prefix)")
		}
		s.obddPath = path
		return
	}

	targetLabel := s.nvars + 1
	if target != topID {
		targetLabel = o.Label(target)
	}
	frontierLabel := o.Label(p)

	// Fill the chain strictly between the frontier and the target. Every
	// variable here was live during the descent above, so most are
	// assigned (decided or forced by propagation): spec.md §4.7 wires only
	// the side the assignment actually chose to next, leaving the other
	// side noChild (Complete later resolves that to BOT). A variable can
	// still be genuinely unassigned when target is a cache hit rather than
	// a model (the cached subtree summarizes completions free to go either
	// way); only then is the node a real don't-care with both sides set.
	next := target
	for lbl := targetLabel - 1; lbl > frontierLabel; lbl-- {
		v := Var(lbl - 1)
		switch s.assigns[v] {
		case lTrue:
			next = o.Node(int32(lbl), noChild, next)
		case lFalse:
			next = o.Node(int32(lbl), next, noChild)
		default:
			next = o.Node(int32(lbl), next, next)
		}
	}

	v := Var(frontierLabel - 1)
	if s.assigns[v] == lTrue {
		o.nodes[p].hi = next
	} else {
		o.nodes[p].lo = next
	}
	path = append(path, next)
	for next != target && !o.IsConst(next) {
		nv := Var(o.Label(next) - 1)
		var nxt obddID
		if s.assigns[nv] == lTrue {
			nxt = o.High(next)
		} else {
			nxt = o.Low(next)
		}
		path = append(path, nxt)
		next = nxt
	}
	s.obddPath = path
}
