// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package reduce

// Operator names a binary Boolean connective usable with Apply. Only the
// two connectives adapter.go actually drives (OPand, OPor) get terminal
// shortcuts; that is the whole vocabulary BuildOracle needs to assemble a
// CNF's characteristic function.
type Operator int

const (
	OPand Operator = iota
	OPor
)

func (op Operator) String() string {
	if op == OPand {
		return "and"
	}
	return "or"
}

// terminal reports the result of op on x, y when at least one operand is a
// constant, and whether such a shortcut applies.
func terminal(op Operator, x, y Node) (Node, bool) {
	switch op {
	case OPand:
		if x == False || y == False {
			return False, true
		}
		if x == True {
			return y, true
		}
		if y == True {
			return x, true
		}
	case OPor:
		if x == True || y == True {
			return True, true
		}
		if x == False {
			return y, true
		}
		if y == False {
			return x, true
		}
	}
	return False, false
}

// Apply combines x and y under op, recursing on whichever operand has the
// lower variable level (so both branches stay aligned to the same
// variable) and hash-consing every intermediate node through MkNode.
// Results are memoized per call, since the same pair of subgraphs can recur
// many times across a CNF's clauses.
func (b *BDD) Apply(x, y Node, op Operator) Node {
	memo := make(map[key]Node)
	var rec func(x, y Node) Node
	rec = func(x, y Node) Node {
		if r, ok := terminal(op, x, y); ok {
			return r
		}
		k := key{int(op), x, y}
		if r, ok := memo[k]; ok {
			return r
		}
		vx, vy := b.varOf(x), b.varOf(y)
		var v int
		var lo, hi Node
		switch {
		case vx == vy:
			v = vx
			lo = rec(b.low(x), b.low(y))
			hi = rec(b.high(x), b.high(y))
		case vx < vy:
			v = vx
			lo = rec(b.low(x), y)
			hi = rec(b.high(x), y)
		default:
			v = vy
			lo = rec(x, b.low(y))
			hi = rec(x, b.high(y))
		}
		r := b.MkNode(v, lo, hi)
		memo[k] = r
		return r
	}
	return rec(x, y)
}

// Not returns the negation of n, memoized so shared subgraphs are only
// flipped once.
func (b *BDD) Not(n Node) Node {
	memo := make(map[Node]Node)
	var rec func(Node) Node
	rec = func(x Node) Node {
		if x == True {
			return False
		}
		if x == False {
			return True
		}
		if r, ok := memo[x]; ok {
			return r
		}
		r := b.MkNode(b.nodes[x].v, rec(b.low(x)), rec(b.high(x)))
		memo[x] = r
		return r
	}
	return rec(n)
}

// Ite computes (f & g) | (!f & h), the if-then-else operator, via Apply and
// Not rather than its own three-way recursion; BuildOracle and ReplayOBDD
// are the only callers and neither is on a hot path that would justify the
// extra machinery a dedicated ITE traversal buys.
func (b *BDD) Ite(f, g, h Node) Node {
	return b.Apply(b.Apply(f, g, OPand), b.Apply(b.Not(f), h, OPand), OPor)
}
