// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

// Clause is an ordered list of literals plus a learnt bit and, when learnt,
// an activity float (spec.md §3 "Clause"). A clause is watched via its
// first two literals (lits[0], lits[1]); binary clauses additionally get an
// inline watch so that most unit propagation never dereferences a *Clause
// at all (spec.md §3 "Watch list").
type Clause struct {
	lits     []Lit
	learnt   bool
	activity float64
}

func newClause(lits []Lit, learnt bool) *Clause {
	c := &Clause{lits: append([]Lit(nil), lits...), learnt: learnt}
	return c
}

// Len returns the number of literals in the clause.
func (c *Clause) Len() int { return len(c.lits) }

// Lits returns the clause's literals; callers must not mutate the slice.
func (c *Clause) Lits() []Lit { return c.lits }

// watchKind tags a Watch as either an inline binary reference or a full
// clause pointer. This is the tagged-variant translation of the teacher's
// (and the original C solver's) pointer-tagging trick, as prescribed by
// spec.md DESIGN NOTES §9: "Watch = Binary(Lit) | Clause(Handle); no
// semantic change."
type watchKind uint8

const (
	watchBinary watchKind = iota
	watchClause
)

// Watch is one entry of a per-literal watch list (spec.md §3 "Watch
// list"). A binary watch carries the single other literal of the binary
// clause directly, avoiding a pointer indirection through a *Clause; a
// clause watch carries the clause handle.
type Watch struct {
	kind  watchKind
	other Lit     // valid when kind == watchBinary
	cla   *Clause // valid when kind == watchClause
}

func binaryWatch(other Lit) Watch { return Watch{kind: watchBinary, other: other} }
func clauseWatch(c *Clause) Watch { return Watch{kind: watchClause, cla: c} }

// IsBinary reports whether w is an inline binary watch.
func (w Watch) IsBinary() bool { return w.kind == watchBinary }
