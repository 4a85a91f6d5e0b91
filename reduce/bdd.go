// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package reduce

import "fmt"

// Node is the address of a vertex in a BDD. By convention False is the
// constant-0 function and True is constant-1; every other Node indexes into
// the owning BDD's node table.
type Node int

// The two terminal nodes, fixed across every BDD.
const (
	False Node = 0
	True  Node = 1
)

// entry is one hash-consed vertex: a variable level and its two branches.
type entry struct {
	v      int
	lo, hi Node
}

type key struct {
	v      int
	lo, hi Node
}

// BDD is a minimal hash-consed, reduced, ordered binary decision diagram
// engine. It implements spec.md §6's external-collaborator contract for a
// reduced-BDD backend: New corresponds to that contract's init(maxvar),
// True/False to top()/bot(), MkNode to node(var,lo,hi) -> ref (hash-consing
// makes the result canonical), Size to size(ref), and Quit to quit(). Unlike
// the engine this module used to vendor, it never garbage collects: every
// BDD here is built once, queried, and discarded, which matches how
// adapter.go's BuildOracle/ReplayOBDD use it.
type BDD struct {
	maxvar int
	nodes  []entry
	table  map[key]Node
	err    string
}

// New initializes a BDD over maxvar variables, numbered 0..maxvar-1 to match
// allsat.Var. opts tune the initial node-table capacity the way the
// teacher's functional-options configs did; the cache-size/ratio and
// garbage-collection knobs that configs also carried are gone along with
// the collector they tuned.
func New(maxvar int, opts ...func(*configs)) (*BDD, error) {
	if maxvar < 0 {
		return nil, fmt.Errorf("reduce: negative variable count %d", maxvar)
	}
	cfg := makeconfigs(maxvar)
	for _, opt := range opts {
		opt(cfg)
	}
	b := &BDD{
		maxvar: maxvar,
		nodes:  make([]entry, 2, cfg.nodesize),
		table:  make(map[key]Node, cfg.nodesize),
	}
	return b, nil
}

// Quit releases the node table; the BDD must not be used afterward. It
// mirrors the explicit teardown step spec.md §6's quit() names, even though
// Go's own garbage collector would reclaim the same memory once the BDD
// becomes unreachable.
func (b *BDD) Quit() {
	b.nodes = nil
	b.table = nil
}

// Error returns the first error recorded against this BDD, or "" if none.
func (b *BDD) Error() string {
	return b.err
}

func (b *BDD) seterror(format string, args ...interface{}) {
	if b.err == "" {
		b.err = fmt.Sprintf(format, args...)
	}
}

// True returns the constant-1 function.
func (b *BDD) True() Node { return True }

// False returns the constant-0 function.
func (b *BDD) False() Node { return False }

// Varnum returns the number of variables this BDD was initialized with.
func (b *BDD) Varnum() int { return b.maxvar }

// varOf reports the variable level of n, or maxvar (one past the last valid
// level) for either terminal. Every skip-counting computation in Apply and
// Satcount relies on this sentinel to treat "no more variables decided
// below here" uniformly with "ran off the end of a real node".
func (b *BDD) varOf(n Node) int {
	if n == True || n == False {
		return b.maxvar
	}
	return b.nodes[n].v
}

func (b *BDD) low(n Node) Node  { return b.nodes[n].lo }
func (b *BDD) high(n Node) Node { return b.nodes[n].hi }

// MkNode is the hash-consing constructor spec.md §6 calls node(var,lo,hi):
// it returns the unique Node for (v, lo, hi), creating one only if no
// existing node already has that shape, and collapsing to lo directly when
// lo == hi (a node whose two branches agree decides nothing).
func (b *BDD) MkNode(v int, lo, hi Node) Node {
	if v < 0 || v >= b.maxvar {
		b.seterror("reduce: variable %d out of range [0,%d)", v, b.maxvar)
		return False
	}
	if lo == hi {
		return lo
	}
	k := key{v, lo, hi}
	if n, ok := b.table[k]; ok {
		return n
	}
	b.nodes = append(b.nodes, entry{v: v, lo: lo, hi: hi})
	n := Node(len(b.nodes) - 1)
	b.table[k] = n
	return n
}

// Ithvar returns the BDD representing the positive literal of variable i.
func (b *BDD) Ithvar(i int) Node {
	return b.MkNode(i, False, True)
}

// NIthvar returns the BDD representing the negative literal of variable i.
func (b *BDD) NIthvar(i int) Node {
	return b.MkNode(i, True, False)
}

// Size counts the nodes reachable from n, not counting the terminals. This
// is the size(ref) operation spec.md §6 asks the collaborator to expose,
// used to report how much sharing a reduced BDD recovers over the
// unreduced OBDD it was replayed from.
func (b *BDD) Size(n Node) int {
	seen := make(map[Node]bool)
	var walk func(Node)
	walk = func(x Node) {
		if x == True || x == False || seen[x] {
			return
		}
		seen[x] = true
		walk(b.low(x))
		walk(b.high(x))
	}
	walk(n)
	return len(seen)
}
