// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

import (
	"io"
	"math"
	"math/big"
)

// obddID indexes a node in an OBDD's pool. The two terminal nodes are
// pinned at fixed ids, mirroring the singleton top_node/bot_node of
// original_source/bdd_minisat_all-1.0.2/obdd.c.
type obddID int32

// NodeID is the exported spelling of obddID, letting external packages (the
// reduce adapter) hold and compare node identities returned by Root/Low/High
// without reaching into the solver's internals.
type NodeID = obddID

const (
	botID    obddID = 0 // BOT, path-counted as 0
	topID    obddID = 1 // TOP, path-counted as 1
	noChild  obddID = -1
	maxCount        = math.MaxInt64 // the saturating bound spec.md calls INTPTR_MAX
)

// obddNode is one DAG vertex: a variable label, two child edges, and a
// thread pointer used to enumerate all reachable nodes (spec.md §3 "OBDD
// node"). Unlike the original C node, we do not overload the variable field
// as a visit marker (spec.md DESIGN NOTES §9's "explicit marker" option);
// Complete uses its own visited slice instead.
type obddNode struct {
	v       int32
	lo, hi  obddID
	next    obddID // set by Complete; threads every node reachable from root
}

// OBDD is a pool-allocated, ordered-but-not-reduced binary decision diagram
// over variables 1..nvars (spec.md §4.2). One OBDD corresponds to one
// "epoch" of the search driver's construction: a fresh OBDD is allocated
// when the Solver is built and, in non-blocking mode, again after every refresh
// (spec.md §4.8 "Refresh").
type OBDD struct {
	nvars    int
	nodes    []obddNode
	free     []obddID
	root     obddID
	order    []obddID // populated by Complete; nil until then
	produced int64    // total nodes ever allocated in this epoch
}

// NewOBDD allocates an OBDD over nvars variables with a fresh root node
// labelled 1, as spec.md §4.8 specifies for the initial search state.
func NewOBDD(nvars int) *OBDD {
	o := &OBDD{nvars: nvars}
	// terminals occupy fixed slots 0 and 1; their label is unused (no
	// variable is ever compared against a terminal's v field because
	// IsConst is always checked first).
	o.nodes = append(o.nodes, obddNode{v: int32(nvars + 1)}, obddNode{v: int32(nvars + 1)})
	o.root = o.Node(1, noChild, noChild)
	return o
}

// Label returns the 1-based variable index of a node.
func (o *OBDD) Label(id obddID) int { return int(o.nodes[id].v) }

// IsConst reports whether id is one of the two terminal nodes.
func (o *OBDD) IsConst(id obddID) bool { return id == botID || id == topID }

// Low returns the false-branch child of a non-terminal node.
func (o *OBDD) Low(id obddID) obddID { return o.nodes[id].lo }

// High returns the true-branch child of a non-terminal node.
func (o *OBDD) High(id obddID) obddID { return o.nodes[id].hi }

// Root returns the current root of the OBDD.
func (o *OBDD) Root() obddID { return o.root }

// SetRoot replaces the root. The search driver never calls it; it lets a
// caller (such as the tests) point a fresh OBDD straight at a terminal.
func (o *OBDD) SetRoot(id obddID) { o.root = id }

// IsTop reports whether id is the constant-true terminal.
func (o *OBDD) IsTop(id obddID) bool { return id == topID }

// IsBot reports whether id is the constant-false terminal.
func (o *OBDD) IsBot(id obddID) bool { return id == botID }

// Nvars returns the number of variables the OBDD is ordered over.
func (o *OBDD) Nvars() int { return o.nvars }

// Node allocates a fresh node with the given label and children (spec.md
// §4.2 "obdd_node(v, lo, hi) returns a fresh node with aux = 0"). A child
// may be noChild when not yet wired; Complete replaces any remaining
// noChild with BOT.
func (o *OBDD) Node(v int32, lo, hi obddID) obddID {
	if n := len(o.free); n > 0 {
		id := o.free[n-1]
		o.free = o.free[:n-1]
		o.nodes[id] = obddNode{v: v, lo: lo, hi: hi}
		o.produced++
		return id
	}
	o.nodes = append(o.nodes, obddNode{v: v, lo: lo, hi: hi})
	o.produced++
	return obddID(len(o.nodes) - 1)
}

// NNodes returns the number of non-terminal nodes ever produced in this
// OBDD epoch (spec.md §6 "|obdd| (cumulative nodes across refreshes)").
func (o *OBDD) NNodes() int64 { return o.produced }

// Complete walks the DAG below root, threading every reachable non-terminal
// node via `next` and replacing any unset (noChild) edge by BOT (spec.md
// §4.2 "obdd_complete"). It returns the non-terminal count. The walk is
// iterative with an explicit stack, as in the original C implementation
// (which uses its sign-flip trick only to mark visited nodes, not for
// recursion).
func (o *OBDD) Complete() int64 {
	visited := make([]bool, len(o.nodes))
	var order []obddID
	var stack []obddID
	p := o.root
	for {
		for p != botID && p != topID && p != noChild && !visited[p] {
			visited[p] = true
			order = append(order, p)
			stack = append(stack, p)
			p = o.nodes[p].lo
		}
		if len(stack) == 0 {
			break
		}
		p = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		p = o.nodes[p].hi
	}
	for i, id := range order {
		if o.nodes[id].lo == noChild {
			o.nodes[id].lo = botID
		}
		if o.nodes[id].hi == noChild {
			o.nodes[id].hi = botID
		}
		if i+1 < len(order) {
			o.nodes[id].next = order[i+1]
		} else {
			o.nodes[id].next = noChild
		}
	}
	o.order = order
	return int64(len(order))
}

// NSolsBig counts the number of satisfying total assignments using
// arbitrary-precision arithmetic, grounded on
// original_source/.../obdd.c:obdd_nsols_gmp. spec.md DESIGN NOTES §9
// resolves the saturating-vs-big-integer Open Question in favour of a
// single big.Int computation with a derived saturating view (see NSols).
func (o *OBDD) NSolsBig() *big.Int {
	if o.order == nil {
		o.Complete()
	}
	n := o.nvars
	buckets := make([][]obddID, n+2)
	for _, id := range o.order {
		v := int(o.nodes[id].v)
		buckets[v] = append(buckets[v], id)
	}
	val := make([]*big.Int, len(o.nodes))
	val[botID] = big.NewInt(0)
	val[topID] = big.NewInt(1)
	childLabel := func(id obddID) int {
		if o.IsConst(id) {
			return n + 1
		}
		return int(o.nodes[id].v)
	}
	for i := n; i > 0; i-- {
		for _, id := range buckets[i] {
			nd := &o.nodes[id]
			hi := new(big.Int).Set(val[nd.hi])
			if shift := childLabel(nd.hi) - i - 1; shift > 0 {
				hi.Lsh(hi, uint(shift))
			}
			lo := new(big.Int).Set(val[nd.lo])
			if shift := childLabel(nd.lo) - i - 1; shift > 0 {
				lo.Lsh(lo, uint(shift))
			}
			val[id] = new(big.Int).Add(hi, lo)
		}
	}
	result := new(big.Int).Set(val[o.root])
	if shift := childLabel(o.root) - 1; shift > 0 {
		result.Lsh(result, uint(shift))
	}
	return result
}

var maxCountBig = big.NewInt(maxCount)

// NSols returns the saturating path count (spec.md §4.2, §8.9): the exact
// count when it fits in an int64, or (maxCount, true) when it overflows.
func (o *OBDD) NSols() (int64, bool) {
	n := o.NSolsBig()
	if n.Cmp(maxCountBig) >= 0 {
		return maxCount, true
	}
	return n.Int64(), false
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func mul2expSat(x uint64, k int) uint64 {
	if k <= 0 {
		return x
	}
	if k >= 64 || x > (math.MaxUint64>>uint(k)) {
		return math.MaxUint64
	}
	return x << uint(k)
}

func addSat(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// Decompose writes, for every path from root to TOP, a line of '0'/'1'
// glyphs (one per decided variable along that path) to w, and returns the
// total number of total assignments represented (each partial path counts
// its omitted variables as a 2^k multiplicity), saturating at
// math.MaxUint64. Grounded on
// original_source/.../obdd.c:obdd_decompose_main + fprintf_partial_soh
// (spec.md §6 "Output (models)").
func (o *OBDD) Decompose(w io.Writer) (uint64, error) {
	if o.order == nil {
		o.Complete()
	}
	n := o.nvars
	a := make([]int, n+1)
	var stack []obddID
	s := 0
	p := o.root
	var total uint64
	buf := make([]byte, 0, n+1)
	for {
		for p != botID && p != topID {
			stack = append(stack, p)
			a[s] = -int(o.nodes[p].v)
			s++
			p = o.nodes[p].lo
		}
		if p == topID {
			buf = buf[:0]
			prev := 0
			var sols uint64 = 1
			for j := 0; j < s; j++ {
				if a[j] < 0 {
					buf = append(buf, '0')
				} else {
					buf = append(buf, '1')
				}
				sols = mul2expSat(sols, absInt(a[j])-prev-1)
				prev = absInt(a[j])
			}
			sols = mul2expSat(sols, n-prev)
			buf = append(buf, '\n')
			if _, err := w.Write(buf); err != nil {
				return total, err
			}
			total = addSat(total, sols)
		}
		if len(stack) == 0 {
			break
		}
		p = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for {
			s--
			if a[s] <= 0 {
				break
			}
		}
		a[s] = absInt(a[s])
		s++
		p = o.nodes[p].hi
	}
	return total, nil
}
