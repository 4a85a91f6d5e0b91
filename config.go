// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

import "io"

// BacktrackPolicy selects one of the non-blocking backtracking strategies of
// spec.md §4.5. It has no effect in blocking mode, which always uses the
// simple backjump described there.
type BacktrackPolicy int

const (
	// BT always chronologically flips the last decision on conflict.
	BT BacktrackPolicy = iota
	// BJ backjumps to the running minimum level when possible, else flips.
	BJ
	// CBJ performs conflict-directed backjumping via resolution of learnt
	// clauses.
	CBJ
	// BJCBJ runs BJ while lim < current level, else CBJ.
	BJCBJ
)

func (p BacktrackPolicy) String() string {
	switch p {
	case BT:
		return "bt"
	case BJ:
		return "bj"
	case CBJ:
		return "cbj"
	case BJCBJ:
		return "bj+cbj"
	default:
		return "?"
	}
}

// UIPMode selects the granularity of 1-UIP conflict analysis (spec.md
// §4.4).
type UIPMode int

const (
	// DecisionLevel is the classical 1-UIP, at decision-level granularity.
	DecisionLevel UIPMode = iota
	// Sublevel performs 1-UIP within the current sublevel; only meaningful
	// in non-blocking mode (spec.md §5 "Sublevel").
	Sublevel
)

// CacheMode selects how subspace-equivalence fingerprints are computed
// (spec.md §4.6).
type CacheMode int

const (
	// CacheSeparator fingerprints on the separator set at each boundary.
	CacheSeparator CacheMode = iota
	// CacheCutset fingerprints on the cutset at each boundary.
	CacheCutset
)

// configs holds every construction-time parameter of a Solver, set through
// functional options exactly as the teacher's BDD engine configures itself
// (see reduce/config.go: Nodesize).
type configs struct {
	blocking    bool
	backtrack   BacktrackPolicy
	uip         UIPMode
	cacheMode   CacheMode
	eager       bool // true: eager cache probing (default); false: lazy
	maxNodes    int  // 0 disables refresh
	randomSeed  int64
	varDecay    float64
	clauseDecay float64
	noCache     bool // forces every cache lookup to miss (testable property §8.6)
	refreshSink io.Writer // receives a decomposition dump at every refresh event
}

func defaultConfigs() *configs {
	return &configs{
		blocking:    false,
		backtrack:   CBJ,
		uip:         DecisionLevel,
		cacheMode:   CacheSeparator,
		eager:       true,
		maxNodes:    0,
		randomSeed:  91648253,
		varDecay:    0.95,
		clauseDecay: 0.999,
	}
}

// Option configures a Solver at construction time.
type Option func(*configs)

// Blocking selects blocking mode: on every model, a blocking clause is
// learnt to forbid it (spec.md §1, §4.5).
func Blocking() Option { return func(c *configs) { c.blocking = true } }

// NonBlocking selects non-blocking mode (the default): models are excluded
// by chronological flip instead of a learnt clause.
func NonBlocking() Option { return func(c *configs) { c.blocking = false } }

// WithBacktrack selects the non-blocking backtracking policy.
func WithBacktrack(p BacktrackPolicy) Option {
	return func(c *configs) { c.backtrack = p }
}

// WithUIP selects 1-UIP granularity for conflict analysis.
func WithUIP(m UIPMode) Option { return func(c *configs) { c.uip = m } }

// WithCache selects the fingerprint family used by the cache manager.
func WithCache(m CacheMode) Option { return func(c *configs) { c.cacheMode = m } }

// Eager enables eager cache probing: a fingerprint is computed and looked up
// at every decided variable (the default).
func Eager() Option { return func(c *configs) { c.eager = true } }

// Lazy enables lazy cache probing: the solver skips to the end of the
// unassigned prefix and only probes the cache once there (spec.md §4.8 step
// 4, "Lazy mode").
func Lazy() Option { return func(c *configs) { c.eager = false } }

// WithMaxNodes enables the OBDD-size-bounded refresh of spec.md §4.8
// ("Refresh"); 0 (the default) disables refresh entirely. Only meaningful
// in non-blocking mode.
func WithMaxNodes(n int) Option {
	return func(c *configs) { c.maxNodes = n }
}

// WithRandomSeed sets the seed of the solver's PRNG. The search does not
// draw from it: decisions always take the negative phase in variable order.
func WithRandomSeed(seed int64) Option { return func(c *configs) { c.randomSeed = seed } }

// WithVarDecay sets the variable activity decay factor.
func WithVarDecay(d float64) Option { return func(c *configs) { c.varDecay = d } }

// WithClauseDecay sets the learnt-clause activity decay factor.
func WithClauseDecay(d float64) Option { return func(c *configs) { c.clauseDecay = d } }

// NoCache forces every cache lookup to miss; used to test spec.md §8.6
// "Cache correctness" (disabling the cache must not change the solution
// count).
func NoCache() Option { return func(c *configs) { c.noCache = true } }

// WithRefreshSink streams a decomposition of the OBDD to w at every refresh
// event (spec.md §6 "Output (models)": "Under refresh, the OBDD is
// decomposed and streamed at every refresh event").
func WithRefreshSink(w io.Writer) Option {
	return func(c *configs) { c.refreshSink = w }
}
