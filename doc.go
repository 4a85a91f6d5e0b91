// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package allsat implements an AllSAT solver: a conflict-driven clause-learning
(CDCL) search engine, derived from MiniSat, extended to enumerate every
satisfying assignment of a CNF formula instead of stopping at the first one.

Rather than collecting models into a list, the solver builds them
incrementally into an unreduced, ordered binary decision diagram (OBDD): one
path from the OBDD's root to its TOP terminal corresponds to one model (or,
when the path does not decide every variable, a whole block of models). A
subspace-equivalence cache, keyed by separator or cutset fingerprints stored
in fixed-width binary tries, lets the search reuse OBDD subtrees across
branches that agree on the variables still visible at a boundary.

Two search modes are available, selected with Blocking/NonBlocking: blocking
mode forbids each model with a learnt clause once it is found; non-blocking
mode instead chronologically flips the last decision, with a choice of
backjumping policy (BT, BJ, CBJ, BJCBJ) and an optional node-count-bounded
refresh that periodically flushes the OBDD under construction into a running
total.

This package only implements the search core and its data structures. DIMACS
parsing lives in the dimacs subpackage, a reduced-BDD post-pass and an
independent counting oracle live in the reduce subpackage, and the command
line lives in cmd/allsat.
*/
package allsat
