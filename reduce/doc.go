// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package reduce implements a small hash-consed, reduced, ordered binary
decision diagram engine, used within this module as the allsat package's
external reduced-BDD collaborator.

It plays two roles for the allsat package: it is the engine an AllSAT
solver can hand its unreduced OBDD off to for a canonical post-pass (see
adapter.go's ReplayOBDD), and it is an independent Apply/Satcount oracle the
allsat verify command uses to cross-check a solve's reported model count
against a characteristic-function BDD built directly from the same clauses
(see adapter.go's BuildOracle/VerifyCounts), entirely outside the CDCL
search path.

Each BDD has a fixed number of variables, declared when it is initialized
with New, and each variable is represented by an integer index in the
interval [0, Varnum), matching allsat's own 0-based Var. Every operation
returns a Node, an index into the BDD's node table; by convention True and
False name the two constant functions.

Unlike a general-purpose BDD package, this one never garbage collects and
keeps no reference counts: a BDD here is built once for a single query
(a characteristic function, or a replayed OBDD) and discarded, so nothing
is reclaimed mid-build and Quit simply drops the whole table at once.
*/
package reduce
