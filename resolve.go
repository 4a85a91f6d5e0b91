// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

import "fmt"

// resolve implements perform_resolution (spec.md §4.4, §4.5 CBJ): combines
// two learnt clauses a and b whose first literals are complementary (the
// resolution pivot) into a single clause over their remaining literals,
// deduplicated, with the highest-(sub)level literal moved to index 0.
//
// The two inputs must not otherwise share a variable with opposite signs:
// the original implementation asserts this instead of handling it (spec.md
// DESIGN NOTES §9, "Open question" — a commented-out branch once handled
// mid-resolution cancellation). We preserve that assertion as a panic
// rather than silently resolve it away, since the search's own invariants
// are supposed to make it unreachable; resolve_test.go exercises this
// guard directly.
func resolve(a, b []Lit, levelOf func(Lit) int32) []Lit {
	if len(a) == 0 || len(b) == 0 || a[0] != b[0].Neg() {
		panic("resolve: first literals are not complementary")
	}
	seen := make(map[Var]Lit, len(a)+len(b))
	var out []Lit
	add := func(l Lit) {
		if prev, ok := seen[l.Var()]; ok {
			if prev != l {
				panic(fmt.Sprintf("resolve: variable %d occurs with opposite signs away from the pivot", l.Var()+1))
			}
			return
		}
		seen[l.Var()] = l
		out = append(out, l)
	}
	for _, l := range a[1:] {
		add(l)
	}
	for _, l := range b[1:] {
		add(l)
	}
	if len(out) == 0 {
		return out
	}
	best := 0
	for i := 1; i < len(out); i++ {
		if levelOf(out[i]) > levelOf(out[best]) {
			best = i
		}
	}
	out[0], out[best] = out[best], out[0]
	return out
}
