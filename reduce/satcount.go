// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package reduce

import "math/big"

// Satcount counts n's satisfying total assignments over all Varnum
// variables, using the same level-skip shifting technique obdd.go's own
// NSolsBig uses for the unreduced OBDD: variables that a path skips over are
// "don't care" and each contributes a factor of two, computed from the gap
// between a node's level and its child's (terminals read as level maxvar,
// one past the last real variable, via varOf).
func (b *BDD) Satcount(n Node) *big.Int {
	if n == False {
		return big.NewInt(0)
	}
	memo := map[Node]*big.Int{False: big.NewInt(0), True: big.NewInt(1)}
	var count func(Node) *big.Int
	count = func(x Node) *big.Int {
		if r, ok := memo[x]; ok {
			return r
		}
		nd := b.nodes[x]
		lo := new(big.Int).Set(count(nd.lo))
		if shift := b.varOf(nd.lo) - nd.v - 1; shift > 0 {
			lo.Lsh(lo, uint(shift))
		}
		hi := new(big.Int).Set(count(nd.hi))
		if shift := b.varOf(nd.hi) - nd.v - 1; shift > 0 {
			hi.Lsh(hi, uint(shift))
		}
		r := new(big.Int).Add(lo, hi)
		memo[x] = r
		return r
	}
	r := count(n)
	if shift := b.varOf(n); shift > 0 {
		r = new(big.Int).Lsh(r, uint(shift))
	}
	return r
}
