// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

import "fmt"

// Var is a Boolean variable, numbered 0..n-1 as in spec.md §3. VarUndef is
// the reserved sentinel for "no variable".
type Var int32

// VarUndef is the reserved sentinel meaning "no variable".
const VarUndef Var = -1

// Lit is a literal: a variable paired with a sign bit. Negating a literal
// toggles the low bit; the variable is encoded in the remaining bits. This
// is the same "signed index" convention MiniSat (and the teacher's node
// pool) use for compact packing.
type Lit int32

// LitUndef is the reserved sentinel meaning "no literal".
const LitUndef Lit = -1

// MkLit builds the literal for variable v, negated when sign is true.
func MkLit(v Var, sign bool) Lit {
	if sign {
		return Lit(v)<<1 | 1
	}
	return Lit(v) << 1
}

// Var returns the variable underlying a literal.
func (l Lit) Var() Var { return Var(l >> 1) }

// Sign reports whether l is the negative phase of its variable.
func (l Lit) Sign() bool { return l&1 == 1 }

// Neg returns the complementary literal.
func (l Lit) Neg() Lit { return l ^ 1 }

func (l Lit) String() string {
	if l.Sign() {
		return fmt.Sprintf("-%d", l.Var()+1)
	}
	return fmt.Sprintf("%d", l.Var()+1)
}

// lbool is a three-valued assignment per spec.md §3: Undef, True or False.
type lbool int8

const (
	lUndef lbool = iota
	lTrue
	lFalse
)

func (b lbool) String() string {
	switch b {
	case lTrue:
		return "T"
	case lFalse:
		return "F"
	default:
		return "?"
	}
}

// fromSign returns the lbool a literal's sign denotes when the literal is
// assigned true (i.e. the truth value of its underlying variable).
func fromSign(sign bool) lbool {
	if sign {
		return lFalse
	}
	return lTrue
}
