// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

import "testing"

func TestLitMkLitRoundTrip(t *testing.T) {
	for v := Var(0); v < 8; v++ {
		for _, sign := range []bool{false, true} {
			l := MkLit(v, sign)
			if l.Var() != v {
				t.Fatalf("MkLit(%d, %v).Var() = %d, want %d", v, sign, l.Var(), v)
			}
			if l.Sign() != sign {
				t.Fatalf("MkLit(%d, %v).Sign() = %v, want %v", v, sign, l.Sign(), sign)
			}
		}
	}
}

func TestLitNeg(t *testing.T) {
	l := MkLit(3, false)
	n := l.Neg()
	if n.Var() != 3 || !n.Sign() {
		t.Fatalf("Neg() = %v, want negated literal of var 3", n)
	}
	if n.Neg() != l {
		t.Fatalf("double negation did not return the original literal")
	}
}

func TestLitString(t *testing.T) {
	if got := MkLit(0, false).String(); got != "1" {
		t.Fatalf("String() = %q, want %q", got, "1")
	}
	if got := MkLit(0, true).String(); got != "-1" {
		t.Fatalf("String() = %q, want %q", got, "-1")
	}
}

func TestFromSign(t *testing.T) {
	if fromSign(false) != lTrue {
		t.Fatalf("fromSign(false) should be lTrue")
	}
	if fromSign(true) != lFalse {
		t.Fatalf("fromSign(true) should be lFalse")
	}
}
