// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package allsat

import (
	"bytes"
	"math/big"
	"testing"
)

// TestOBDDSingleVariableTrue builds the OBDD for scenario A (spec.md §8):
// the single-variable formula {x1}, which accepts exactly x1=1.
func TestOBDDSingleVariableTrue(t *testing.T) {
	o := NewOBDD(1)
	root := o.Root()
	o.nodes[root].lo = botID
	o.nodes[root].hi = topID

	o.Complete()
	n := o.NSolsBig()
	if n.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("NSolsBig() = %s, want 1", n)
	}

	var buf bytes.Buffer
	total, err := o.Decompose(&buf)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if total != 1 {
		t.Fatalf("Decompose total = %d, want 1", total)
	}
	if buf.String() != "1\n" {
		t.Fatalf("Decompose output = %q, want %q", buf.String(), "1\n")
	}
}

// TestOBDDUnwiredChildDefaultsToBot exercises Complete's handling of a node
// whose child was never wired (the noChild sentinel), which must resolve to
// BOT rather than panic.
func TestOBDDUnwiredChildDefaultsToBot(t *testing.T) {
	o := NewOBDD(2)
	root := o.Root()
	o.nodes[root].hi = topID
	// lo is left as noChild deliberately.

	o.Complete()
	if o.Low(root) != botID {
		t.Fatalf("Low(root) = %d, want botID after Complete", o.Low(root))
	}
}

// TestOBDDAllAssignments builds a 2-variable OBDD with no constraints (every
// total assignment is a model, scenario B) and checks the count is 2^n.
func TestOBDDAllAssignments(t *testing.T) {
	o := NewOBDD(2)
	n1 := o.Node(2, topID, topID)
	root := o.Root()
	o.nodes[root].lo = n1
	o.nodes[root].hi = n1

	o.Complete()
	n := o.NSolsBig()
	if n.Cmp(big.NewInt(4)) != 0 {
		t.Fatalf("NSolsBig() = %s, want 4", n)
	}
}

func TestOBDDVariableOrderInvariant(t *testing.T) {
	o := NewOBDD(3)
	n2 := o.Node(3, botID, topID)
	root := o.Root()
	o.nodes[root].lo = n2
	o.nodes[root].hi = topID
	o.Complete()

	for _, id := range o.order {
		for _, child := range []obddID{o.Low(id), o.High(id)} {
			if o.IsConst(child) {
				continue
			}
			if o.Label(id) >= o.Label(child) {
				t.Fatalf("variable-order invariant violated: label(%d)=%d >= label(child)=%d", id, o.Label(id), o.Label(child))
			}
		}
	}
}

func TestOBDDEmptyIsBot(t *testing.T) {
	o := NewOBDD(1)
	o.SetRoot(botID)
	n := o.NSolsBig()
	if n.Sign() != 0 {
		t.Fatalf("NSolsBig() = %s, want 0", n)
	}
}

// TestNSolsAllVariablesFree sets the root straight to TOP with no variable
// decided: every one of the 2^nvars total assignments is a model.
func TestNSolsAllVariablesFree(t *testing.T) {
	o := NewOBDD(1)
	o.SetRoot(topID)
	o.Complete()
	if n, sat := o.NSols(); n != 2 || sat {
		t.Fatalf("NSols() = (%d, %v), want (2, false)", n, sat)
	}
}
