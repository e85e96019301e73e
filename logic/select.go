package logic

import (
	"fmt"
	"strings"

	"github.com/provekit/smtgen/graph"
	"github.com/provekit/smtgen/solver"
)

// Universal is the "all theories" logic.
const Universal = "ALL"

// Logic is a selected logic name plus the reason it was chosen, kept
// for diagnostic comments in the emitted script.
type Logic struct {
	Name   string
	Reason string
}

// Select picks the logic for a snapshot. The rule order is fixed and
// deliberately not improved upon: downstream capability-gated behavior
// depends on it.
//
//  1. A single explicit override wins verbatim; more than one is fatal.
//  2. Any feature the capability record cannot serve is fatal, listing
//     every unmet requirement.
//  3. Any feature outside plain bitvector arithmetic forces Universal.
//  4. Floating kinds pick a floating-point logic, quantifier-free
//     unless foralls exist, with bitvectors mixed in when present.
//  5. Interactive sessions pick Universal; otherwise a bitvector logic
//     name is assembled from parts (quantifier-free unless foralls or
//     axioms exist), falling back to Universal when the backend lacks
//     bitvector support.
func Select(snap *graph.Snapshot, f Features, caps solver.Caps) (Logic, error) {
	switch n := len(snap.Cfg.LogicOverrides); {
	case n == 1:
		return Logic{Name: snap.Cfg.LogicOverrides[0], Reason: "explicit override"}, nil
	case n > 1:
		return Logic{}, fmt.Errorf("%w: %d logics given: %s",
			ErrOverride, n, strings.Join(snap.Cfg.LogicOverrides, ", "))
	}

	if unmet := f.Unmet(caps); len(unmet) > 0 {
		return Logic{}, fmt.Errorf("%w: %s", ErrUnsupported, strings.Join(unmet, ", "))
	}

	if reason, ok := f.universalReason(); ok {
		return Logic{Name: Universal, Reason: reason}, nil
	}

	if f.Floats || f.RoundingMode {
		name := "FP"
		if f.BitVectors {
			name = "BVFP"
		}
		// Axioms do not force the quantified form here; only foralls do.
		if len(snap.Foralls) == 0 {
			name = "QF_" + name
		}
		return Logic{Name: name, Reason: "floating point"}, nil
	}

	if snap.Cfg.Interactive {
		return Logic{Name: Universal, Reason: "interactive session"}, nil
	}
	if !caps.BitVectors {
		return Logic{Name: Universal, Reason: "no bitvector support"}, nil
	}
	quantified := len(snap.Foralls) > 0 || len(snap.Axioms) > 0
	name := "BV"
	if len(snap.Uninterps) > 0 || len(snap.Tables) > 0 {
		name = "UF" + name
	}
	if len(snap.Arrays) > 0 {
		name = "A" + name
	}
	if !quantified {
		name = "QF_" + name
	}
	return Logic{Name: name, Reason: "bitvector problem"}, nil
}
