// Package emit renders operation-graph snapshots as solver scripts.
//
// The batch driver (Batch) turns one immutable snapshot into a
// complete script; the incremental driver (Session, Extend) keeps
// per-solver bookkeeping and renders only what is new. Both share the
// same declaration emitters and the same expression translator, so a
// symbol reads identically wherever it appears.
package emit
