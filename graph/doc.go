// Package graph models the shared, acyclic operation graph the
// translator consumes: symbolic value references, operation nodes,
// literal constants, tables, arrays, uninterpreted symbols, axioms and
// constraints, bundled into an immutable snapshot.
//
// SV identifiers are dense integers assigned in creation order; the
// assignment sequence is the arena and its order is the topological
// order. Nothing in this package mutates a snapshot after construction.
package graph
