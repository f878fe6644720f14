// Package dag holds a small dependency graph used to resolve declarations
// that reference each other by name, such as parameter sets and their bases.
//
// Graphs are expected to be small (tens of nodes) and declared by hand, so
// ordering is done by repeated peeling rather than a depth-first sort: every
// pass visits each remaining node whose dependencies are all visited. When a
// pass visits nothing, every node left over is reported at once, which makes a
// misconfigured chain much easier to diagnose than a single back-edge.
package dag
