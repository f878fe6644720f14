// Package paramset implements parameter sets: mergeable records of named
// parameter groups that may inherit from other, named parameter sets.
//
// A set is built once from declared data and is never mutated afterwards.
// Merge and ResolveBase always return a fresh Set, so a resolved base can be
// shared by any number of dependants without one test case observing the
// overrides of another.
//
// # Merge semantics
//
// Parameters are identified by their (name, kind) pair. When two sets are
// merged, the later occurrence of a key wins, and each merged group is emitted
// ordered by kind. Merging is therefore not commutative: Merge(a, b) favours
// the values of b.
//
// # Resolution
//
// ResolveNamed resolves a table of named sets whose bases may reference each
// other. It repeatedly resolves every set whose bases are all resolved, and
// fails with a CycleError naming every remaining set when a pass makes no
// progress.
package paramset
