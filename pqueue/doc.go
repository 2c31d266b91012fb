// Package pqueue provides the min-ordered frontier used by the A* engine.
//
// Queue[T] is a binary heap (container/heap) of items keyed by a float64
// priority, with a map index giving O(1) membership tests and O(log n)
// re-prioritisation. Each item is held at most once.
//
// Ties are broken by insertion order: of two items with equal priority, the
// one pushed first is popped first. Re-prioritising an item keeps its original
// position in that order, so runs over the same input are reproducible.
//
// Complexity:
//
//   - Push, PopMin, Update, Remove: O(log n)
//   - Peek, Contains, Len:          O(1)
//   - Items:                        O(n log n)
//
// A Queue is not safe for concurrent use.
package pqueue
