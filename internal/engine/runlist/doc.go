// Package runlist provides a run-length compressed list indexed by position.
//
// A List stores one logical value per index but keeps adjacent equal values
// together as a single run. It is designed for per-line metadata in large
// documents, where most neighbouring lines share the same value and edits touch
// one line at a time.
//
// The list is a B+ tree: leaf nodes hold runs, internal nodes keep a summary
// (element count and run count) for each child so that positional lookups
// descend in O(log n). Unlike the text rope in the engine, the tree is mutable;
// it is owned by a single writer and is not safe for concurrent use.
//
// Basic usage:
//
//	l := runlist.New[int]()
//	l.InsertRange(0, 100, 0) // 100 zeroes, one run
//	l.Set(10, 1)             // three runs: [0..10) [10] [11..100)
//	l.StartOfRun(10)         // 10
//	l.EndOfRun(50)           // 100
//
// SliceList is a plain slice with the same method set. It is the reference
// implementation used in tests and is O(n) for inserts and removals.
package runlist
