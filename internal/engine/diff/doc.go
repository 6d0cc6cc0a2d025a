// Package diff computes line-level edit scripts with Myers' algorithm.
//
// Lines are not compared as strings. Both inputs are first mapped to integer
// codes through one shared HashTable, so identical lines in either input get
// identical codes and the algorithm only compares integers:
//
//	table := diff.NewHashTable()
//	a := diff.NewLineSequence(baseDoc, table)
//	b := diff.NewLineSequence(currentDoc, table)
//	edits := diff.Diff(a, b)
//
// A HashTable belongs to a single diff invocation. DiffLines creates one
// internally and is the usual entry point.
//
// # Edits
//
// The result is a list of Edit values ordered by position in both inputs and
// never overlapping. Line ranges are 0-based and half-open. Lines between two
// edits are equal in both inputs and are not reported. An Edit with an empty A
// range is an insertion, one with an empty B range a deletion, and anything
// else a replacement; adjacent insertions and deletions are always coalesced
// into a single replacement.
//
// # Algorithm
//
// Common prefixes and suffixes are stripped first. Lines that occur in only
// one input cannot match and are reported right away. The rest is searched
// with the linear space refinement from section 4 of Myers' paper: forward
// and backward searches meet on a middle run of matches, and both halves
// around it are solved recursively. Memory is linear in the input size for
// any number of differences. The search is not cancellable and always yields
// a minimal edit script; among equally short scripts deletions come before
// insertions.
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1,
// 251-266 (1986).
package diff
