package runlist

import (
	"fmt"
	"iter"
)

// Interface is the method set shared by List and SliceList.
type Interface[T comparable] interface {
	Len() int
	RunCount() int
	Get(i int) T
	Set(i int, v T)
	Insert(i int, v T)
	InsertRange(i, count int, v T)
	Append(count int, v T)
	RemoveAt(i int)
	RemoveRange(i, count int)
	Clear()
	Transform(f func(T) T)
	StartOfRun(i int) int
	EndOfRun(i int) int
	Runs() iter.Seq2[Run[T], int]
}

// List is a run-length compressed list backed by a B+ tree.
// The zero value is an empty list ready to use.
type List[T comparable] struct {
	root *node[T]
}

// New creates an empty list.
func New[T comparable]() *List[T] {
	return &List[T]{root: newLeafNode[T]()}
}

func (l *List[T]) init() {
	if l.root == nil {
		l.root = newLeafNode[T]()
	}
}

// Len returns the number of logical elements.
func (l *List[T]) Len() int {
	if l.root == nil {
		return 0
	}
	return l.root.summary.Len
}

// RunCount returns the number of runs.
func (l *List[T]) RunCount() int {
	if l.root == nil {
		return 0
	}
	return l.root.summary.Runs
}

// Get returns the value at index i.
func (l *List[T]) Get(i int) T {
	l.checkIndex(i)
	r, _ := l.runAt(i)
	return r.Value
}

// Set replaces the value at index i, splitting or merging runs as needed.
func (l *List[T]) Set(i int, v T) {
	l.checkIndex(i)
	if r, _ := l.runAt(i); r.Value == v {
		return
	}
	l.root.shrink(i, 1)
	l.collapseRoot()
	l.insert(i, 1, v)
	l.normalize(i)
	l.normalize(i + 1)
}

// Insert inserts v at index i, shifting later elements up by one.
func (l *List[T]) Insert(i int, v T) {
	l.InsertRange(i, 1, v)
}

// InsertRange inserts count copies of v at index i.
func (l *List[T]) InsertRange(i, count int, v T) {
	l.init()
	if i < 0 || i > l.Len() {
		panic(fmt.Sprintf("runlist: insert index %d out of range [0:%d]", i, l.Len()))
	}
	if count < 0 {
		panic(fmt.Sprintf("runlist: negative count %d", count))
	}
	if count == 0 {
		return
	}
	l.insert(i, count, v)
	l.normalize(i)
	l.normalize(i + count)
}

// Append adds count copies of v at the end of the list.
func (l *List[T]) Append(count int, v T) {
	l.InsertRange(l.Len(), count, v)
}

// RemoveAt removes the element at index i, shifting later elements down by one.
func (l *List[T]) RemoveAt(i int) {
	l.checkIndex(i)
	l.root.shrink(i, 1)
	l.collapseRoot()
	l.normalize(i)
}

// RemoveRange removes count elements starting at index i.
func (l *List[T]) RemoveRange(i, count int) {
	if count == 0 {
		return
	}
	if count < 0 || i < 0 || i+count > l.Len() {
		panic(fmt.Sprintf("runlist: remove range [%d:%d] out of range [0:%d]", i, i+count, l.Len()))
	}
	for count > 0 {
		r, start := l.runAt(i)
		n := min(count, start+r.Len-i)
		l.root.shrink(i, n)
		l.collapseRoot()
		count -= n
	}
	l.normalize(i)
}

// Clear removes all elements.
func (l *List[T]) Clear() {
	l.root = newLeafNode[T]()
}

// Transform replaces every run's value with f(value). Run boundaries are kept
// except where neighbouring runs become equal, which are merged.
func (l *List[T]) Transform(f func(T) T) {
	if l.Len() == 0 {
		return
	}
	runs := make([]Run[T], 0, l.RunCount())
	l.root.forEachRun(func(r Run[T]) bool {
		r.Value = f(r.Value)
		if n := len(runs); n > 0 && runs[n-1].Value == r.Value {
			runs[n-1].Len += r.Len
		} else {
			runs = append(runs, r)
		}
		return true
	})
	l.root = buildFromRuns(runs)
}

// StartOfRun returns the first index of the run containing index i.
func (l *List[T]) StartOfRun(i int) int {
	l.checkIndex(i)
	_, start := l.runAt(i)
	return start
}

// EndOfRun returns one past the last index of the run containing index i.
func (l *List[T]) EndOfRun(i int) int {
	l.checkIndex(i)
	r, start := l.runAt(i)
	return start + r.Len
}

// Runs iterates over the runs in order together with each run's start index.
func (l *List[T]) Runs() iter.Seq2[Run[T], int] {
	return func(yield func(Run[T], int) bool) {
		if l.root == nil {
			return
		}
		start := 0
		l.root.forEachRun(func(r Run[T]) bool {
			if !yield(r, start) {
				return false
			}
			start += r.Len
			return true
		})
	}
}

// Values returns all logical elements. Use sparingly for large lists.
func (l *List[T]) Values() []T {
	values := make([]T, 0, l.Len())
	for r := range l.Runs() {
		for range r.Len {
			values = append(values, r.Value)
		}
	}
	return values
}

// Height returns the height of the underlying tree (0 for a single leaf).
func (l *List[T]) Height() int {
	if l.root == nil {
		return 0
	}
	return int(l.root.height)
}

// String returns a compact description such as [a×3 b×1].
func (l *List[T]) String() string {
	s := "["
	first := true
	for r := range l.Runs() {
		if !first {
			s += " "
		}
		first = false
		s += fmt.Sprintf("%v×%d", r.Value, r.Len)
	}
	return s + "]"
}

func (l *List[T]) checkIndex(i int) {
	if i < 0 || i >= l.Len() {
		panic(fmt.Sprintf("runlist: index %d out of range [0:%d)", i, l.Len()))
	}
}

// runAt returns the run containing index i and its start index.
func (l *List[T]) runAt(i int) (Run[T], int) {
	n := l.root
	offset := 0
	for !n.isLeaf() {
		c, childPos := n.findChild(i, false)
		offset += i - childPos
		i = childPos
		n = n.children[c]
	}
	k, start := n.findRun(i)
	return n.runs[k], offset + start
}

func (l *List[T]) insert(i, count int, v T) {
	if split := l.root.insert(i, count, v); split != nil {
		l.root = newInternalNode([]*node[T]{l.root, split})
	}
}

// normalize merges the runs meeting at boundary i when their values are equal.
// Runs inside a leaf are merged on insert; this handles neighbours that live in
// different leaves.
func (l *List[T]) normalize(i int) {
	if i <= 0 || i >= l.Len() {
		return
	}
	right, start := l.runAt(i)
	if start != i {
		return
	}
	left, _ := l.runAt(i - 1)
	if left.Value != right.Value {
		return
	}
	l.root.shrink(i, right.Len)
	l.collapseRoot()
	l.root.grow(i-1, right.Len)
}

// collapseRoot removes internal roots with a single child.
func (l *List[T]) collapseRoot() {
	for !l.root.isLeaf() && len(l.root.children) <= 1 {
		if len(l.root.children) == 0 {
			l.root = newLeafNode[T]()
			return
		}
		l.root = l.root.children[0]
	}
}
