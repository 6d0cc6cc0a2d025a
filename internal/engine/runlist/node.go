package runlist

import "slices"

// Tree structure constants
const (
	// MinChildren is the minimum children per internal node (except root).
	MinChildren = 4

	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MinRunsPerLeaf is the minimum runs in a leaf node (except root).
	MinRunsPerLeaf = 4

	// MaxRunsPerLeaf is the maximum runs in a leaf node before splitting.
	MaxRunsPerLeaf = 8
)

// Run is a maximal range of equal values.
type Run[T comparable] struct {
	Value T
	Len   int
}

// summary holds aggregated metrics for a subtree.
type summary struct {
	Len  int // number of logical elements
	Runs int // number of runs
}

// Add combines two summaries.
func (s summary) Add(other summary) summary {
	return summary{Len: s.Len + other.Len, Runs: s.Runs + other.Runs}
}

// node is a node in the run B+ tree.
// Leaf nodes (height == 0) contain runs.
// Internal nodes (height > 0) contain child node references.
type node[T comparable] struct {
	height  uint8
	summary summary

	// Internal node fields (height > 0)
	children       []*node[T]
	childSummaries []summary

	// Leaf node fields (height == 0)
	runs []Run[T]
}

func newLeafNode[T comparable]() *node[T] {
	return &node[T]{runs: make([]Run[T], 0, MaxRunsPerLeaf)}
}

func newLeafNodeWithRuns[T comparable](runs []Run[T]) *node[T] {
	n := &node[T]{runs: runs}
	n.recomputeSummary()
	return n
}

func newInternalNode[T comparable](children []*node[T]) *node[T] {
	if len(children) == 0 {
		return newLeafNode[T]()
	}
	n := &node[T]{
		height:   children[0].height + 1,
		children: children,
	}
	n.recomputeSummary()
	return n
}

func (n *node[T]) isLeaf() bool {
	return n.height == 0
}

// entries returns the number of direct entries (runs or children).
func (n *node[T]) entries() int {
	if n.isLeaf() {
		return len(n.runs)
	}
	return len(n.children)
}

func (n *node[T]) underfull() bool {
	if n.isLeaf() {
		return len(n.runs) < MinRunsPerLeaf
	}
	return len(n.children) < MinChildren
}

// recomputeSummary recalculates the summary from children or runs.
func (n *node[T]) recomputeSummary() {
	n.summary = summary{}
	if n.isLeaf() {
		for _, r := range n.runs {
			n.summary = n.summary.Add(summary{Len: r.Len, Runs: 1})
		}
		return
	}
	if cap(n.childSummaries) >= len(n.children) {
		n.childSummaries = n.childSummaries[:len(n.children)]
	} else {
		n.childSummaries = make([]summary, len(n.children))
	}
	for i, child := range n.children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
}

// refreshChild updates the cached summary of child i after it changed.
func (n *node[T]) refreshChild(i int) {
	old := n.childSummaries[i]
	cur := n.children[i].summary
	n.childSummaries[i] = cur
	n.summary.Len += cur.Len - old.Len
	n.summary.Runs += cur.Runs - old.Runs
}

// findRun returns the run containing pos within a leaf and the run's start.
// pos must be < n.summary.Len.
func (n *node[T]) findRun(pos int) (int, int) {
	start := 0
	for k, r := range n.runs {
		if pos < start+r.Len {
			return k, start
		}
		start += r.Len
	}
	panic("runlist: position beyond leaf")
}

// findChild returns the child containing pos and the offset within that child.
// When inclusive is set, a position equal to a child's end selects that child;
// this is used for insertion, where appending to the left child is valid.
func (n *node[T]) findChild(pos int, inclusive bool) (int, int) {
	offset := 0
	last := len(n.childSummaries) - 1
	for i, s := range n.childSummaries {
		end := offset + s.Len
		if pos < end || (inclusive && pos == end) || i == last {
			return i, pos - offset
		}
		offset = end
	}
	return last, pos - offset
}

// insert inserts count copies of v at pos. It returns a new right sibling
// when the node had to be split.
func (n *node[T]) insert(pos, count int, v T) *node[T] {
	if n.isLeaf() {
		n.insertIntoLeaf(pos, count, v)
		n.summary.Len += count
		n.summary.Runs = len(n.runs)
		if len(n.runs) > MaxRunsPerLeaf {
			return n.splitLeaf()
		}
		return nil
	}

	i, childPos := n.findChild(pos, true)
	split := n.children[i].insert(childPos, count, v)
	n.refreshChild(i)
	if split != nil {
		n.children = insertAt(n.children, i+1, split)
		n.childSummaries = insertAt(n.childSummaries, i+1, split.summary)
		n.summary = n.summary.Add(split.summary)
		if len(n.children) > MaxChildren {
			return n.splitInternal()
		}
	}
	return nil
}

// insertIntoLeaf merges with a neighbouring run in the same leaf when the values
// match; merges across leaves are handled by List.normalize.
func (n *node[T]) insertIntoLeaf(pos, count int, v T) {
	if len(n.runs) == 0 {
		n.runs = append(n.runs, Run[T]{Value: v, Len: count})
		return
	}
	if pos == n.summary.Len {
		last := len(n.runs) - 1
		if n.runs[last].Value == v {
			n.runs[last].Len += count
			return
		}
		n.runs = append(n.runs, Run[T]{Value: v, Len: count})
		return
	}

	k, start := n.findRun(pos)
	if n.runs[k].Value == v {
		n.runs[k].Len += count
		return
	}
	if pos == start {
		if k > 0 && n.runs[k-1].Value == v {
			n.runs[k-1].Len += count
			return
		}
		n.runs = insertAt(n.runs, k, Run[T]{Value: v, Len: count})
		return
	}

	// Split run k around the new run.
	left := pos - start
	right := Run[T]{Value: n.runs[k].Value, Len: n.runs[k].Len - left}
	n.runs[k].Len = left
	n.runs = insertAt(n.runs, k+1, Run[T]{Value: v, Len: count}, right)
}

// shrink removes count elements starting at pos. The range must lie within a
// single run.
func (n *node[T]) shrink(pos, count int) {
	if n.isLeaf() {
		k, _ := n.findRun(pos)
		n.runs[k].Len -= count
		if n.runs[k].Len == 0 {
			n.runs = removeAt(n.runs, k)
		}
		n.summary.Len -= count
		n.summary.Runs = len(n.runs)
		return
	}

	i, childPos := n.findChild(pos, false)
	child := n.children[i]
	child.shrink(childPos, count)
	n.refreshChild(i)

	switch {
	case child.entries() == 0:
		n.children = removeAt(n.children, i)
		n.childSummaries = removeAt(n.childSummaries, i)
	case child.underfull() && len(n.children) > 1:
		n.rebalance(i)
	}
}

// grow extends the run containing pos by count elements.
func (n *node[T]) grow(pos, count int) {
	n.summary.Len += count
	if n.isLeaf() {
		k, _ := n.findRun(pos)
		n.runs[k].Len += count
		return
	}
	i, childPos := n.findChild(pos, false)
	n.children[i].grow(childPos, count)
	n.childSummaries[i].Len += count
}

// rebalance merges the underfull child i with a sibling, splitting the result
// again when it does not fit into one node.
func (n *node[T]) rebalance(i int) {
	j := i + 1
	if j == len(n.children) {
		i, j = i-1, i
	}
	left, right := n.children[i], n.children[j]

	var merged []*node[T]
	if left.isLeaf() {
		runs := make([]Run[T], 0, len(left.runs)+len(right.runs))
		runs = append(runs, left.runs...)
		runs = append(runs, right.runs...)
		if len(runs) <= MaxRunsPerLeaf {
			merged = []*node[T]{newLeafNodeWithRuns(runs)}
		} else {
			half := len(runs) / 2
			merged = []*node[T]{
				newLeafNodeWithRuns(slices.Clone(runs[:half])),
				newLeafNodeWithRuns(slices.Clone(runs[half:])),
			}
		}
	} else {
		kids := make([]*node[T], 0, len(left.children)+len(right.children))
		kids = append(kids, left.children...)
		kids = append(kids, right.children...)
		if len(kids) <= MaxChildren {
			merged = []*node[T]{newInternalNode(kids)}
		} else {
			half := len(kids) / 2
			merged = []*node[T]{
				newInternalNode(slices.Clone(kids[:half])),
				newInternalNode(slices.Clone(kids[half:])),
			}
		}
	}

	children := make([]*node[T], 0, len(n.children))
	children = append(children, n.children[:i]...)
	children = append(children, merged...)
	children = append(children, n.children[j+1:]...)
	n.children = children
	n.recomputeSummary()
}

// splitLeaf moves the upper half of the runs into a new sibling.
func (n *node[T]) splitLeaf() *node[T] {
	half := len(n.runs) / 2
	right := newLeafNodeWithRuns(slices.Clone(n.runs[half:]))
	n.runs = n.runs[:half:half]
	n.recomputeSummary()
	return right
}

// splitInternal moves the upper half of the children into a new sibling.
func (n *node[T]) splitInternal() *node[T] {
	half := len(n.children) / 2
	right := newInternalNode(slices.Clone(n.children[half:]))
	n.children = n.children[:half:half]
	n.childSummaries = n.childSummaries[:half:half]
	n.recomputeSummary()
	return right
}

// forEachRun visits runs in order until fn returns false.
func (n *node[T]) forEachRun(fn func(Run[T]) bool) bool {
	if n.isLeaf() {
		for _, r := range n.runs {
			if !fn(r) {
				return false
			}
		}
		return true
	}
	for _, child := range n.children {
		if !child.forEachRun(fn) {
			return false
		}
	}
	return true
}

// buildFromRuns builds a balanced tree bottom-up from already merged runs.
func buildFromRuns[T comparable](runs []Run[T]) *node[T] {
	if len(runs) == 0 {
		return newLeafNode[T]()
	}

	var nodes []*node[T]
	for i := 0; i < len(runs); i += MaxRunsPerLeaf {
		end := min(i+MaxRunsPerLeaf, len(runs))
		nodes = append(nodes, newLeafNodeWithRuns(slices.Clone(runs[i:end])))
	}

	for len(nodes) > 1 {
		var parents []*node[T]
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			parents = append(parents, newInternalNode(slices.Clone(nodes[i:end])))
		}
		nodes = parents
	}
	return nodes[0]
}

func insertAt[E any](s []E, i int, v ...E) []E {
	s = append(s, v...)
	copy(s[i+len(v):], s[i:])
	copy(s[i:], v)
	return s
}

func removeAt[E any](s []E, i int) []E {
	copy(s[i:], s[i+1:])
	var zero E
	s[len(s)-1] = zero
	return s[:len(s)-1]
}
