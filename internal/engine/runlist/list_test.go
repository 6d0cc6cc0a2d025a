package runlist

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func runsOf[T comparable](l Interface[T]) []Run[T] {
	var runs []Run[T]
	for r := range l.Runs() {
		runs = append(runs, r)
	}
	return runs
}

// checkInvariants verifies maximal compression and the tree summaries.
func checkInvariants[T comparable](t *testing.T, l *List[T]) {
	t.Helper()

	total := 0
	var prev *Run[T]
	for r := range l.Runs() {
		if r.Len <= 0 {
			t.Fatalf("run with non-positive length %d in %v", r.Len, l)
		}
		if prev != nil && prev.Value == r.Value {
			t.Fatalf("adjacent runs with equal value %v in %v", r.Value, l)
		}
		total += r.Len
		prev = &r
	}
	if total != l.Len() {
		t.Fatalf("sum of run lengths %d != Len %d", total, l.Len())
	}
	if l.root != nil {
		checkNode(t, l.root, true)
	}
}

func checkNode[T comparable](t *testing.T, n *node[T], isRoot bool) summary {
	t.Helper()

	if n.isLeaf() {
		var s summary
		for _, r := range n.runs {
			s = s.Add(summary{Len: r.Len, Runs: 1})
		}
		if s != n.summary {
			t.Fatalf("leaf summary %+v, want %+v", n.summary, s)
		}
		if !isRoot && len(n.runs) == 0 {
			t.Fatal("empty non-root leaf")
		}
		if len(n.runs) > MaxRunsPerLeaf {
			t.Fatalf("leaf has %d runs, max %d", len(n.runs), MaxRunsPerLeaf)
		}
		return s
	}

	if len(n.children) != len(n.childSummaries) {
		t.Fatalf("%d children but %d summaries", len(n.children), len(n.childSummaries))
	}
	if len(n.children) > MaxChildren {
		t.Fatalf("node has %d children, max %d", len(n.children), MaxChildren)
	}
	if isRoot && len(n.children) < 2 {
		t.Fatalf("internal root with %d children", len(n.children))
	}
	var s summary
	for i, child := range n.children {
		if child.height+1 != n.height {
			t.Fatalf("child height %d under node height %d", child.height, n.height)
		}
		cs := checkNode(t, child, false)
		if cs != n.childSummaries[i] {
			t.Fatalf("cached child summary %+v, want %+v", n.childSummaries[i], cs)
		}
		s = s.Add(cs)
	}
	if s != n.summary {
		t.Fatalf("internal summary %+v, want %+v", n.summary, s)
	}
	return s
}

func TestListBasic(t *testing.T) {
	l := New[string]()
	l.InsertRange(0, 10, "a")

	if l.Len() != 10 {
		t.Errorf("expected Len 10, got %d", l.Len())
	}
	if l.RunCount() != 1 {
		t.Errorf("expected 1 run, got %d", l.RunCount())
	}

	l.Set(4, "b")
	want := []Run[string]{{"a", 4}, {"b", 1}, {"a", 5}}
	if diff := cmp.Diff(want, runsOf[string](l)); diff != "" {
		t.Errorf("runs after Set mismatch (-want +got):\n%s", diff)
	}
	if got := l.Get(4); got != "b" {
		t.Errorf("expected Get(4) = b, got %q", got)
	}
	if got := l.StartOfRun(7); got != 5 {
		t.Errorf("expected StartOfRun(7) = 5, got %d", got)
	}
	if got := l.EndOfRun(7); got != 10 {
		t.Errorf("expected EndOfRun(7) = 10, got %d", got)
	}
	if got, want := l.StartOfRun(4), 4; got != want {
		t.Errorf("expected StartOfRun(4) = %d, got %d", want, got)
	}
	if got, want := l.EndOfRun(4), 5; got != want {
		t.Errorf("expected EndOfRun(4) = %d, got %d", want, got)
	}

	l.Set(4, "a")
	if l.RunCount() != 1 {
		t.Errorf("expected Set back to a to re-merge into 1 run, got %v", l)
	}
	checkInvariants(t, l)
}

func TestListInsertRange(t *testing.T) {
	t.Run("merges with equal neighbour", func(t *testing.T) {
		l := New[int]()
		l.Append(3, 0)
		l.Append(2, 1)
		l.InsertRange(3, 4, 0)

		want := []Run[int]{{0, 7}, {1, 2}}
		if diff := cmp.Diff(want, runsOf[int](l)); diff != "" {
			t.Errorf("runs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("splits a run", func(t *testing.T) {
		l := New[int]()
		l.Append(6, 0)
		l.InsertRange(2, 2, 9)

		want := []Run[int]{{0, 2}, {9, 2}, {0, 4}}
		if diff := cmp.Diff(want, runsOf[int](l)); diff != "" {
			t.Errorf("runs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("zero count is a no-op", func(t *testing.T) {
		l := New[int]()
		l.InsertRange(0, 0, 5)
		if l.Len() != 0 {
			t.Errorf("expected empty list, got %v", l)
		}
	})
}

func TestListRemove(t *testing.T) {
	l := New[int]()
	l.Append(2, 0)
	l.Append(1, 1)
	l.Append(2, 0)

	l.RemoveAt(2)
	want := []Run[int]{{0, 4}}
	if diff := cmp.Diff(want, runsOf[int](l)); diff != "" {
		t.Errorf("RemoveAt should merge the neighbours (-want +got):\n%s", diff)
	}

	l.Append(3, 7)
	l.RemoveRange(2, 4)
	want = []Run[int]{{0, 2}, {7, 1}}
	if diff := cmp.Diff(want, runsOf[int](l)); diff != "" {
		t.Errorf("RemoveRange mismatch (-want +got):\n%s", diff)
	}
	checkInvariants(t, l)
}

func TestListTransform(t *testing.T) {
	l := New[string]()
	l.Append(1, "none")
	l.Append(2, "unsaved")
	l.Append(1, "added")
	l.Append(3, "none")

	l.Transform(func(v string) string {
		if v == "unsaved" {
			return "added"
		}
		return v
	})

	want := []Run[string]{{"none", 1}, {"added", 3}, {"none", 3}}
	if diff := cmp.Diff(want, runsOf[string](l)); diff != "" {
		t.Errorf("Transform mismatch (-want +got):\n%s", diff)
	}
	checkInvariants(t, l)
}

func TestListClear(t *testing.T) {
	l := New[int]()
	for i := range 1000 {
		l.Append(1, i)
	}
	if l.Height() == 0 {
		t.Fatal("expected a multi-level tree for 1000 runs")
	}
	l.Clear()
	if l.Len() != 0 || l.RunCount() != 0 {
		t.Errorf("expected empty list after Clear, got Len %d runs %d", l.Len(), l.RunCount())
	}
	l.Append(2, 1)
	checkInvariants(t, l)
}

func TestListZeroValue(t *testing.T) {
	var l List[int]
	if l.Len() != 0 {
		t.Errorf("expected zero Len, got %d", l.Len())
	}
	l.Append(3, 1)
	if l.Get(2) != 1 {
		t.Errorf("expected Get(2) = 1, got %d", l.Get(2))
	}
}

func TestListPanicsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		fn   func(l *List[int])
	}{
		{"get past end", func(l *List[int]) { l.Get(3) }},
		{"get negative", func(l *List[int]) { l.Get(-1) }},
		{"set past end", func(l *List[int]) { l.Set(3, 1) }},
		{"insert past end", func(l *List[int]) { l.InsertRange(4, 1, 1) }},
		{"remove past end", func(l *List[int]) { l.RemoveAt(3) }},
		{"remove range past end", func(l *List[int]) { l.RemoveRange(2, 2) }},
		{"start of run past end", func(l *List[int]) { l.StartOfRun(3) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New[int]()
			l.Append(3, 0)
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn(l)
		})
	}
}

// TestListMatchesSliceList runs random operation sequences against both
// implementations and compares the results after every step.
func TestListMatchesSliceList(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*31))
		tree := New[int]()
		ref := NewSliceList[int]()

		for step := 0; step < 2000; step++ {
			// A small alphabet produces plenty of merges.
			v := rng.IntN(3)
			n := tree.Len()

			switch op := rng.IntN(10); {
			case op < 3 || n == 0:
				i := rng.IntN(n + 1)
				count := 1 + rng.IntN(4)
				tree.InsertRange(i, count, v)
				ref.InsertRange(i, count, v)
			case op < 6:
				i := rng.IntN(n)
				tree.Set(i, v)
				ref.Set(i, v)
			case op < 8:
				i := rng.IntN(n)
				tree.RemoveAt(i)
				ref.RemoveAt(i)
			case op < 9:
				i := rng.IntN(n)
				count := rng.IntN(min(n-i, 6) + 1)
				tree.RemoveRange(i, count)
				ref.RemoveRange(i, count)
			default:
				f := func(x int) int { return (x + 1) % 3 }
				if rng.IntN(2) == 0 {
					f = func(x int) int { return min(x, 1) }
				}
				tree.Transform(f)
				ref.Transform(f)
			}

			if diff := cmp.Diff(ref.Values(), tree.Values()); diff != "" {
				t.Fatalf("seed %d step %d: values mismatch (-ref +tree):\n%s", seed, step, diff)
			}
			if tree.RunCount() != ref.RunCount() {
				t.Fatalf("seed %d step %d: run count %d, reference %d", seed, step, tree.RunCount(), ref.RunCount())
			}
			if tree.Len() > 0 {
				i := rng.IntN(tree.Len())
				if got, want := tree.StartOfRun(i), ref.StartOfRun(i); got != want {
					t.Fatalf("seed %d step %d: StartOfRun(%d) = %d, want %d", seed, step, i, got, want)
				}
				if got, want := tree.EndOfRun(i), ref.EndOfRun(i); got != want {
					t.Fatalf("seed %d step %d: EndOfRun(%d) = %d, want %d", seed, step, i, got, want)
				}
			}
			checkInvariants(t, tree)
		}
	}
}

func TestListRunsEarlyExit(t *testing.T) {
	l := New[int]()
	for i := range 50 {
		l.Append(2, i)
	}
	count := 0
	for r, start := range l.Runs() {
		if start != count*2 || r.Value != count {
			t.Fatalf("unexpected run %+v at %d", r, start)
		}
		count++
		if count == 10 {
			break
		}
	}
	if count != 10 {
		t.Errorf("expected 10 runs before break, got %d", count)
	}
}
