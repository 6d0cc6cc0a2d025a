package diff

import "fmt"

// EditType indicates the kind of an Edit.
type EditType uint8

const (
	// EditInsert adds lines of B; the A range is empty.
	EditInsert EditType = iota + 1

	// EditDelete removes lines of A; the B range is empty.
	EditDelete

	// EditReplace replaces a non-empty A range with a non-empty B range.
	EditReplace
)

// String returns a human-readable representation of the edit type.
func (t EditType) String() string {
	switch t {
	case EditInsert:
		return "insert"
	case EditDelete:
		return "delete"
	case EditReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Edit describes a region where A and B differ.
// A[BeginA:EndA) is replaced by B[BeginB:EndB).
type Edit struct {
	Type   EditType
	BeginA int
	EndA   int
	BeginB int
	EndB   int
}

// newEdit classifies the region by which side is empty.
func newEdit(beginA, endA, beginB, endB int) Edit {
	t := EditReplace
	switch {
	case beginA == endA:
		t = EditInsert
	case beginB == endB:
		t = EditDelete
	}
	return Edit{Type: t, BeginA: beginA, EndA: endA, BeginB: beginB, EndB: endB}
}

// LenA returns the number of lines of A covered by the edit.
func (e Edit) LenA() int { return e.EndA - e.BeginA }

// LenB returns the number of lines of B covered by the edit.
func (e Edit) LenB() int { return e.EndB - e.BeginB }

// String returns a compact representation such as "replace A[1:2) B[1:2)".
func (e Edit) String() string {
	return fmt.Sprintf("%s A[%d:%d) B[%d:%d)", e.Type, e.BeginA, e.EndA, e.BeginB, e.EndB)
}

// Apply replays edits against a, taking inserted lines from b.
// For a script produced by Diff(a, b) the result equals b.
func Apply(a, b []string, edits []Edit) []string {
	out := make([]string, 0, len(b))
	lastA := 0
	for _, e := range edits {
		out = append(out, a[lastA:e.BeginA]...)
		out = append(out, b[e.BeginB:e.EndB]...)
		lastA = e.EndA
	}
	return append(out, a[lastA:]...)
}
