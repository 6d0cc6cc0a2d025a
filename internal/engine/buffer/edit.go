package buffer

import "fmt"

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Start   Position // Start of the replaced range
	End     Position // End of the replaced range
	NewText string   // The replacement text
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(pos Position, text string) Edit {
	return Edit{Start: pos, End: pos, NewText: text}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(start, end Position) Edit {
	return Edit{Start: start, End: end}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	switch {
	case e.Start == e.End:
		return fmt.Sprintf("Insert(%s, %q)", e.Start, e.NewText)
	case e.NewText == "":
		return fmt.Sprintf("Delete[%s-%s]", e.Start, e.End)
	default:
		return fmt.Sprintf("Replace[%s-%s] with %q", e.Start, e.End, e.NewText)
	}
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Start == e.End && e.NewText == ""
}
