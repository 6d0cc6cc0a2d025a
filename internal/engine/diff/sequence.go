package diff

// Lines is a line-oriented document. Line numbers are 1-based.
type Lines interface {
	LineCount() int
	LineText(line int) string
}

// StringLines adapts a slice of lines to Lines.
type StringLines []string

// LineCount returns the number of lines.
func (s StringLines) LineCount() int { return len(s) }

// LineText returns the text of the 1-based line.
func (s StringLines) LineText(line int) string { return s[line-1] }

// Sequence is an indexable sequence of line codes. Indices are 0-based.
type Sequence interface {
	Len() int
	Hash(i int) int
}

// HashOption configures a HashTable.
type HashOption func(*HashTable)

// WithNormalizer maps every line through fn before it is hashed, so lines that
// normalize to the same text compare equal.
func WithNormalizer(fn func(string) string) HashOption {
	return func(h *HashTable) {
		h.normalize = fn
	}
}

// HashTable assigns integer codes to line texts.
// A table is shared by the two sequences of one diff and discarded afterwards.
type HashTable struct {
	codes     map[string]int
	normalize func(string) string
}

// NewHashTable creates an empty table.
func NewHashTable(opts ...HashOption) *HashTable {
	h := &HashTable{codes: make(map[string]int)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Code returns the code for text, assigning the next free code on first use.
func (h *HashTable) Code(text string) int {
	if h.normalize != nil {
		text = h.normalize(text)
	}
	code, ok := h.codes[text]
	if !ok {
		code = len(h.codes)
		h.codes[text] = code
	}
	return code
}

// Len returns the number of distinct texts seen so far.
func (h *HashTable) Len() int {
	return len(h.codes)
}

// LineSequence is a read-only view of a document as line codes.
type LineSequence struct {
	hashes []int
}

// NewLineSequence hashes every line of doc through table.
func NewLineSequence(doc Lines, table *HashTable) *LineSequence {
	n := doc.LineCount()
	hashes := make([]int, n)
	for i := range n {
		hashes[i] = table.Code(doc.LineText(i + 1))
	}
	return &LineSequence{hashes: hashes}
}

// Len returns the number of lines.
func (s *LineSequence) Len() int {
	return len(s.hashes)
}

// Hash returns the code of the line at 0-based index i.
func (s *LineSequence) Hash(i int) int {
	return s.hashes[i]
}
