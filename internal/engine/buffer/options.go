package buffer

// Option is a functional option for configuring a Document.
type Option func(*Document)

// WithLineEnding normalizes all loaded and inserted text to le.
// Without it, delimiters are kept exactly as they appear in the text.
func WithLineEnding(le LineEnding) Option {
	return func(d *Document) {
		d.lineEnding = le
	}
}

// WithLF normalizes text to Unix line endings (\n).
func WithLF() Option {
	return WithLineEnding(LineEndingLF)
}

// WithCRLF normalizes text to Windows line endings (\r\n).
func WithCRLF() Option {
	return WithLineEnding(LineEndingCRLF)
}
