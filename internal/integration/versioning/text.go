package versioning

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadText reads r to the end and decodes it to a UTF-8 string.
//
// A UTF-8, UTF-16LE or UTF-16BE byte order mark selects the encoding and is
// removed. Without a byte order mark the content is UTF-8; invalid sequences
// become U+FFFD.
func ReadText(r io.Reader) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", fmt.Errorf("decode base version: %w", err)
	}
	return string(data), nil
}

// Load opens the base version of fileName through p and decodes it.
func Load(ctx context.Context, p Provider, fileName string) (string, error) {
	rc, err := p.OpenBaseVersion(ctx, fileName)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return ReadText(rc)
}
