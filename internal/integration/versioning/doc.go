// Package versioning supplies the base version of a file, the reference
// content that change tracking compares the live document against.
//
// A Provider opens the base version of one file. Providers answer
// ErrNoBaseVersion when they have nothing for a file; that is a normal
// outcome, not a failure. Several providers are combined with a Chain, which
// asks them in order and returns the first base version found:
//
//	providers := versioning.Chain{
//	    git.NewProvider(),
//	    versioning.FileProvider{Suffix: ".orig"},
//	}
//	rc, err := providers.OpenBaseVersion(ctx, "internal/app/app.go")
//	if errors.Is(err, versioning.ErrNoBaseVersion) {
//	    // track against the current content instead
//	}
//
// Base streams are raw bytes. ReadText decodes them the way a text editor
// would: a UTF-8 or UTF-16 byte order mark selects the encoding and is
// dropped, anything else is read as UTF-8.
package versioning
