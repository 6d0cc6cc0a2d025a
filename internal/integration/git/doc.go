// Package git reads base versions of files from Git.
//
// A Provider answers the base version of a file with its content at HEAD,
// the way a version control gutter compares the working copy against the
// last commit. Repositories are discovered by walking up from the file's
// directory and are cached by a Manager.
//
//	p := git.NewProvider(git.NewManager())
//	rc, err := p.OpenBaseVersion(ctx, "/src/project/main.go")
//
// Files outside a repository, untracked files and repositories without
// commits have no base version; the provider reports them with an error
// wrapping versioning.ErrNoBaseVersion.
//
// All Git access goes through the git command line tool, run with the
// caller's context so a slow repository can be abandoned.
package git
