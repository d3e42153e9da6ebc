// Package ignore compiles an ordered set of gitignore-dialect patterns into a
// single predicate over repository-relative paths.
package ignore

import (
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Matcher decides whether a repository-relative path is excluded from the
// document. Implementations are immutable after construction.
type Matcher interface {
	// Matches reports whether relativePath is excluded. Directory candidates
	// are probed with a synthetic trailing slash so directory-only patterns
	// apply to them.
	Matches(relativePath string, isDirectory bool) bool
}

// gitignoreMatcher delegates to a compiled gitwildmatch pattern set. Later
// patterns override earlier ones, matching gitignore precedence, including
// negation patterns.
type gitignoreMatcher struct {
	compiled *gitignore.GitIgnore
}

// NewMatcher compiles the ordered pattern list into a Matcher.
func NewMatcher(patterns []string) Matcher {
	return &gitignoreMatcher{compiled: gitignore.CompileIgnoreLines(patterns...)}
}

// Matches implements Matcher.
func (matcher *gitignoreMatcher) Matches(relativePath string, isDirectory bool) bool {
	if matcher.compiled == nil {
		return false
	}
	candidatePath := relativePath
	if isDirectory && !strings.HasSuffix(candidatePath, "/") {
		candidatePath += "/"
	}
	return matcher.compiled.MatchesPath(candidatePath)
}

var _ Matcher = (*gitignoreMatcher)(nil)
