package stitch

import (
	"io/fs"
	"os"
	"strings"

	"github.com/contextstitch/contextstitch/internal/ignore"
)

// visibilityFilter merges hidden-file policy, ignore patterns, file-size
// limits, and symlink policy into one keep/skip decision per filesystem
// entry. The same filter instance serves both directory-descent pruning and
// per-file decisions so the tree rendering and the content sections can
// never disagree.
type visibilityFilter struct {
	matcher        ignore.Matcher
	includeHidden  bool
	maxFileSize    int64
	followSymlinks bool
}

// Keep reports whether the entry at relativePath should appear in the
// document. Checks short-circuit in a fixed order: hidden segments, ignore
// patterns, symlink policy, file size, with any stat failure skipping the
// entry outright. Symlink resolution runs before the size check so the cap
// applies to the target's size, not the link's.
func (filter *visibilityFilter) Keep(directoryEntry fs.DirEntry, absolutePath string, relativePath string, isDirectory bool) bool {
	if !filter.includeHidden && hasHiddenSegment(relativePath) {
		return false
	}
	if filter.matcher.Matches(relativePath, isDirectory) {
		return false
	}
	entryInformation, informationError := directoryEntry.Info()
	if informationError != nil {
		return false
	}
	if entryInformation.Mode()&fs.ModeSymlink != 0 {
		if !filter.followSymlinks {
			return false
		}
		resolvedInformation, resolveError := os.Stat(absolutePath)
		if resolveError != nil {
			return false
		}
		entryInformation = resolvedInformation
	}
	if entryInformation.Mode().IsRegular() && entryInformation.Size() > filter.maxFileSize {
		return false
	}
	return true
}

// hasHiddenSegment reports whether any segment of the forward-slash relative
// path starts with a dot. The special "." and ".." segments do not count.
func hasHiddenSegment(relativePath string) bool {
	for _, pathSegment := range strings.Split(relativePath, "/") {
		if pathSegment == "" || pathSegment == "." || pathSegment == ".." {
			continue
		}
		if strings.HasPrefix(pathSegment, ".") {
			return true
		}
	}
	return false
}
