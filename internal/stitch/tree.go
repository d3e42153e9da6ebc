package stitch

// Connector glyphs used by the tree rendering.
const (
	branchConnector       = "├── "
	lastBranchConnector   = "└── "
	continuationPrefix    = "│   "
	lastContinuationSpace = "    "
)

// RenderTree renders the entry tree as indented lines. The root is rendered
// as "<name>/", directories carry a trailing slash, and each nesting level
// extends the continuation prefix so the rendering nests correctly at any
// depth.
func RenderTree(rootEntry *Entry) []string {
	treeLines := []string{rootEntry.Name + "/"}
	appendTreeLines(&treeLines, rootEntry, "")
	return treeLines
}

func appendTreeLines(treeLines *[]string, parentEntry *Entry, linePrefix string) {
	childCount := len(parentEntry.Children)
	for childIndex, childEntry := range parentEntry.Children {
		connector := branchConnector
		childPrefix := linePrefix + continuationPrefix
		if childIndex == childCount-1 {
			connector = lastBranchConnector
			childPrefix = linePrefix + lastContinuationSpace
		}
		if childEntry.IsDirectory {
			*treeLines = append(*treeLines, linePrefix+connector+childEntry.Name+"/")
			appendTreeLines(treeLines, childEntry, childPrefix)
		} else {
			*treeLines = append(*treeLines, linePrefix+connector+childEntry.Name)
		}
	}
}
