package stitch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one visible filesystem entry discovered during the walk. The
// entry tree produced by a single traversal is the shared source for both
// the tree rendering and the content sections, so the two views cannot
// drift apart between passes.
type Entry struct {
	Name         string
	AbsolutePath string
	RelativePath string
	IsDirectory  bool
	Children     []*Entry
}

// childCandidate pairs a directory entry with the paths and directory flag
// computed for it before sorting and filtering.
type childCandidate struct {
	entry        fs.DirEntry
	absolutePath string
	relativePath string
	isDirectory  bool
}

// walkRoot performs the single traversal and returns the root entry.
func (stitcher *Stitcher) walkRoot() *Entry {
	return &Entry{
		Name:         filepath.Base(stitcher.rootPath),
		AbsolutePath: stitcher.rootPath,
		RelativePath: "",
		IsDirectory:  true,
		Children:     stitcher.walkDirectory(stitcher.rootPath, ""),
	}
}

// walkDirectory lists directoryPath, sorts its entries directories-first with
// case-insensitive names, filters each through the visibility filter, and
// recurses into kept directories. Directories that fail the filter are pruned
// whole: nothing beneath them is ever visited. An unreadable directory
// renders empty rather than failing the run.
func (stitcher *Stitcher) walkDirectory(directoryPath string, relativePrefix string) []*Entry {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil
	}

	candidates := make([]childCandidate, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		childAbsolutePath := filepath.Join(directoryPath, directoryEntry.Name())
		childRelativePath := directoryEntry.Name()
		if relativePrefix != "" {
			childRelativePath = relativePrefix + "/" + directoryEntry.Name()
		}
		candidates = append(candidates, childCandidate{
			entry:        directoryEntry,
			absolutePath: childAbsolutePath,
			relativePath: childRelativePath,
			isDirectory:  stitcher.entryIsDirectory(childAbsolutePath, directoryEntry),
		})
	}

	sort.Slice(candidates, func(firstIndex, secondIndex int) bool {
		firstIsFile := !candidates[firstIndex].isDirectory
		secondIsFile := !candidates[secondIndex].isDirectory
		if firstIsFile != secondIsFile {
			return !firstIsFile
		}
		return strings.ToLower(candidates[firstIndex].entry.Name()) < strings.ToLower(candidates[secondIndex].entry.Name())
	})

	var children []*Entry
	for _, candidate := range candidates {
		if !stitcher.filter.Keep(candidate.entry, candidate.absolutePath, candidate.relativePath, candidate.isDirectory) {
			continue
		}
		childEntry := &Entry{
			Name:         candidate.entry.Name(),
			AbsolutePath: candidate.absolutePath,
			RelativePath: candidate.relativePath,
			IsDirectory:  candidate.isDirectory,
		}
		if candidate.isDirectory {
			childEntry.Children = stitcher.walkDirectory(candidate.absolutePath, candidate.relativePath)
		}
		children = append(children, childEntry)
	}
	return children
}

// entryIsDirectory reports whether the entry names a directory, resolving
// symlinks only when the run follows them.
func (stitcher *Stitcher) entryIsDirectory(absolutePath string, directoryEntry fs.DirEntry) bool {
	if directoryEntry.IsDir() {
		return true
	}
	if stitcher.options.FollowSymlinks && directoryEntry.Type()&fs.ModeSymlink != 0 {
		resolvedInformation, resolveError := os.Stat(absolutePath)
		return resolveError == nil && resolvedInformation.IsDir()
	}
	return false
}

// CollectFiles returns the visible files beneath rootEntry in tree order.
func CollectFiles(rootEntry *Entry) []*Entry {
	var visibleFiles []*Entry
	var visit func(parentEntry *Entry)
	visit = func(parentEntry *Entry) {
		for _, childEntry := range parentEntry.Children {
			if childEntry.IsDirectory {
				visit(childEntry)
				continue
			}
			visibleFiles = append(visibleFiles, childEntry)
		}
	}
	visit(rootEntry)
	return visibleFiles
}
