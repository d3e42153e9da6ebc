package stitch

import (
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/encoding"

	"github.com/contextstitch/contextstitch/internal/ignore"
)

// rootNotDirectoryMessageFormat reports an unusable root path.
const rootNotDirectoryMessageFormat = "root does not exist or is not a directory: %s"

// rootResolveMessageFormat reports a root path that cannot be made absolute.
const rootResolveMessageFormat = "resolving root %s: %v"

// Stitcher walks a directory tree once and assembles the final document.
// Construction validates the configuration and compiles the ignore matcher;
// after that the value is read-only.
type Stitcher struct {
	options      Options
	rootPath     string
	filter       *visibilityFilter
	textEncoding encoding.Encoding
	generatedAt  string
}

// New validates options, compiles the ignore pattern set, and resolves the
// text encoding. Every failure here is a ConfigurationError; nothing has
// been written or traversed yet.
func New(options Options) (*Stitcher, error) {
	absoluteRoot, absoluteError := filepath.Abs(options.Root)
	if absoluteError != nil {
		return nil, NewConfigurationError(rootResolveMessageFormat, options.Root, absoluteError)
	}
	rootInformation, rootStatError := os.Stat(absoluteRoot)
	if rootStatError != nil || !rootInformation.IsDir() {
		return nil, NewConfigurationError(rootNotDirectoryMessageFormat, absoluteRoot)
	}

	if options.MaxFileSize <= 0 {
		options.MaxFileSize = DefaultMaxFileSize
	}

	textEncoding, encodingError := resolveEncoding(options.Encoding)
	if encodingError != nil {
		return nil, encodingError
	}

	ignorePatterns, patternError := assembleIgnorePatterns(options, absoluteRoot)
	if patternError != nil {
		return nil, patternError
	}

	return &Stitcher{
		options:  options,
		rootPath: absoluteRoot,
		filter: &visibilityFilter{
			matcher:        ignore.NewMatcher(ignorePatterns),
			includeHidden:  options.IncludeHidden,
			maxFileSize:    options.MaxFileSize,
			followSymlinks: options.FollowSymlinks,
		},
		textEncoding: textEncoding,
		generatedAt:  time.Now().Format(documentTimestampLayout),
	}, nil
}

// RootPath returns the resolved absolute root the run walks.
func (stitcher *Stitcher) RootPath() string {
	return stitcher.rootPath
}

// Build performs the single traversal and returns the assembled document.
// The entry tree from the walk feeds both the tree rendering and the file
// sections, so the two views agree by construction.
func (stitcher *Stitcher) Build() (string, error) {
	rootEntry := stitcher.walkRoot()
	treeLines := RenderTree(rootEntry)
	visibleFiles := CollectFiles(rootEntry)
	sections, statistics := stitcher.renderSections(visibleFiles)
	if stitcher.options.Format == FormatText {
		return stitcher.assemblePlainText(treeLines, sections), nil
	}
	return stitcher.assembleMarkdown(treeLines, sections, statistics), nil
}

// renderSections reads every visible file in tree order, producing its
// section and accumulating header statistics.
func (stitcher *Stitcher) renderSections(visibleFiles []*Entry) ([]fileSection, documentStatistics) {
	var statistics documentStatistics
	sections := make([]fileSection, 0, len(visibleFiles))
	for _, fileEntry := range visibleFiles {
		fileContent, isReadable := stitcher.readFileText(fileEntry.AbsolutePath)
		if fileInformation, fileStatError := os.Stat(fileEntry.AbsolutePath); fileStatError == nil {
			statistics.totalBytes += fileInformation.Size()
		}
		if isReadable && stitcher.options.TokenCounter != nil {
			tokenCount, tokenCountError := stitcher.options.TokenCounter.CountString(fileContent)
			if tokenCountError == nil {
				statistics.totalTokens += tokenCount
			}
		}
		sections = append(sections, fileSection{
			displayPath: stitcher.displayPath(fileEntry),
			fileName:    fileEntry.Name,
			content:     fileContent,
			skipped:     !isReadable,
		})
	}
	return sections, statistics
}

// readFileText reads one file as text under the configured encoding. The
// second return value is false when the file must be represented by the
// placeholder instead: not a regular file, classified binary, or unreadable.
// The file handle is held only for the duration of the read.
func (stitcher *Stitcher) readFileText(absolutePath string) (string, bool) {
	fileInformation, fileStatError := os.Stat(absolutePath)
	if fileStatError != nil || !fileInformation.Mode().IsRegular() {
		return "", false
	}
	if IsLikelyBinaryFile(absolutePath) {
		return "", false
	}
	rawBytes, readError := os.ReadFile(absolutePath)
	if readError != nil {
		return "", false
	}
	return decodeText(rawBytes, stitcher.textEncoding), true
}

// displayPath returns the path rendered for a file section: root-relative by
// default, absolute when configured, forward-slash separated either way.
func (stitcher *Stitcher) displayPath(fileEntry *Entry) string {
	if stitcher.options.AbsolutePaths {
		return filepath.ToSlash(fileEntry.AbsolutePath)
	}
	return fileEntry.RelativePath
}
