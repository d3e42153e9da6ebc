// Package stitch contains the traversal-and-filtering engine that turns a
// directory tree into a single context document.
package stitch

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/contextstitch/contextstitch/internal/tokenizer"
)

// Format selects the rendered document flavor.
type Format string

const (
	// FormatMarkdown renders the document as Markdown.
	FormatMarkdown Format = "md"
	// FormatText renders the document as plain text.
	FormatText Format = "txt"
)

// DefaultMaxFileSize is the file-size cap applied when none is configured.
const DefaultMaxFileSize int64 = 1024 * 1024

// DefaultEncodingName is the text encoding assumed when none is configured.
const DefaultEncodingName = "utf-8"

// GitIgnoreFileName is the name of the Git ignore file looked up in the root.
const GitIgnoreFileName = ".gitignore"

// Options is the immutable configuration record for one run. It is
// constructed once by the caller and never mutated by the engine.
type Options struct {
	// Root is the directory the run walks.
	Root string
	// Format selects Markdown or plain-text output.
	Format Format
	// GitignorePath is an explicit ignore-file path. When empty and
	// UseGitignore is set, <Root>/.gitignore is used if present.
	GitignorePath string
	// UseGitignore enables gitignore-file honoring.
	UseGitignore bool
	// Preset names a built-in ecosystem ignore bundle.
	Preset string
	// ExtraIgnores holds caller-supplied patterns, highest precedence.
	ExtraIgnores []string
	// IncludeHidden keeps dot-prefixed files and directories visible.
	IncludeHidden bool
	// MaxFileSize excludes regular files larger than this many bytes.
	MaxFileSize int64
	// FollowSymlinks resolves symlinks instead of skipping them.
	FollowSymlinks bool
	// AbsolutePaths renders absolute file paths instead of root-relative ones.
	AbsolutePaths bool
	// Encoding names the text encoding used to decode file contents.
	Encoding string
	// Quiet is carried for the caller; the engine itself never logs.
	Quiet bool
	// TokenCounter, when set, adds a token total to the document header.
	TokenCounter tokenizer.Counter
	// TokenModel labels the token total in the header.
	TokenModel string
}

// DefaultGlobalIgnorePatterns lists names excluded from every run, ahead of
// preset, gitignore, and caller patterns.
var DefaultGlobalIgnorePatterns = []string{
	".git/",
	".svn/",
	".hg/",
	".DS_Store",
	"Thumbs.db",
	".idea/",
	".vscode/",
	"*.exe",
	"*.dll",
}

// presetIgnorePatterns holds the named ecosystem ignore bundles.
var presetIgnorePatterns = map[string][]string{
	"python": {
		"__pycache__/",
		"*.py[cod]",
		".mypy_cache/",
		".pytest_cache/",
		".tox/",
		".venv/",
		"venv/",
		"env/",
		"build/",
		"dist/",
		"*.egg-info/",
	},
	"node": {
		"node_modules/",
		"dist/",
		"build/",
		".next/",
		".nuxt/",
		".cache/",
		"coverage/",
		"*.log",
	},
}

// unknownPresetMessageFormat reports an unrecognized preset name.
const unknownPresetMessageFormat = "unknown preset: %q"

// gitignoreReadMessageFormat reports an unreadable explicit ignore file.
const gitignoreReadMessageFormat = "reading ignore file %s: %v"

// assembleIgnorePatterns builds the ordered pattern list for a run: built-in
// global ignores, preset ignores, gitignore-file lines, then caller-supplied
// patterns. Order is preserved so later patterns keep their gitignore
// override precedence.
func assembleIgnorePatterns(options Options, rootPath string) ([]string, error) {
	patterns := append([]string{}, DefaultGlobalIgnorePatterns...)

	if options.Preset != "" {
		presetPatterns, presetKnown := presetIgnorePatterns[strings.ToLower(options.Preset)]
		if !presetKnown {
			return nil, NewConfigurationError(unknownPresetMessageFormat, options.Preset)
		}
		patterns = append(patterns, presetPatterns...)
	}

	if options.UseGitignore {
		gitignorePath := options.GitignorePath
		isExplicitPath := gitignorePath != ""
		if !isExplicitPath {
			gitignorePath = filepath.Join(rootPath, GitIgnoreFileName)
		}
		gitignoreLines, readError := readIgnoreFileLines(gitignorePath)
		if readError != nil && isExplicitPath {
			return nil, NewConfigurationError(gitignoreReadMessageFormat, gitignorePath, readError)
		}
		patterns = append(patterns, gitignoreLines...)
	}

	for _, extraPattern := range options.ExtraIgnores {
		trimmedPattern := strings.TrimSpace(extraPattern)
		if trimmedPattern == "" {
			continue
		}
		patterns = append(patterns, trimmedPattern)
	}

	return patterns, nil
}

// readIgnoreFileLines loads the non-blank lines of an ignore file. Comment
// handling is left to the pattern engine, which understands the gitignore
// dialect.
func readIgnoreFileLines(ignoreFilePath string) ([]string, error) {
	fileHandle, openError := os.Open(ignoreFilePath)
	if openError != nil {
		return nil, openError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimRight(scanner.Text(), "\n")
		if strings.TrimSpace(trimmedLine) == "" {
			continue
		}
		lines = append(lines, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return lines, nil
}
