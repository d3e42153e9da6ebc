package stitch

import (
	"fmt"
	"strings"

	"github.com/contextstitch/contextstitch/internal/utils"
)

// skippedContentPlaceholder is the fixed text substituted for content that
// could not or should not be emitted verbatim: binary files, unreadable
// files, and non-regular files such as devices and FIFOs.
const skippedContentPlaceholder = "[Skipped: binary or unreadable]"

// documentTimestampLayout formats the generation timestamp in the header.
const documentTimestampLayout = "2006-01-02 15:04:05"

const (
	markdownDocumentTitle = "# ContextStitch Output"
	plainDocumentTitle    = "ContextStitch output"
)

// sectionRuleLength is the width of the plain-text header and section rules.
const sectionRuleLength = 80

// fileSection carries one visible file's rendered content.
type fileSection struct {
	displayPath string
	fileName    string
	content     string
	skipped     bool
}

// documentStatistics aggregates facts about the rendered files for the
// document header.
type documentStatistics struct {
	totalBytes  int64
	totalTokens int
}

// assembleMarkdown renders the Markdown document: a header block, the folder
// tree in a text fence, then one heading plus fenced block per file.
func (stitcher *Stitcher) assembleMarkdown(treeLines []string, sections []fileSection, statistics documentStatistics) string {
	var documentBuilder strings.Builder
	documentBuilder.WriteString(markdownDocumentTitle + "\n\n")
	fmt.Fprintf(&documentBuilder, "- **Root**: `%s`\n", stitcher.rootPath)
	fmt.Fprintf(&documentBuilder, "- **Generated**: %s\n", stitcher.generatedAt)
	fmt.Fprintf(&documentBuilder, "- **Files included**: %d\n", len(sections))
	fmt.Fprintf(&documentBuilder, "- **Total size**: %s\n", utils.FormatFileSize(statistics.totalBytes))
	if stitcher.options.TokenCounter != nil {
		fmt.Fprintf(&documentBuilder, "- **Tokens**: %d (%s)\n", statistics.totalTokens, stitcher.options.TokenCounter.Name())
	}
	documentBuilder.WriteString("\n## Folder Tree\n\n```text\n")
	for _, treeLine := range treeLines {
		documentBuilder.WriteString(treeLine + "\n")
	}
	documentBuilder.WriteString("```\n\n## Files\n\n")

	for _, section := range sections {
		fmt.Fprintf(&documentBuilder, "### `%s`\n\n", section.displayPath)
		languageTag := FenceLanguage(section.fileName)
		if languageTag != "" {
			documentBuilder.WriteString("```" + languageTag + "\n")
		} else {
			documentBuilder.WriteString("```\n")
		}
		if section.skipped {
			documentBuilder.WriteString(skippedContentPlaceholder + "\n")
		} else {
			documentBuilder.WriteString(section.content)
			if !strings.HasSuffix(section.content, "\n") {
				documentBuilder.WriteString("\n")
			}
		}
		documentBuilder.WriteString("```\n\n")
	}
	return documentBuilder.String()
}

// assemblePlainText renders the plain-text document: a header block, the
// folder tree, then one delimited section per file.
func (stitcher *Stitcher) assemblePlainText(treeLines []string, sections []fileSection) string {
	var documentBuilder strings.Builder
	documentBuilder.WriteString(plainDocumentTitle + "\n")
	fmt.Fprintf(&documentBuilder, "Root: %s\n", stitcher.rootPath)
	fmt.Fprintf(&documentBuilder, "Generated: %s\n", stitcher.generatedAt)
	documentBuilder.WriteString(strings.Repeat("=", sectionRuleLength) + "\n\n")

	documentBuilder.WriteString("FOLDER TREE\n")
	documentBuilder.WriteString(strings.Repeat("-", sectionRuleLength) + "\n")
	for _, treeLine := range treeLines {
		documentBuilder.WriteString(treeLine + "\n")
	}
	documentBuilder.WriteString("\n")

	documentBuilder.WriteString("FILES\n")
	documentBuilder.WriteString(strings.Repeat("-", sectionRuleLength) + "\n")
	for _, section := range sections {
		fmt.Fprintf(&documentBuilder, "--- BEGIN FILE: %s ---\n", section.displayPath)
		if section.skipped {
			documentBuilder.WriteString(skippedContentPlaceholder + "\n")
		} else {
			documentBuilder.WriteString(section.content)
			if !strings.HasSuffix(section.content, "\n") {
				documentBuilder.WriteString("\n")
			}
		}
		fmt.Fprintf(&documentBuilder, "--- END FILE: %s ---\n\n", section.displayPath)
	}
	return documentBuilder.String()
}
