package stitch

import (
	"path/filepath"
	"strings"
)

// fenceLanguageByExtension maps lower-case file extensions to Markdown fence
// language tags. Extensions absent from the table get an untagged block.
var fenceLanguageByExtension = map[string]string{
	"py":   "python",
	"js":   "javascript",
	"ts":   "typescript",
	"tsx":  "tsx",
	"jsx":  "jsx",
	"json": "json",
	"yml":  "yaml",
	"yaml": "yaml",
	"toml": "toml",
	"ini":  "ini",
	"cfg":  "ini",
	"md":   "markdown",
	"txt":  "",
	"sh":   "bash",
	"zsh":  "bash",
	"ps1":  "powershell",
	"rb":   "ruby",
	"go":   "go",
	"rs":   "rust",
	"java": "java",
	"kt":   "kotlin",
	"c":    "c",
	"h":    "c",
	"cpp":  "cpp",
	"hpp":  "cpp",
	"cs":   "csharp",
	"php":  "php",
	"sql":  "sql",
	"html": "html",
	"css":  "css",
	"vue":  "vue",
	"sv":   "verilog",
}

// FenceLanguage returns the Markdown fence tag for the file name's extension,
// or an empty string when the extension is unknown.
func FenceLanguage(fileName string) string {
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	return fenceLanguageByExtension[extension]
}
