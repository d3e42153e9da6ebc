package stitch

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/contextstitch/contextstitch/internal/ignore"
)

// TestHasHiddenSegment verifies dot-segment detection on relative paths.
func TestHasHiddenSegment(testingInstance *testing.T) {
	testCases := []struct {
		testName     string
		relativePath string
		expected     bool
	}{
		{
			testName:     "visible file",
			relativePath: "main.go",
			expected:     false,
		},
		{
			testName:     "hidden file",
			relativePath: ".env",
			expected:     true,
		},
		{
			testName:     "hidden ancestor directory",
			relativePath: ".config/settings.toml",
			expected:     true,
		},
		{
			testName:     "hidden leaf under visible directory",
			relativePath: "src/.cache",
			expected:     true,
		},
		{
			testName:     "dot and dot-dot segments not hidden",
			relativePath: "./../src/main.go",
			expected:     false,
		},
	}

	for index, testCase := range testCases {
		actual := hasHiddenSegment(testCase.relativePath)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %t, got %t", index, testCase.testName, testCase.expected, actual)
		}
	}
}

// findDirectoryEntry locates the named entry in a directory listing.
func findDirectoryEntry(testingHandle *testing.T, directoryPath string, entryName string) fs.DirEntry {
	testingHandle.Helper()
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		testingHandle.Fatalf("failed to list %s: %v", directoryPath, readError)
	}
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.Name() == entryName {
			return directoryEntry
		}
	}
	testingHandle.Fatalf("entry %s not found in %s", entryName, directoryPath)
	return nil
}

// TestVisibilityFilterKeep verifies the hidden, ignore-pattern, and file-size
// checks against real directory entries.
func TestVisibilityFilterKeep(testingInstance *testing.T) {
	temporaryDirectory := testingInstance.TempDir()
	fixtureFiles := map[string][]byte{
		"small.txt": []byte("123456789"),
		"big.txt":   []byte("12345678901"),
		"debug.log": []byte("log line"),
		".env":      []byte("SECRET=1"),
	}
	for fixtureName, fixtureContent := range fixtureFiles {
		fixturePath := filepath.Join(temporaryDirectory, fixtureName)
		if writeError := os.WriteFile(fixturePath, fixtureContent, 0o644); writeError != nil {
			testingInstance.Fatalf("failed to write %s: %v", fixtureName, writeError)
		}
	}

	testCases := []struct {
		testName      string
		entryName     string
		includeHidden bool
		expected      bool
	}{
		{
			testName:  "file at size limit kept",
			entryName: "small.txt",
			expected:  true,
		},
		{
			testName:  "file over size limit skipped",
			entryName: "big.txt",
			expected:  false,
		},
		{
			testName:  "ignore pattern match skipped",
			entryName: "debug.log",
			expected:  false,
		},
		{
			testName:  "hidden file skipped by default",
			entryName: ".env",
			expected:  false,
		},
		{
			testName:      "hidden file kept when included",
			entryName:     ".env",
			includeHidden: true,
			expected:      true,
		},
	}

	for index, testCase := range testCases {
		filter := &visibilityFilter{
			matcher:       ignore.NewMatcher([]string{"*.log"}),
			includeHidden: testCase.includeHidden,
			maxFileSize:   10,
		}
		directoryEntry := findDirectoryEntry(testingInstance, temporaryDirectory, testCase.entryName)
		absolutePath := filepath.Join(temporaryDirectory, testCase.entryName)
		actual := filter.Keep(directoryEntry, absolutePath, testCase.entryName, false)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %t, got %t", index, testCase.testName, testCase.expected, actual)
		}
	}
}
