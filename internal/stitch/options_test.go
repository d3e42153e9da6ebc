package stitch

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// TestAssembleIgnorePatternsOrdering verifies that global, preset, gitignore,
// and caller patterns are concatenated in precedence order.
func TestAssembleIgnorePatternsOrdering(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	gitignorePath := filepath.Join(rootDirectory, GitIgnoreFileName)
	if writeError := os.WriteFile(gitignorePath, []byte("*.log\n\n!keep.log\n"), 0o644); writeError != nil {
		testingInstance.Fatalf("failed to write gitignore: %v", writeError)
	}

	assembledPatterns, assembleError := assembleIgnorePatterns(Options{
		Preset:       "node",
		UseGitignore: true,
		ExtraIgnores: []string{"  vendor/  ", ""},
	}, rootDirectory)
	if assembleError != nil {
		testingInstance.Fatalf("assembleIgnorePatterns failed: %v", assembleError)
	}

	expectedPatterns := append([]string{}, DefaultGlobalIgnorePatterns...)
	expectedPatterns = append(expectedPatterns, presetIgnorePatterns["node"]...)
	expectedPatterns = append(expectedPatterns, "*.log", "!keep.log", "vendor/")
	if !reflect.DeepEqual(assembledPatterns, expectedPatterns) {
		testingInstance.Fatalf("unexpected patterns: got %v want %v", assembledPatterns, expectedPatterns)
	}
}

// TestAssembleIgnorePatternsMissingImplicitGitignore verifies that a missing
// root .gitignore is skipped silently.
func TestAssembleIgnorePatternsMissingImplicitGitignore(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	assembledPatterns, assembleError := assembleIgnorePatterns(Options{UseGitignore: true}, rootDirectory)
	if assembleError != nil {
		testingInstance.Fatalf("assembleIgnorePatterns failed: %v", assembleError)
	}
	if !reflect.DeepEqual(assembledPatterns, DefaultGlobalIgnorePatterns) {
		testingInstance.Fatalf("unexpected patterns: got %v want %v", assembledPatterns, DefaultGlobalIgnorePatterns)
	}
}

// TestAssembleIgnorePatternsConfigurationErrors verifies the fatal cases:
// unknown preset names and unreadable explicit ignore files.
func TestAssembleIgnorePatternsConfigurationErrors(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	testCases := []struct {
		testName string
		options  Options
	}{
		{
			testName: "unknown preset",
			options:  Options{Preset: "rust"},
		},
		{
			testName: "missing explicit gitignore",
			options: Options{
				UseGitignore:  true,
				GitignorePath: filepath.Join(rootDirectory, "absent.gitignore"),
			},
		},
	}

	for index, testCase := range testCases {
		_, assembleError := assembleIgnorePatterns(testCase.options, rootDirectory)
		if assembleError == nil {
			testingInstance.Errorf("case %d (%s): expected error, got none", index, testCase.testName)
			continue
		}
		var configurationError *ConfigurationError
		if !errors.As(assembleError, &configurationError) {
			testingInstance.Errorf("case %d (%s): expected ConfigurationError, got %T", index, testCase.testName, assembleError)
		}
	}
}
