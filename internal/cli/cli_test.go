package cli

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/contextstitch/contextstitch/internal/config"
	"github.com/contextstitch/contextstitch/internal/stitch"
)

// TestDefaultOutputFileName verifies the auto-generated name carries the
// timestamp and the format extension.
func TestDefaultOutputFileName(testingInstance *testing.T) {
	testCases := []struct {
		testName       string
		documentFormat stitch.Format
		expected       string
	}{
		{
			testName:       "markdown extension",
			documentFormat: stitch.FormatMarkdown,
			expected:       "contextstitch-1700000000.md",
		},
		{
			testName:       "plain text extension",
			documentFormat: stitch.FormatText,
			expected:       "contextstitch-1700000000.txt",
		},
	}

	generationTime := time.Unix(1700000000, 0)
	for index, testCase := range testCases {
		actual := defaultOutputFileName(testCase.documentFormat, generationTime)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %s, got %s", index, testCase.testName, testCase.expected, actual)
		}
	}
}

// TestApplyConfigurationDefaults verifies that file-supplied values fill only
// the flags the command line left untouched.
func TestApplyConfigurationDefaults(testingInstance *testing.T) {
	flags := &stitchFlags{}
	rootCommand := createRootCommand(zap.NewNop(), flags)
	if parseError := rootCommand.ParseFlags([]string{"--format", "txt"}); parseError != nil {
		testingInstance.Fatalf("failed to parse flags: %v", parseError)
	}

	hiddenEnabled := true
	fileConfiguration := config.FileConfiguration{
		Format:        "md",
		Preset:        "python",
		IncludeHidden: &hiddenEnabled,
		MaxFileSize:   "500k",
	}
	applyConfigurationDefaults(rootCommand, flags, fileConfiguration)

	if flags.formatName != "txt" {
		testingInstance.Errorf("expected explicit format txt to survive, got %q", flags.formatName)
	}
	if flags.presetName != "python" {
		testingInstance.Errorf("expected configured preset python, got %q", flags.presetName)
	}
	if !flags.includeHidden {
		testingInstance.Errorf("expected configured include-hidden to apply")
	}
	if flags.maxFileSizeText != "500k" {
		testingInstance.Errorf("expected configured max file size 500k, got %q", flags.maxFileSizeText)
	}
}
