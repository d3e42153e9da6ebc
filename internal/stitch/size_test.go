package stitch

import (
	"errors"
	"testing"
)

// fallbackSizeBytes is the default passed to ParseSize in tests.
const fallbackSizeBytes int64 = 4096

// TestParseSize verifies suffix handling, the empty-input default, and
// rejection of malformed values.
func TestParseSize(testingInstance *testing.T) {
	testCases := []struct {
		testName      string
		sizeText      string
		expectedBytes int64
		expectError   bool
	}{
		{
			testName:      "one megabyte",
			sizeText:      "1m",
			expectedBytes: 1048576,
		},
		{
			testName:      "five hundred kilobytes",
			sizeText:      "500k",
			expectedBytes: 512000,
		},
		{
			testName:      "empty uses default",
			sizeText:      "",
			expectedBytes: fallbackSizeBytes,
		},
		{
			testName:      "whitespace uses default",
			sizeText:      "   ",
			expectedBytes: fallbackSizeBytes,
		},
		{
			testName:      "bare integer is bytes",
			sizeText:      "2048",
			expectedBytes: 2048,
		},
		{
			testName:      "fractional megabytes",
			sizeText:      "1.5m",
			expectedBytes: 1572864,
		},
		{
			testName:      "uppercase gigabyte suffix",
			sizeText:      "2G",
			expectedBytes: 2 * 1024 * 1024 * 1024,
		},
		{
			testName:    "letters rejected",
			sizeText:    "abc",
			expectError: true,
		},
		{
			testName:    "suffix without number rejected",
			sizeText:    "k",
			expectError: true,
		},
		{
			testName:    "double suffix rejected",
			sizeText:    "1mk",
			expectError: true,
		},
	}

	for index, testCase := range testCases {
		parsedBytes, parseError := ParseSize(testCase.sizeText, fallbackSizeBytes)
		if testCase.expectError {
			if parseError == nil {
				testingInstance.Errorf("case %d (%s): expected error, got %d", index, testCase.testName, parsedBytes)
				continue
			}
			var configurationError *ConfigurationError
			if !errors.As(parseError, &configurationError) {
				testingInstance.Errorf("case %d (%s): expected ConfigurationError, got %T", index, testCase.testName, parseError)
			}
			continue
		}
		if parseError != nil {
			testingInstance.Errorf("case %d (%s): unexpected error: %v", index, testCase.testName, parseError)
			continue
		}
		if parsedBytes != testCase.expectedBytes {
			testingInstance.Errorf("case %d (%s): expected %d, got %d", index, testCase.testName, testCase.expectedBytes, parsedBytes)
		}
	}
}
