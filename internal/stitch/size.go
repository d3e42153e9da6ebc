package stitch

import (
	"strconv"
	"strings"
)

// invalidSizeMessageFormat reports a malformed size value.
const invalidSizeMessageFormat = "invalid size value: %q"

// sizeUnitFactors maps unit suffixes to their binary byte multiples.
var sizeUnitFactors = map[byte]int64{
	'k': 1024,
	'm': 1024 * 1024,
	'g': 1024 * 1024 * 1024,
}

// ParseSize converts a human-readable size such as "500k" or "1.5m" into a
// byte count. An empty value returns defaultBytes, a bare integer is taken as
// a byte count, and a number followed by one case-insensitive k/m/g suffix is
// multiplied by the matching binary factor. Any other input returns a
// ConfigurationError naming the offending value.
func ParseSize(sizeText string, defaultBytes int64) (int64, error) {
	normalizedText := strings.ToLower(strings.TrimSpace(sizeText))
	if normalizedText == "" {
		return defaultBytes, nil
	}
	lastCharacter := normalizedText[len(normalizedText)-1]
	if unitFactor, hasUnitSuffix := sizeUnitFactors[lastCharacter]; hasUnitSuffix {
		numericValue, parseError := strconv.ParseFloat(normalizedText[:len(normalizedText)-1], 64)
		if parseError != nil {
			return 0, NewConfigurationError(invalidSizeMessageFormat, sizeText)
		}
		return int64(numericValue * float64(unitFactor)), nil
	}
	byteCount, parseError := strconv.ParseInt(normalizedText, 10, 64)
	if parseError != nil {
		return 0, NewConfigurationError(invalidSizeMessageFormat, sizeText)
	}
	return byteCount, nil
}
