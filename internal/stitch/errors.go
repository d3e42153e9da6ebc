package stitch

import "fmt"

// ConfigurationError reports configuration that prevents a run from starting:
// a missing root, an unknown preset, a malformed size, or an unknown encoding.
// It is the only fatal error class the engine produces.
type ConfigurationError struct {
	Message string
}

// Error returns the human-readable message.
func (configurationError *ConfigurationError) Error() string {
	return configurationError.Message
}

// NewConfigurationError builds a ConfigurationError from a format string.
func NewConfigurationError(messageFormat string, arguments ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(messageFormat, arguments...)}
}
