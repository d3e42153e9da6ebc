// Package tokenizer estimates token counts for text content.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	// DefaultModel is the tokenizer model assumed when none is configured.
	DefaultModel = "gpt-4o"
	// fallbackEncodingName serves models without a dedicated encoding.
	fallbackEncodingName = "cl100k_base"
)

// NewCounter returns a Counter for the requested model along with the
// resolved model or encoding name. Models unknown to tiktoken fall back to
// the cl100k_base encoding.
func NewCounter(modelName string) (Counter, string, error) {
	resolvedModel := strings.TrimSpace(modelName)
	if resolvedModel == "" {
		resolvedModel = DefaultModel
	}
	lowerModel := strings.ToLower(resolvedModel)

	modelEncoding, encodingError := tiktoken.EncodingForModel(lowerModel)
	if encodingError == nil && modelEncoding != nil {
		return modelCounter{encoding: modelEncoding, name: lowerModel}, resolvedModel, nil
	}

	fallbackEncoding, fallbackError := tiktoken.GetEncoding(fallbackEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return modelCounter{encoding: fallbackEncoding, name: fallbackEncodingName}, fallbackEncodingName, nil
}

// modelCounter counts tokens with a tiktoken encoding.
type modelCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter modelCounter) Name() string {
	return counter.name
}

func (counter modelCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	tokenIDs := counter.encoding.Encode(input, nil, nil)
	return len(tokenIDs), nil
}
