package stitch

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// unknownEncodingMessageFormat reports an unrecognized encoding name.
const unknownEncodingMessageFormat = "unknown encoding: %q"

// replacementText substitutes byte sequences invalid under the configured
// encoding.
const replacementText = "�"

// resolveEncoding maps an IANA encoding name to a decoder. An empty name
// selects UTF-8; an unrecognized name is a configuration error.
func resolveEncoding(encodingName string) (encoding.Encoding, error) {
	trimmedName := strings.TrimSpace(encodingName)
	if trimmedName == "" {
		return unicode.UTF8, nil
	}
	resolvedEncoding, lookupError := ianaindex.IANA.Encoding(trimmedName)
	if lookupError != nil || resolvedEncoding == nil {
		return nil, NewConfigurationError(unknownEncodingMessageFormat, encodingName)
	}
	return resolvedEncoding, nil
}

// decodeText converts raw file bytes to a UTF-8 string under textEncoding,
// substituting invalid sequences instead of failing the run.
func decodeText(rawBytes []byte, textEncoding encoding.Encoding) string {
	decodedBytes, decodeError := textEncoding.NewDecoder().Bytes(rawBytes)
	if decodeError != nil {
		return strings.ToValidUTF8(string(rawBytes), replacementText)
	}
	return string(decodedBytes)
}
