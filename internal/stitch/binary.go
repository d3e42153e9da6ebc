package stitch

import (
	"io"
	"os"
)

// binarySampleLength defines the maximum number of leading bytes read when
// detecting binary content.
const binarySampleLength = 2048

// binaryNonTextThreshold is the fraction of non-text bytes above which a
// sample is classified as binary.
const binaryNonTextThreshold = 0.30

// textByteTable marks byte values accepted as text: printable bytes from 0x20
// through 0xFF plus the bell, backspace, tab, newline, form-feed, carriage
// return, and escape control codes.
var textByteTable = buildTextByteTable()

func buildTextByteTable() [256]bool {
	var table [256]bool
	for byteValue := 0x20; byteValue <= 0xFF; byteValue++ {
		table[byteValue] = true
	}
	for _, controlCode := range []byte{0x07, 0x08, '\t', '\n', 0x0C, '\r', 0x1B} {
		table[controlCode] = true
	}
	return table
}

// IsLikelyBinaryData reports whether the provided sample appears to contain
// binary data. A NUL byte is always binary; otherwise the sample is binary
// when more than binaryNonTextThreshold of its bytes fall outside the
// accepted text set.
func IsLikelyBinaryData(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}
	nonTextCount := 0
	for _, byteValue := range sample {
		if byteValue == 0 {
			return true
		}
		if !textByteTable[byteValue] {
			nonTextCount++
		}
	}
	return float64(nonTextCount)/float64(len(sample)) > binaryNonTextThreshold
}

// IsLikelyBinaryFile reads up to binarySampleLength bytes from the file at
// filePath and classifies the content. Files that cannot be opened or read
// are reported as binary so unreadable bytes never reach the document.
func IsLikelyBinaryFile(filePath string) bool {
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return true
	}
	defer fileHandle.Close()

	sampleBuffer := make([]byte, binarySampleLength)
	bytesRead, readError := io.ReadFull(fileHandle, sampleBuffer)
	if readError != nil && readError != io.EOF && readError != io.ErrUnexpectedEOF {
		return true
	}
	return IsLikelyBinaryData(sampleBuffer[:bytesRead])
}
