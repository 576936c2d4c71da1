package tool

import (
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMimeType is used whenever no signature matches.
const DefaultMimeType = "application/octet-stream"

// SniffLength is how many leading bytes are inspected.
const SniffLength = 512

// DetectMimeType classifies the file at path by its magic bytes. It never fails:
// unreadable files and unknown content both yield DefaultMimeType.
func DetectMimeType(path string) string {
	f, err := os.Open(path)
	if err != nil {
		DefaultLogger.Warnf("Unable to open %s for MIME detection, using default: %v", path, err)
		return DefaultMimeType
	}
	defer f.Close()

	buf := make([]byte, SniffLength)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		DefaultLogger.Warnf("Unable to read %s for MIME detection, using default: %v", path, err)
		return DefaultMimeType
	}
	mimeType := DetectMimeTypeFromBytes(buf[:n])
	if mimeType == DefaultMimeType {
		DefaultLogger.Warnf("Unable to detect MIME type for %s, using default", path)
	}
	return mimeType
}

// DetectMimeTypeFromBytes classifies up to the first SniffLength bytes of header.
func DetectMimeTypeFromBytes(header []byte) string {
	if len(header) == 0 {
		return DefaultMimeType
	}
	if len(header) > SniffLength {
		header = header[:SniffLength]
	}
	mt := mimetype.Detect(header)
	if mt == nil || mt.String() == "" {
		return DefaultMimeType
	}
	// mimetype falls back to text/plain for printable content; that tree carries no magic bytes.
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return DefaultMimeType
		}
	}
	return mt.String()
}
