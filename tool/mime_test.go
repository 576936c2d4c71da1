package tool

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMimeTypeFromBytes(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, "image/jpeg"},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R'}, "image/png"},
		{"unknown binary", []byte{0x00, 0xFF, 0x13, 0x00, 0xFF, 0x13, 0x00, 0x01}, DefaultMimeType},
		{"printable text", []byte("hello, no signature here\n"), DefaultMimeType},
		{"json text", []byte(`{"name":"a.jpg"}`), DefaultMimeType},
		{"html text", []byte("<html><body>hi</body></html>"), DefaultMimeType},
		{"empty", nil, DefaultMimeType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMimeTypeFromBytes(tt.header))
		})
	}
}

func TestDetectMimeTypeFile(t *testing.T) {
	dir := t.TempDir()
	jpeg := filepath.Join(dir, "photo.bin")
	require.NoError(t, os.WriteFile(jpeg, append([]byte{0xFF, 0xD8, 0xFF, 0xDB}, make([]byte, 4096)...), 0o644))
	assert.Equal(t, "image/jpeg", DetectMimeType(jpeg))

	// the extension does not matter, only the content
	fake := filepath.Join(dir, "fake.jpg")
	require.NoError(t, os.WriteFile(fake, []byte{0x00, 0xFF, 0x13, 0x00, 0xFF, 0x13, 0x00, 0x01}, 0o644))
	assert.Equal(t, DefaultMimeType, DetectMimeType(fake))

	notes := filepath.Join(dir, "notes.jpg")
	require.NoError(t, os.WriteFile(notes, []byte("not really a photo"), 0o644))
	assert.Equal(t, DefaultMimeType, DetectMimeType(notes))

	assert.Equal(t, DefaultMimeType, DetectMimeType(filepath.Join(dir, "missing")))
}
