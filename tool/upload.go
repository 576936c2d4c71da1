package tool

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xufanglin/rimmich/types"
)

// ErrIsDirectory is returned when a directory is selected instead of a file.
var ErrIsDirectory = errors.New("path is a directory, not a file")

// TimestampLayout is RFC 3339 with millisecond precision; UTC renders as "Z".
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DeviceAssetID derives the per-file identifier the server deduplicates on.
// Identical (name, size) pairs always yield the same id.
func DeviceAssetID(fileName string, size int64) string {
	return fmt.Sprintf("%s-%d", fileName, size)
}

// FormatTimestamp renders t for the fileCreatedAt / fileModifiedAt form fields.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// GetAssetMetadata reads the metadata sent alongside the asset bytes.
// Missing creation or modification times are replaced by now.
func GetAssetMetadata(filePath string) (types.AssetMetadata, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return types.AssetMetadata{}, fmt.Errorf("failed to read file metadata: %w", err)
	}
	if fileInfo.IsDir() {
		return types.AssetMetadata{}, ErrIsDirectory
	}

	now := time.Now()
	createdAt, ok := fileCreationTime(filePath, fileInfo)
	if !ok {
		DefaultLogger.Debugf("Creation time unavailable for %s, using current time", filePath)
		createdAt = now
	}
	modifiedAt := fileInfo.ModTime()
	if modifiedAt.IsZero() {
		modifiedAt = now
	}

	fileName := filepath.Base(filePath)
	return types.AssetMetadata{
		DeviceAssetID:  DeviceAssetID(fileName, fileInfo.Size()),
		FileName:       fileName,
		Size:           fileInfo.Size(),
		ContentType:    DetectMimeType(filePath),
		FileCreatedAt:  FormatTimestamp(createdAt),
		FileModifiedAt: FormatTimestamp(modifiedAt),
	}, nil
}
