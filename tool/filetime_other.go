//go:build !linux && !darwin && !windows

package tool

import (
	"os"
	"time"
)

func fileCreationTime(_ string, _ os.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
