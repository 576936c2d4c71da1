package types

import "fmt"

// UploadRequest is everything one worker needs to push a single file.
type UploadRequest struct {
	ServerURL string
	APIKey    string
	FilePath  string // absolute path
}

// FileEntry is one selected file as handed over by the file picker.
type FileEntry struct {
	Path        string `json:"path"`
	DisplayName string `json:"displayName"`
}

// UploadOutcome is produced exactly once for every started file.
// A nil Err is a success.
type UploadOutcome struct {
	DisplayName string
	Err         error
}

func (o UploadOutcome) Success() bool {
	return o.Err == nil
}

// ErrorDetail returns the human readable failure text, empty on success.
func (o UploadOutcome) ErrorDetail() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// BatchJob is created per "start upload" invocation and never persisted.
type BatchJob struct {
	Files       []FileEntry
	Concurrency int
	ServerURL   string
	APIKey      string
}

// BatchResult is the running aggregate of a batch.
// Completed never exceeds Total, and no success is counted after FirstFailure is set.
type BatchResult struct {
	Total        int
	Completed    int
	FirstFailure *UploadOutcome
	Cancelled    bool
}

type StateKind string

const (
	StateAllSucceeded     StateKind = "all_succeeded"
	StateAbortedOnFailure StateKind = "aborted_on_failure"
	StateCancelled        StateKind = "cancelled"
)

// TerminalState is the single end state a batch reaches.
type TerminalState struct {
	Kind                   StateKind `json:"kind"`
	Total                  int       `json:"total"`
	CompletedBeforeFailure int       `json:"completedBeforeFailure"`
	FailingFile            string    `json:"failingFile,omitempty"`
	ErrorDetail            string    `json:"errorDetail,omitempty"`
}

func (r BatchResult) State() TerminalState {
	switch {
	case r.FirstFailure != nil:
		return TerminalState{
			Kind:                   StateAbortedOnFailure,
			Total:                  r.Total,
			CompletedBeforeFailure: r.Completed,
			FailingFile:            r.FirstFailure.DisplayName,
			ErrorDetail:            r.FirstFailure.ErrorDetail(),
		}
	case r.Cancelled:
		return TerminalState{Kind: StateCancelled, Total: r.Total, CompletedBeforeFailure: r.Completed}
	default:
		return TerminalState{Kind: StateAllSucceeded, Total: r.Total}
	}
}

func (s TerminalState) String() string {
	switch s.Kind {
	case StateAbortedOnFailure:
		return fmt.Sprintf("AbortedOnFailure{completed_before_failure=%d, total=%d, failing_file=%s, error_detail=%s}",
			s.CompletedBeforeFailure, s.Total, s.FailingFile, s.ErrorDetail)
	case StateCancelled:
		return fmt.Sprintf("Cancelled{completed=%d, total=%d}", s.CompletedBeforeFailure, s.Total)
	default:
		return fmt.Sprintf("AllSucceeded{total=%d}", s.Total)
	}
}

// AssetMetadata is the per-file metadata sent alongside the asset bytes.
type AssetMetadata struct {
	DeviceAssetID  string
	FileName       string
	Size           int64
	ContentType    string
	FileCreatedAt  string
	FileModifiedAt string
}
