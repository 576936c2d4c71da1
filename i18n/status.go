package i18n

import (
	"github.com/xufanglin/rimmich/types"
)

// StatusReporter turns batch events into translated status lines and hands
// every line to Emit. It satisfies batch.Reporter.
type StatusReporter struct {
	Text I18n
	Emit func(kind string, line string)
}

func (r StatusReporter) emit(kind string, line string) {
	if r.Emit != nil {
		r.Emit(kind, line)
	}
}

func (r StatusReporter) Started(total int) {
	r.emit(types.NotifyTypeUploadStart, r.Text.StartParallelUpload(total))
}

func (r StatusReporter) Progress(completed, total int, name string) {
	r.emit(types.NotifyTypeUploadProgress, r.Text.UploadSuccess(completed, total, name))
}

func (r StatusReporter) Failed(name, detail string) {
	r.emit(types.NotifyTypeUploadFailed, r.Text.UploadFailed(name, detail))
}

// Finished emits the closing line. Aborted batches were already announced by Failed.
func (r StatusReporter) Finished(result types.BatchResult) {
	state := result.State()
	switch state.Kind {
	case types.StateAllSucceeded:
		r.emit(types.NotifyTypeUploadEnd, r.Text.AllFilesUploaded(state.Total))
	case types.StateCancelled:
		r.emit(types.NotifyTypeUploadEnd, r.Text.UploadCancelled(state.CompletedBeforeFailure, state.Total))
	}
}
