package batch

import "github.com/xufanglin/rimmich/types"

// Reporter receives status events of a batch. Calls are serialized by the
// Coordinator and arrive in completion order.
type Reporter interface {
	Started(total int)
	Progress(completed, total int, name string)
	Failed(name, detail string)
	Finished(result types.BatchResult)
}

type NopReporter struct{}

func (NopReporter) Started(int)                {}
func (NopReporter) Progress(int, int, string)  {}
func (NopReporter) Failed(string, string)      {}
func (NopReporter) Finished(types.BatchResult) {}

type multiReporter []Reporter

// Reporters fans every event out to all rs in order. Nil entries are skipped.
func Reporters(rs ...Reporter) Reporter {
	out := make(multiReporter, 0, len(rs))
	for _, r := range rs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multiReporter) Started(total int) {
	for _, r := range m {
		r.Started(total)
	}
}

func (m multiReporter) Progress(completed, total int, name string) {
	for _, r := range m {
		r.Progress(completed, total, name)
	}
}

func (m multiReporter) Failed(name, detail string) {
	for _, r := range m {
		r.Failed(name, detail)
	}
}

func (m multiReporter) Finished(result types.BatchResult) {
	for _, r := range m {
		r.Finished(result)
	}
}
