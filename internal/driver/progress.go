package driver

import "time"

// Status captures the progress of one batch line.
type Status string

const (
	// StatusQueued indicates the line is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the line is being evaluated.
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one batch line.
type Event struct {
	Line    uint32
	Expr    string
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: events arrive from every worker.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
