package panel

import "github.com/studiowebux/metawrite/internal/types"

// Status names a RequestState variant
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RequestState is one of Idle, Loading, Succeeded or Failed
type RequestState interface {
	Status() Status
	isRequestState()
}

// Idle is the state before the first submit
type Idle struct{}

// Loading is the state while a request is in flight
type Loading struct {
	Query string
	Seq   uint64
}

// Succeeded holds the article of the last completed request and the
// query it was generated for
type Succeeded struct {
	Query   string
	Article types.Article
}

// Failed holds the message shown for the last failed request.
// Cause is the underlying error, kept for hints and logging.
type Failed struct {
	Message string
	Cause   error
}

func (Idle) Status() Status      { return StatusIdle }
func (Loading) Status() Status   { return StatusLoading }
func (Succeeded) Status() Status { return StatusSucceeded }
func (Failed) Status() Status    { return StatusFailed }

func (Idle) isRequestState()      {}
func (Loading) isRequestState()   {}
func (Succeeded) isRequestState() {}
func (Failed) isRequestState()    {}
