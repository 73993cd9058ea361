package discovery

// Pipeline stages, in execution order.
const (
	StageExtract = "extract"
	StageQueries = "queries"
	StageSearch  = "search"
	StageRank    = "rank"
)

// Status of a progress event.
type Status string

const (
	StatusStarted Status = "started"
	StatusDone    Status = "done"
	StatusNotice  Status = "notice"
	StatusWarning Status = "warning"
)

// Event is a structured progress notification. The pipeline emits events as
// they occur rather than formatting UI strings, so any front-end can render
// them.
type Event struct {
	Stage  string
	Status Status
	Detail string
}

// Reporter receives progress events. Implementations must be safe for use
// from the goroutine running the pipeline; events are never emitted
// concurrently with each other.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) { f(e) }

// NopReporter discards all events.
var NopReporter = ReporterFunc(func(Event) {})
