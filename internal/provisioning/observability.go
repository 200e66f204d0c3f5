package provisioning

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Logger is the minimal console interface phases print through.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during a run.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured run event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "extraction", "issuance")
	Message   string            // Human-readable message
	Resource  string            // Student username if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of run event.
type EventType string

const (
	// EventPhaseStarted indicates a phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventKeyCreating indicates a key creation call is starting.
	EventKeyCreating EventType = "key.creating"
	// EventKeyCreated indicates a key was created.
	EventKeyCreated EventType = "key.created"
	// EventKeyFailed indicates a key creation call failed.
	EventKeyFailed EventType = "key.failed"

	// EventProgress indicates progress in a long-running phase.
	EventProgress EventType = "progress"
)

// ConsoleObserver prints human-readable lines to a writer and sends
// structured events to a logr logger at verbosity 1.
type ConsoleObserver struct {
	out           io.Writer
	log           logr.Logger
	contextFields map[string]string
}

// NewConsoleObserver creates an observer writing to out. Structured events
// are shown when verbosity is 1 or higher.
func NewConsoleObserver(out io.Writer, verbosity int) *ConsoleObserver {
	log := funcr.New(func(prefix, args string) {
		if prefix != "" {
			_, _ = fmt.Fprintf(out, "%s: %s\n", prefix, args)
			return
		}
		_, _ = fmt.Fprintln(out, args)
	}, funcr.Options{
		Verbosity:    verbosity,
		LogTimestamp: true,
	})

	return &ConsoleObserver{
		out:           out,
		log:           log,
		contextFields: make(map[string]string),
	}
}

// Printf writes one human-readable line.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	_, _ = fmt.Fprintf(o.out, format+"\n", v...)
}

// Event implements Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	// Merge context fields
	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	o.log.V(1).Info(event.Message, eventKeysAndValues(event)...)
}

// Progress implements Observer interface.
func (o *ConsoleObserver) Progress(phase string, current, total int) {
	percentage := 0
	if total > 0 {
		percentage = (current * 100) / total
	}
	o.Event(Event{
		Type:    EventProgress,
		Phase:   phase,
		Message: fmt.Sprintf("%d/%d (%d%%)", current, total, percentage),
	})
}

// WithFields implements Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &ConsoleObserver{
		out:           o.out,
		log:           o.log,
		contextFields: newFields,
	}
}

// eventKeysAndValues flattens an event into logr key/value pairs with
// fields in sorted order.
func eventKeysAndValues(event Event) []interface{} {
	kv := []interface{}{"event", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}

	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kv = append(kv, k, event.Fields[k])
	}
	return kv
}

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogKeyCreating logs the start of a key creation call.
func LogKeyCreating(observer Observer, username, email string) {
	observer.Event(Event{
		Type:     EventKeyCreating,
		Phase:    phaseIssuance,
		Resource: username,
		Message:  "creating key",
		Fields: map[string]string{
			"email": email,
		},
	})
}

// LogKeyCreated logs a successful key creation. The secret is never logged.
func LogKeyCreated(observer Observer, username, keyName, hash string) {
	observer.Event(Event{
		Type:     EventKeyCreated,
		Phase:    phaseIssuance,
		Resource: username,
		Message:  "key created",
		Fields: map[string]string{
			"name": keyName,
			"hash": hash,
		},
	})
}

// LogKeyFailed logs a failed key creation call.
func LogKeyFailed(observer Observer, username string, err error) {
	observer.Event(Event{
		Type:     EventKeyFailed,
		Phase:    phaseIssuance,
		Resource: username,
		Message:  fmt.Sprintf("failed: %v", err),
	})
}
