// Package render turns parsed templates into renderer pipelines and runs
// them against log events.
//
// A Registry maps placeholder keys to renderer factories, a Builder compiles
// and caches one Pipeline per distinct template string, and each Renderer in
// the pipeline appends markup to a pooled Buffer.
package render

import (
	"strconv"
	"time"

	"pkt.systems/marklog/level"
)

// EventID identifies a kind of event. The zero value means none.
type EventID struct {
	ID   int
	Name string
}

// IsZero reports whether id carries neither a number nor a name.
func (id EventID) IsZero() bool {
	return id.ID == 0 && id.Name == ""
}

func (id EventID) String() string {
	if id.Name != "" {
		return id.Name
	}
	if id.ID != 0 {
		return strconv.Itoa(id.ID)
	}
	return ""
}

// Event is everything the renderers may read about one log call. Renderers
// must not retain it.
type Event struct {
	Category string
	Level    level.Level
	EventID  EventID
	// Message is a message template; Args fill its placeholders in order.
	Message string
	Args    []any
	Err     error
	// Scopes holds the active scope values, innermost first.
	Scopes   []any
	Profile  *Profile
	Time     time.Time
	Activity string
	// CallerPC is the program counter of the logging call site, set when
	// the pipeline needs it.
	CallerPC uintptr
}
