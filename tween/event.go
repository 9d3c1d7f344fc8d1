package tween

import "fmt"

// Event names a lifecycle callback slot.
type Event int

const (
	OnStart Event = iota
	OnUpdate
	OnRepeat
	OnComplete
	numEvents
)

var eventNames = [numEvents]string{"onStart", "onUpdate", "onRepeat", "onComplete"}

func (e Event) String() string {
	if e < 0 || e >= numEvents {
		return fmt.Sprintf("Event(%d)", int(e))
	}
	return eventNames[e]
}

// ParseEvent maps a callback name such as "onComplete" to its Event.
func ParseEvent(name string) (Event, error) {
	for i, n := range eventNames {
		if n == name {
			return Event(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tween event %q", name)
}

// EventArgs is passed to every callback.
type EventArgs struct {
	Type  Event
	Tween *Tween
	// Key is the repeating property for OnRepeat and empty otherwise.
	Key    string
	Scope  interface{}
	Params []interface{}
}

// A Callback handles a lifecycle event. A returned error aborts the current
// Update and is handed back to its caller.
type Callback func(args EventArgs) error

type callback struct {
	fn     Callback
	params []interface{}
	scope  interface{}
}
