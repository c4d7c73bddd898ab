package domain

// State names the active variant of an Outcome
type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StateFailed    State = "failed"
	StateSucceeded State = "succeeded"
)

// Outcome is the state of the last fetch attempt. The set of implementations is closed:
// Idle, Loading, Failed and Succeeded.
type Outcome interface {
	State() State
	outcome()
}

// Idle is the outcome before any fetch or after a reset
type Idle struct{}

// Loading is the outcome while a fetch is in flight
type Loading struct{}

// Failed is the outcome of a fetch that did not produce results
type Failed struct {
	Message string
}

// Succeeded is the outcome of a fetch with a well-formed response.
// Notice is set for an empty result set and is informational, not an error.
type Succeeded struct {
	Items  []NewsItem
	Notice string
}

// State returns StateIdle
func (Idle) State() State { return StateIdle }

// State returns StateLoading
func (Loading) State() State { return StateLoading }

// State returns StateFailed
func (Failed) State() State { return StateFailed }

// State returns StateSucceeded
func (Succeeded) State() State { return StateSucceeded }

func (Idle) outcome()      {}
func (Loading) outcome()   {}
func (Failed) outcome()    {}
func (Succeeded) outcome() {}

// StateOf returns the state of an outcome, nil is treated as idle
func StateOf(o Outcome) State {
	if o == nil {
		return StateIdle
	}
	return o.State()
}
