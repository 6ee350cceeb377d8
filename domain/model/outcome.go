package model

import "time"

// State tracks where a setup run currently is. Transitions are strictly
// forward; Failed is terminal and the operator retries from AwaitingInput.
type State int

const (
	StateIdle State = iota
	StateProbing
	StateAwaitingInput
	StateApplyingOptional
	StatePersistingSecret
	StateCompleting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProbing:
		return "probing"
	case StateAwaitingInput:
		return "awaiting-input"
	case StateApplyingOptional:
		return "applying-optional"
	case StatePersistingSecret:
		return "persisting-secret"
	case StateCompleting:
		return "completing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stage labels attached to fatal errors for the display surface.
type Stage string

const (
	StageProbing          Stage = "probing"
	StageApplyingOptional Stage = "applying-optional"
	StagePersistingSecret Stage = "persisting-secret"
	StageCompleting       Stage = "completing"
	StageNetworkTimeout   Stage = "network-timeout"
)

// Redirect instructs the display surface to navigate to the app home view
// after a short delay. The delay gives the registry reload time to be
// observed before the home view re-reads the configured flag.
type Redirect struct {
	Path  string        `json:"path"`
	Delay time.Duration `json:"delay"`
}

// Outcome is the accumulated result of one orchestration run: ordered
// non-fatal warnings plus an optional terminal error tagged with the stage
// at which it occurred. Created fresh per run.
type Outcome struct {
	RunID    string    `json:"run_id"`
	State    State     `json:"-"`
	Warnings []string  `json:"warnings,omitempty"`
	Stage    Stage     `json:"stage,omitempty"`
	Err      string    `json:"error,omitempty"`
	Redirect *Redirect `json:"redirect,omitempty"`
}

// Warn appends a non-fatal warning message.
func (o *Outcome) Warn(msg string) {
	o.Warnings = append(o.Warnings, msg)
}

// Fail marks the run failed at the given stage.
func (o *Outcome) Fail(stage Stage, err error) {
	o.State = StateFailed
	o.Stage = stage
	if err != nil {
		o.Err = err.Error()
	}
}

// OK reports whether the run finished without a fatal error.
func (o *Outcome) OK() bool {
	return o.State == StateDone
}
