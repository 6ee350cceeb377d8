package model

// Availability is the tri-state result of probing one optional config domain.
type Availability int

const (
	// Unavailable means the domain could not be fetched; it must never be
	// written to during completion.
	Unavailable Availability = iota
	// AvailableEmpty means the domain is reachable but carries no value yet.
	AvailableEmpty
	// Available means the domain is reachable and holds a current value.
	Available
)

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case AvailableEmpty:
		return "available-empty"
	default:
		return "unavailable"
	}
}

// Writable reports whether completion may attempt a write to the domain.
func (a Availability) Writable() bool {
	return a != Unavailable
}

// FeatureState is the probe result for one optional setting: its
// availability and the currently persisted value, if any.
type FeatureState struct {
	Availability Availability
	Value        string
}
