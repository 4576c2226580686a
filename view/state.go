package view

import "encoding/json"

// Phase names what a Collections component currently displays
type Phase string

const (
	PhaseIdle    Phase = "idle" //Created, not mounted yet
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseReady   Phase = "ready"
)

// State is a snapshot of a Collections component. At most one of loading, error and collections is shown.
type State struct {
	Loading     bool     `json:"loading"`
	Error       string   `json:"error,omitempty"`
	Collections []string `json:"collections"`

	settled bool
}

// LoadingState is what the landing page shows before the collections fragment arrives
func LoadingState() State {
	return State{Loading: true, Collections: []string{}}
}

func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Error != "":
		return PhaseError
	case s.settled:
		return PhaseReady
	default:
		return PhaseIdle
	}
}

// Empty reports a ready state without collections
func (s State) Empty() bool {
	return s.Phase() == PhaseReady && len(s.Collections) == 0
}

func (s State) clone() State {
	c := s
	c.Collections = append(make([]string, 0, len(s.Collections)), s.Collections...)
	return c
}

// MarshalJSON adds the phase next to the state triple
func (s State) MarshalJSON() ([]byte, error) {
	type state State
	return json.Marshal(struct {
		Phase Phase `json:"phase"`
		state
	}{s.Phase(), state(s)})
}
