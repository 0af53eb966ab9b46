package types

import "fmt"

// TurnStatus is the lifecycle state of one user query cycle.
type TurnStatus string

const (
	StatusGatheringContext  TurnStatus = "GATHERING_CONTEXT"
	StatusProposingSolution TurnStatus = "PROPOSING_SOLUTION"
	StatusAwaitingExpert    TurnStatus = "AWAITING_EXPERT"
	StatusTerminated        TurnStatus = "TERMINATED"
)

// Turn is one complete user query/response cycle, including the
// clarification and solution phases. A turn is owned by exactly one
// controller instance; it is not safe for concurrent use.
type Turn struct {
	ID        string     `json:"id"`
	Status    TurnStatus `json:"status"`
	Messages  []Message  `json:"messages"`
	Carryover []string   `json:"carryover,omitempty"`
	// Rounds counts routing rounds executed for this turn.
	Rounds int `json:"rounds"`
}

// NewTurn creates a turn in the initial GATHERING_CONTEXT state.
func NewTurn(id string) *Turn {
	return &Turn{
		ID:     id,
		Status: StatusGatheringContext,
	}
}

// Record appends a message to the turn's history.
func (t *Turn) Record(msg Message) {
	t.Messages = append(t.Messages, msg)
}

// LastMessage returns the most recently recorded message, or false when the
// turn has no messages yet.
func (t *Turn) LastMessage() (Message, bool) {
	if len(t.Messages) == 0 {
		return Message{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}

// HasMessageKind reports whether any recorded message has the given kind.
func (t *Turn) HasMessageKind(kind MessageKind) bool {
	for _, m := range t.Messages {
		if m.Kind == kind {
			return true
		}
	}
	return false
}

// Terminated reports whether the turn has reached its absorbing state.
func (t *Turn) Terminated() bool {
	return t.Status == StatusTerminated
}

// validTransitions encodes the monotonic turn lifecycle. The only backward
// edge is AWAITING_EXPERT -> PROPOSING_SOLUTION on rework; TERMINATED is
// absorbing and reachable from every state.
var validTransitions = map[TurnStatus][]TurnStatus{
	StatusGatheringContext:  {StatusProposingSolution, StatusTerminated},
	StatusProposingSolution: {StatusAwaitingExpert, StatusTerminated},
	StatusAwaitingExpert:    {StatusProposingSolution, StatusTerminated},
	StatusTerminated:        {},
}

// AdvanceTo moves the turn to the given status, rejecting any transition
// the lifecycle does not allow.
func (t *Turn) AdvanceTo(status TurnStatus) error {
	if t.Status == status {
		return nil
	}
	for _, next := range validTransitions[t.Status] {
		if next == status {
			t.Status = status
			return nil
		}
	}
	return NewError(ErrInvalidTransition,
		fmt.Sprintf("turn %s: cannot transition %s -> %s", t.ID, t.Status, status))
}
