package types

// ItemKind distinguishes clarification questions from solution steps.
type ItemKind string

const (
	ItemQuestion     ItemKind = "question"
	ItemSolutionStep ItemKind = "solution_step"
)

// Item is one question or solution step contributed by an agent.
// Topic is the item's declared topic, which defaults to the contributing
// agent's domain.
type Item struct {
	Topic       Domain   `json:"topic"`
	Kind        ItemKind `json:"kind"`
	Text        string   `json:"text"`
	AgentID     AgentID  `json:"agent_id"`
	AgentDomain Domain   `json:"agent_domain"`
}

// Contribution is one agent's reply to a routed request. An agent outside
// its domain legitimately returns an empty Contribution.
type Contribution struct {
	AgentID AgentID `json:"agent_id"`
	Items   []Item  `json:"items,omitempty"`
	Raw     string  `json:"raw,omitempty"`
}

// Empty reports whether the contribution carries no items.
func (c Contribution) Empty() bool {
	return len(c.Items) == 0
}

// Group is an ordered run of items sharing a topic.
type Group struct {
	Topic Domain `json:"topic"`
	Items []Item `json:"items"`
}

// AggregatedResult is the deduplicated, grouped merge of multiple
// contributions. It is built fresh per routing round and never mutated
// after construction; a rework cycle produces a new result.
type AggregatedResult struct {
	Groups  []Group        `json:"groups"`
	Sources []Contribution `json:"sources"`
}

// Empty reports whether the result contains no items at all.
func (r AggregatedResult) Empty() bool {
	for _, g := range r.Groups {
		if len(g.Items) > 0 {
			return false
		}
	}
	return true
}

// ItemCount returns the total number of items across groups.
func (r AggregatedResult) ItemCount() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Items)
	}
	return n
}
