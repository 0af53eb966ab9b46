package types

// Decision is the outcome of a human-expert review.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionRework  Decision = "rework"
)

// ExpertVerdict is the parsed outcome of one expert review.
type ExpertVerdict struct {
	Decision Decision `json:"decision"`
	Feedback string   `json:"feedback,omitempty"`
}
