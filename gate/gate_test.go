package gate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doitintl/flexsolve/types"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		decision types.Decision
		feedback string
	}{
		{"plain approval", "APPROVE", types.DecisionApprove, ""},
		{"lowercase approval", "approve", types.DecisionApprove, ""},
		{"qualified approval is still lexical approval", "I guess I APPROVE, reluctantly", types.DecisionApprove, ""},
		{"rework with feedback", "REWORK: missing cost breakdown", types.DecisionRework, "missing cost breakdown"},
		{"rework prefix case-insensitive", "rework: tighten the IAM policy", types.DecisionRework, "tighten the IAM policy"},
		{"structured rework beats embedded approval keyword", "REWORK: I cannot approve this yet", types.DecisionRework, "I cannot approve this yet"},
		{"malformed verdict is conservative rework", "looks fine to me", types.DecisionRework, ""},
		{"empty verdict", "", types.DecisionRework, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseVerdict(tt.text)
			assert.Equal(t, tt.decision, v.Decision)
			assert.Equal(t, tt.feedback, v.Feedback)
		})
	}
}

type scriptedExpert struct {
	verdicts []string
	err      error
	delay    time.Duration
	seen     []types.AggregatedResult
}

func (s *scriptedExpert) Review(ctx context.Context, result types.AggregatedResult) (string, error) {
	s.seen = append(s.seen, result)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.err != nil {
		return "", s.err
	}
	text := s.verdicts[0]
	if len(s.verdicts) > 1 {
		s.verdicts = s.verdicts[1:]
	}
	return text, nil
}

func sampleResult() types.AggregatedResult {
	return types.AggregatedResult{
		Groups: []types.Group{{Topic: types.DomainEC2, Items: []types.Item{
			{Topic: types.DomainEC2, Kind: types.ItemSolutionStep, Text: "Adjust the health check grace period", AgentID: "ec2_specialist", AgentDomain: types.DomainEC2},
		}}},
	}
}

func TestSubmitForReviewApproval(t *testing.T) {
	expert := &scriptedExpert{verdicts: []string{"APPROVE"}}
	g := New(expert, DefaultConfig(), nil, nil)

	verdict, err := g.SubmitForReview(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, types.DecisionApprove, verdict.Decision)
	require.Len(t, expert.seen, 1)
	assert.Equal(t, sampleResult(), expert.seen[0], "the gate must pass the result through unmodified")
}

func TestSubmitForReviewRework(t *testing.T) {
	expert := &scriptedExpert{verdicts: []string{"REWORK: missing cost breakdown"}}
	g := New(expert, DefaultConfig(), nil, nil)

	verdict, err := g.SubmitForReview(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, types.DecisionRework, verdict.Decision)
	assert.Equal(t, "missing cost breakdown", verdict.Feedback)
}

func TestSubmitForReviewStalled(t *testing.T) {
	expert := &scriptedExpert{verdicts: []string{"APPROVE"}, delay: time.Second}
	g := New(expert, Config{MaxRework: 3, ReviewTimeout: 10 * time.Millisecond}, nil, nil)

	_, err := g.SubmitForReview(context.Background(), sampleResult())
	require.Error(t, err)
	assert.Equal(t, types.ErrReviewStalled, types.GetErrorCode(err),
		"a stalled review is neither approval nor rework")
}

func TestMaxReworkDefault(t *testing.T) {
	g := New(&scriptedExpert{verdicts: []string{"APPROVE"}}, Config{}, nil, nil)
	assert.Equal(t, 3, g.MaxRework())
}
