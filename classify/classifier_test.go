package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doitintl/flexsolve/types"
)

type scriptedClassifier struct {
	technical bool
	err       error
	calls     int
}

func (s *scriptedClassifier) IsTechnical(ctx context.Context, text string) (bool, error) {
	s.calls++
	return s.technical, s.err
}

func turnWithOpenQuestions() *types.Turn {
	turn := types.NewTurn("t1")
	turn.Record(types.NewUserMessage("My EC2 instances keep failing health checks"))
	turn.Record(types.NewAgentMessage("ec2_researcher", "1. What health check type (ELB/EC2) is configured?"))
	return turn
}

func TestNumberedAnswerTerminates(t *testing.T) {
	c := New(&scriptedClassifier{technical: true}, nil)
	turn := turnWithOpenQuestions()

	// Technical vocabulary is present, but the numbered-answer pattern wins.
	got := c.Classify(context.Background(), "1. ELB 2. us-west-2", turn)
	assert.Equal(t, OutcomeTerminating, got)
}

func TestNumberedAnswerWithoutPendingQuestionsIsNotTerminating(t *testing.T) {
	c := New(&scriptedClassifier{technical: true}, nil)
	turn := types.NewTurn("t1")

	got := c.Classify(context.Background(), "1. ELB 2. us-west-2", turn)
	assert.Equal(t, OutcomeTechnical, got)
}

func TestProceedPhraseTerminates(t *testing.T) {
	c := New(&scriptedClassifier{technical: true}, nil)

	got := c.Classify(context.Background(), "Please proceed with the fix", types.NewTurn("t1"))
	assert.Equal(t, OutcomeTerminating, got)
}

func TestGreetingIsCasual(t *testing.T) {
	external := &scriptedClassifier{technical: true}
	c := New(external, nil)

	got := c.Classify(context.Background(), "Hi!", types.NewTurn("t1"))
	assert.Equal(t, OutcomeCasual, got)
	assert.Zero(t, external.calls, "pure greetings must not consult the external classifier")
}

func TestGreetingWithPendingQuestionsRoutes(t *testing.T) {
	c := New(&scriptedClassifier{technical: true}, nil)

	got := c.Classify(context.Background(), "hello", turnWithOpenQuestions())
	assert.Equal(t, OutcomeTechnical, got)
}

func TestGreetingFollowedByQuestionRoutes(t *testing.T) {
	c := New(&scriptedClassifier{technical: true}, nil)

	got := c.Classify(context.Background(), "hi, my Lambda keeps timing out", types.NewTurn("t1"))
	assert.Equal(t, OutcomeTechnical, got)
}

func TestExternalClassifierDecidesCasual(t *testing.T) {
	c := New(&scriptedClassifier{technical: false}, nil)

	got := c.Classify(context.Background(), "what's the weather like", types.NewTurn("t1"))
	assert.Equal(t, OutcomeCasual, got)
}

func TestClassificationFailureFailsSafeToTechnical(t *testing.T) {
	c := New(&scriptedClassifier{err: errors.New("backend down")}, nil)

	got := c.Classify(context.Background(), "something is broken", types.NewTurn("t1"))
	assert.Equal(t, OutcomeTechnical, got)
}

func TestNilExternalDefaultsToTechnical(t *testing.T) {
	c := New(nil, nil)

	got := c.Classify(context.Background(), "my VPC route tables look wrong", types.NewTurn("t1"))
	assert.Equal(t, OutcomeTechnical, got)
}
