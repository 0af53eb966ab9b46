package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doitintl/flexsolve/types"
)

func sampleResult() *types.AggregatedResult {
	return &types.AggregatedResult{
		Groups: []types.Group{
			{Topic: types.DomainEC2, Items: []types.Item{
				{Topic: types.DomainEC2, Text: "Which instance type?"},
			}},
			{Topic: types.DomainVPC, Items: []types.Item{
				{Topic: types.DomainVPC, Text: "Is the subnet public?"},
				{Topic: types.DomainVPC, Text: "Which route table applies?"},
			}},
		},
	}
}

func TestRenderQuestionsNumbersAcrossGroups(t *testing.T) {
	r := &Response{Kind: ResponseQuestions, Result: sampleResult()}
	out := r.Render()

	assert.Contains(t, out, "please answer")
	assert.Contains(t, out, "[EC2]")
	assert.Contains(t, out, "[VPC]")
	assert.Contains(t, out, "1. Which instance type?")
	assert.Contains(t, out, "3. Which route table applies?")
}

func TestRenderSolutionsFlagsUnreviewed(t *testing.T) {
	r := &Response{Kind: ResponseSolutions, Result: sampleResult(), Unreviewed: true}
	out := r.Render()

	assert.Contains(t, out, "Proposed solution")
	assert.Contains(t, out, "not approved by a human expert")
}

func TestRenderReviewedSolutionCarriesNoCaveat(t *testing.T) {
	r := &Response{Kind: ResponseSolutions, Result: sampleResult()}
	assert.NotContains(t, r.Render(), "not approved")
}

func TestRenderNoticePassesTextThrough(t *testing.T) {
	r := &Response{Kind: ResponseNotice, Notice: "see you next time"}
	assert.Equal(t, "see you next time", r.Render())
}

func TestRenderSkipsEmptyGroups(t *testing.T) {
	r := &Response{Kind: ResponseQuestions, Result: &types.AggregatedResult{
		Groups: []types.Group{{Topic: types.DomainS3}},
	}}
	assert.NotContains(t, r.Render(), "[S3]")
}
