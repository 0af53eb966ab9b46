package gather

import (
	"context"
	"regexp"
	"strings"

	"github.com/doitintl/flexsolve/types"
)

// terminateMarker is the protocol marker agents append to end their reply.
// A reply consisting only of the marker means "no relevant input".
const terminateMarker = "TERMINATE"

var listItem = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*])\s+(.+)$`)

// ParseContribution builds a structured contribution from an agent's raw
// text reply. Numbered or bulleted lines become items; the TERMINATE marker
// is stripped; every item is tagged with the agent's domain as its topic.
func ParseContribution(profile types.AgentProfile, raw string, phase types.Phase) types.Contribution {
	contribution := types.Contribution{AgentID: profile.ID, Raw: raw}

	kind := types.ItemQuestion
	if phase == types.PhaseSolutions {
		kind = types.ItemSolutionStep
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == terminateMarker {
			continue
		}
		m := listItem.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[1]), terminateMarker))
		if text == "" {
			continue
		}
		contribution.Items = append(contribution.Items, types.Item{
			Topic:       profile.Domain,
			Kind:        kind,
			Text:        text,
			AgentID:     profile.ID,
			AgentDomain: profile.Domain,
		})
	}
	return contribution
}

// TextFunc adapts a raw-text collaborator into a DomainAgent. The phase is
// inferred from the profile role, matching how researchers produce questions
// and specialists produce solution steps.
type TextFunc func(ctx context.Context, profile types.AgentProfile, request string) (string, error)

// Invoke implements DomainAgent.
func (f TextFunc) Invoke(ctx context.Context, profile types.AgentProfile, request string) (types.Contribution, error) {
	raw, err := f(ctx, profile, request)
	if err != nil {
		return types.Contribution{}, err
	}
	phase := types.PhaseQuestions
	if profile.Role == types.RoleSpecialist {
		phase = types.PhaseSolutions
	}
	return ParseContribution(profile, raw, phase), nil
}
