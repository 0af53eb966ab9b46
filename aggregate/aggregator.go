// Package aggregate merges routed agents' contributions into one
// deduplicated, grouped result.
//
// Aggregation is deterministic and pure: the same contribution sequence
// always yields the same result, and output items are always a subset of
// input items — the aggregator never synthesizes text.
package aggregate

import (
	"strings"

	"github.com/doitintl/flexsolve/route"
	"github.com/doitintl/flexsolve/types"
)

// Aggregate merges contributions for one routing round.
//
// Items are grouped by declared topic in first-seen order and deduplicated
// within a group by normalized semantic key. On duplicate, the version from
// the agent whose domain matches the topic wins; at equal specificity the
// first contributor wins. For the solutions phase, conflicting proposals
// addressing the same inferred need collapse to the single most relevant
// one. Empty contributions drop out entirely rather than rendering as empty
// groups.
func Aggregate(contributions []types.Contribution, phase types.Phase) types.AggregatedResult {
	var result types.AggregatedResult
	groupIndex := make(map[types.Domain]int)
	// keyIndex[topic][key] is the position of the winning item in its group.
	keyIndex := make(map[types.Domain]map[string]int)

	for _, c := range contributions {
		items := usableItems(c)
		if len(items) == 0 {
			continue
		}
		result.Sources = append(result.Sources, c)
		for _, item := range items {
			gi, ok := groupIndex[item.Topic]
			if !ok {
				gi = len(result.Groups)
				groupIndex[item.Topic] = gi
				keyIndex[item.Topic] = make(map[string]int)
				result.Groups = append(result.Groups, types.Group{Topic: item.Topic})
			}
			group := &result.Groups[gi]

			key := normalizeKey(item.Text)
			if pos, dup := keyIndex[item.Topic][key]; dup {
				// Keep the more domain-specific version in the original
				// position; first contributor wins ties.
				if specificity(item) > specificity(group.Items[pos]) {
					group.Items[pos] = item
				}
				continue
			}
			keyIndex[item.Topic][key] = len(group.Items)
			group.Items = append(group.Items, item)
		}
	}

	if phase == types.PhaseSolutions {
		for i := range result.Groups {
			result.Groups[i].Items = resolveConflicts(result.Groups[i].Items)
		}
	}
	return result
}

// usableItems filters a contribution down to items carrying actual text.
// A contribution left with nothing is treated exactly like an empty one: it
// neither forms groups nor appears as a source.
func usableItems(c types.Contribution) []types.Item {
	var items []types.Item
	for _, item := range c.Items {
		if strings.TrimSpace(item.Text) != "" {
			items = append(items, item)
		}
	}
	return items
}

// normalizeKey builds the semantic dedup key: case-insensitive,
// whitespace-collapsed, ignoring trailing punctuation.
func normalizeKey(text string) string {
	collapsed := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	return strings.TrimRight(collapsed, ".?! ")
}

// specificity ranks an item by how specifically its contributor's domain
// matches the declared topic.
func specificity(item types.Item) int {
	if item.AgentDomain == item.Topic {
		return 1
	}
	return 0
}

// resolveConflicts collapses competing proposals for the same inferred need
// to the most relevant one: the proposal whose contributor domain matches
// the need's primary service, or failing that the earliest contributor.
// Proposals naming no recognizable service never conflict.
func resolveConflicts(items []types.Item) []types.Item {
	type claim struct {
		pos      int
		relevant bool
	}
	winners := make(map[types.Domain]claim)
	drop := make(map[int]bool)

	for i, item := range items {
		need, ok := route.PrimaryDomain(item.Text)
		if !ok {
			continue
		}
		relevant := item.AgentDomain == need
		prev, seen := winners[need]
		if !seen {
			winners[need] = claim{pos: i, relevant: relevant}
			continue
		}
		if relevant && !prev.relevant {
			drop[prev.pos] = true
			winners[need] = claim{pos: i, relevant: relevant}
		} else {
			drop[i] = true
		}
	}

	if len(drop) == 0 {
		return items
	}
	kept := items[:0]
	for i, item := range items {
		if !drop[i] {
			kept = append(kept, item)
		}
	}
	return kept
}
