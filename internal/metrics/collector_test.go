package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("flexsolve", reg, nil)

	c.TurnTerminated("approved")
	c.TurnTerminated("approved")
	c.RoundStarted("questions")
	c.ReworkCycle()
	c.ContributionCollected("ec2_specialist", 120*time.Millisecond)
	c.ContributionFailed("vpc_specialist", "timeout")
	c.ReviewFinished(2 * time.Second)

	assert.Equal(t, float64(2),
		testutil.ToFloat64(c.turnsTotal.WithLabelValues("approved")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(c.routingRounds.WithLabelValues("questions")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.reworkCycles))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(c.contributionFailures.WithLabelValues("vpc_specialist", "timeout")))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.TurnTerminated("aborted")
	c.RoundStarted("solutions")
	c.ReworkCycle()
	c.ContributionCollected("x", time.Second)
	c.ContributionFailed("x", "error")
	c.ReviewFinished(time.Second)
}
