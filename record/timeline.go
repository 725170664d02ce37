package record

import (
	"github.com/kpdsim/engine/config"
	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/rng"
)

// GenerateTimelines populates every node's status timeline once at
// iteration start (§4.6): PAIR nodes sample a daily withdrawal Bernoulli,
// and, absent withdrawal, a daily active/inactive toggle; NDD and BRIDGE
// nodes only sample withdrawal. Each node's timeline runs from its arrival
// day through time_span+post_selection_inactive_period, or stops early at
// the day WITHDRAWN fires.
func GenerateTimelines(pool *core.Pool, handles []core.Handle, params config.Parameters, gen *rng.Generator) {
	horizon := params.TimeSpan + params.PostSelectionInactivePeriod

	for _, h := range handles {
		node := mustNode(pool, h)
		if node.Kind() == core.KindPair {
			node.SetTimeline(pairTimeline(node.ArrivalTime(), horizon, params, gen))
		} else {
			node.SetTimeline(attritionOnlyTimeline(node.ArrivalTime(), horizon, params.ProbNDDAttrition, gen))
		}
	}
}

func mustNode(pool *core.Pool, h core.Handle) *core.Node {
	n, err := pool.Node(h)
	if err != nil {
		panic(err)
	}

	return n
}

func pairTimeline(arrival, horizon int, params config.Parameters, gen *rng.Generator) []core.StatusEvent {
	events := []core.StatusEvent{{Time: arrival, Status: core.StatusActive}}
	status := core.StatusActive

	for t := arrival + 1; t <= horizon; t++ {
		if gen.Bernoulli(params.ProbPairAttrition) {
			events = append(events, core.StatusEvent{Time: t, Status: core.StatusWithdrawn})
			return events
		}

		switch status {
		case core.StatusActive:
			if gen.Bernoulli(params.ProbPairActiveToInactive) {
				status = core.StatusInactive
				events = append(events, core.StatusEvent{Time: t, Status: status})
			}
		case core.StatusInactive:
			if gen.Bernoulli(params.ProbPairInactiveToActive) {
				status = core.StatusActive
				events = append(events, core.StatusEvent{Time: t, Status: status})
			}
		}
	}

	return events
}

func attritionOnlyTimeline(arrival, horizon int, probAttrition float64, gen *rng.Generator) []core.StatusEvent {
	events := []core.StatusEvent{{Time: arrival, Status: core.StatusActive}}

	for t := arrival + 1; t <= horizon; t++ {
		if gen.Bernoulli(probAttrition) {
			events = append(events, core.StatusEvent{Time: t, Status: core.StatusWithdrawn})
			return events
		}
	}

	return events
}
