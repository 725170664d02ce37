package arrangement

import (
	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/matchrun"
)

// Arrangement is a selected cycle/chain/LRS snapshotted at selection time
// and carried forward to its transplant time.
type Arrangement struct {
	Handles        []core.Handle
	Kind           matchrun.Kind
	Utility        float64
	IterationIndex int
	MatchRunIndex  int
	MatchRunTime   int
	Delay          int
	TransplantTime int
}

// Enqueue records the arrangement's transplant time as current_time plus
// the configured processing delay, per §4.5's enqueue step.
func Enqueue(a matchrun.Arrangement, utility float64, iteration, matchRunIndex, matchRunTime, delay int) Arrangement {
	return Arrangement{
		Handles:        append([]core.Handle(nil), a.Handles...),
		Kind:           a.Kind,
		Utility:        utility,
		IterationIndex: iteration,
		MatchRunIndex:  matchRunIndex,
		MatchRunTime:   matchRunTime,
		Delay:          delay,
		TransplantTime: matchRunTime + delay,
	}
}

// TransplantRecord describes one realized donor->candidate assignment, the
// unit of the Transplants output table (§6).
type TransplantRecord struct {
	DonorNode     core.Handle
	DonorIndex    int
	CandidateNode core.Handle
	Kind          matchrun.Kind
}
