package core

// Handle is a stable, non-owning reference to a Node within a Pool — an
// index, not a pointer, so Simulation/MatchRun can hold cheap, comparable
// references the way the teacher's graph algorithms hold string vertex IDs.
type Handle int

// InvalidHandle is the zero-value sentinel for "no node".
const InvalidHandle Handle = -1

// EdgeKey uniquely identifies a potential donor->candidate transplant for
// one iteration: a donor node, the index of the specific donor within that
// node, and a candidate node. Match objects are created at most once per
// EdgeKey per iteration (§3 invariant).
type EdgeKey struct {
	DonorNode     Handle
	DonorIndex    int
	CandidateNode Handle
}

// Match is a directed potential-transplant edge from (DonorNode, DonorIndex)
// to CandidateNode, carrying both the planning-time (virtual, assumed) and
// ground-truth (actual, lab) compatibility information described in §3.
type Match struct {
	Key EdgeKey

	// Adjacency is whether the virtual crossmatch permits a transplant
	// under the configured policy (§4.1 allowable_match).
	Adjacency bool

	VirtualCrossmatch CrossmatchCode

	// Utility scores. record.BuildMatches fills all four for every
	// adjacency-true match when the pool is built.
	FiveYearSurvival  float64
	TenYearSurvival   float64
	DifficultyScore   float64
	RandomUniform     float64

	// AssumedSuccessProbability feeds planning-time EU computation; it may
	// be held at 1 under the PerfectInformation planning model (§4.3
	// EXPANSION) or read from data under Parameterized.
	AssumedSuccessProbability float64

	// ActualSuccessProbability is the ground truth used to draw LabResult
	// at transplant time; it is never visible to planning logic before
	// reveal.
	ActualSuccessProbability float64

	// LabRevealed/LabResult hold the lab-crossmatch outcome; LabRevealed is
	// false until Arrangement lifecycle step 1 reveals it.
	LabRevealed bool
	LabResult   bool
}

// NewMatch constructs a placeholder or live Match for the given edge. When
// adjacency is false the caller should still record the crossmatch reason
// (vc) so downstream reporting can explain why the edge is absent, per the
// "placeholder with the recorded virtual-crossmatch reason" invariant.
func NewMatch(key EdgeKey, adjacency bool, vc CrossmatchCode) *Match {
	return &Match{
		Key:               key,
		Adjacency:         adjacency,
		VirtualCrossmatch: vc,
	}
}

// RevealLab sets the lab-crossmatch result from the actual success
// probability draw, and, on success, collapses AssumedSuccessProbability to
// 1 per §4.5 step 1.
func (m *Match) RevealLab(success bool) {
	m.LabRevealed = true
	m.LabResult = success
	if success {
		m.AssumedSuccessProbability = 1
	} else {
		m.Adjacency = false
		m.VirtualCrossmatch = CrossmatchFailedLab
	}
}

// SchemeValue returns this match's scalar utility contribution under the
// given scheme selector (0=transplants,1=5y,2=10y,3=difficulty,4=random);
// package matchrun owns the UtilityScheme type and calls into this via the
// small integer so core need not import matchrun.
func (m *Match) SchemeValue(scheme int, candidateIsPair bool) float64 {
	if !m.Adjacency {
		return 0
	}
	switch scheme {
	case 0: // transplants
		if candidateIsPair {
			return 1
		}
		return 0
	case 1:
		return m.FiveYearSurvival
	case 2:
		return m.TenYearSurvival
	case 3:
		return m.DifficultyScore
	case 4:
		return m.RandomUniform
	default:
		return 0
	}
}
