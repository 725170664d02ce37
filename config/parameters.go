package config

import "github.com/kpdsim/engine/rng"

// OptimizationScheme selects which enumeration modes a match run solves
// over, per §6.
type OptimizationScheme int

const (
	CyclesAndChains OptimizationScheme = iota
	CyclesAndChainsWithFallbacks
	LocallyRelevantSubsets
)

func parseOptimizationScheme(s string) (OptimizationScheme, error) {
	switch s {
	case "CYCLES_AND_CHAINS":
		return CyclesAndChains, nil
	case "CYCLES_AND_CHAINS_WITH_FALLBACKS":
		return CyclesAndChainsWithFallbacks, nil
	case "LOCALLY_RELEVANT_SUBSETS":
		return LocallyRelevantSubsets, nil
	default:
		return 0, ErrUnknownOptimizationScheme
	}
}

// PlanningModel resolves the spec's "assumed vs actual probability"
// ambiguity (see SPEC_FULL.md REDESIGN FLAGS): PerfectInformation pins the
// AssumedSuccessProbability of every adjacency-true match to 1 once
// record.BuildMatches has run (record.ApplyPlanningModel), matching the
// original's majority call sites; Parameterized uses the configured/loaded
// assumed probability unchanged.
type PlanningModel int

const (
	PerfectInformation PlanningModel = iota
	Parameterized
)

func parsePlanningModel(s string) (PlanningModel, error) {
	switch s {
	case "", "PERFECT_INFORMATION":
		return PerfectInformation, nil
	case "PARAMETERIZED":
		return Parameterized, nil
	default:
		return 0, ErrUnknownPlanningModel
	}
}

func parseUtilityScheme(s string) (int, error) {
	switch s {
	case "TRANSPLANTS":
		return 0, nil
	case "5Y_SURVIVAL":
		return 1, nil
	case "10Y_SURVIVAL":
		return 2, nil
	case "DIFFICULTY":
		return 3, nil
	case "RANDOM":
		return 4, nil
	default:
		return 0, ErrUnknownUtilityScheme
	}
}

// Parameters is the fully-resolved, read-only configuration for one
// simulation run, loaded from the key=value text file described in §6.
type Parameters struct {
	OutputFolder    string
	OutputSubfolder string
	NumIterations   int

	InputFolder               string
	FileKPDData               string
	FileHLAFrequency          string
	FileHLADictionary         string
	FileSurvivalParameters    string
	FileDeceasedDonors        string
	FileWaitingListCandidates string

	OptimizationScheme OptimizationScheme
	UtilityScheme      int
	PlanningModel      PlanningModel

	MaxCycleSize   int
	MaxChainLength int
	MaxLRSSize     int

	TimeSpan                    int
	TimeBetweenMatchRuns        int
	PostSelectionInactivePeriod int
	ProcessingDelay             int

	PairArrivalRate float64
	NDDArrivalRate  float64

	ProbPairAttrition        float64
	ProbNDDAttrition         float64
	ProbPairActiveToInactive float64
	ProbPairInactiveToActive float64

	AllowABBridgeDonors          bool
	AllowDesensitization         bool
	ReserveODonorsForOCandidates bool

	EstimateExpectedUtility bool
	NEUIterations           int

	PRAAdvantageCutoff int
	PRAAdvantageValue  float64

	Seeds rng.Seeds
}

// Defaults returns the documented default Parameters: the size bounds and
// rates a simulation run falls back to for any key the input file omits.
func Defaults() Parameters {
	return Parameters{
		OutputFolder:                 "output",
		OutputSubfolder:              "run",
		NumIterations:                200,
		InputFolder:                  "data",
		FileKPDData:                  "APDData.csv",
		FileHLAFrequency:             "HLAFrequency.csv",
		FileHLADictionary:            "HLADictionary.csv",
		FileSurvivalParameters:       "SurvivalParameters.csv",
		FileDeceasedDonors:           "DeceasedDonors.csv",
		FileWaitingListCandidates:    "CandidateWaitlist.csv",
		OptimizationScheme:           CyclesAndChainsWithFallbacks,
		UtilityScheme:                0,
		PlanningModel:                PerfectInformation,
		MaxCycleSize:                 3,
		MaxChainLength:               3,
		MaxLRSSize:                   6,
		TimeSpan:                     365,
		TimeBetweenMatchRuns:         7,
		PostSelectionInactivePeriod:  30,
		ProcessingDelay:              14,
		PairArrivalRate:              1.0,
		NDDArrivalRate:               0.1,
		ProbPairAttrition:            0.001,
		ProbNDDAttrition:             0.0005,
		ProbPairActiveToInactive:     0.01,
		ProbPairInactiveToActive:     0.05,
		AllowABBridgeDonors:          false,
		AllowDesensitization:         false,
		ReserveODonorsForOCandidates: true,
		EstimateExpectedUtility:      false,
		NEUIterations:                1000,
		PRAAdvantageCutoff:           80,
		PRAAdvantageValue:            0.1,
	}
}
