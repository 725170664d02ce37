package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kpdsim/engine/rng"
)

// Load parses a key=value text configuration, starting from Defaults() and
// overriding whichever keys the input specifies. Blank lines and lines
// starting with "#" are ignored. A malformed non-blank line is a
// Configuration error (§7): Load fails fast rather than skipping it, since
// this is configuration, not a data row.
func Load(r io.Reader) (Parameters, error) {
	p := Defaults()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, err := splitKeyValue(line)
		if err != nil {
			return Parameters{}, fmt.Errorf("config: Load: line %d: %w", lineNo, err)
		}

		if err := p.apply(key, value); err != nil {
			return Parameters{}, fmt.Errorf("config: Load: line %d (%s): %w", lineNo, key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return Parameters{}, fmt.Errorf("config: Load: %w", err)
	}

	return p, nil
}

func splitKeyValue(line string) (string, string, error) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return "", "", ErrMalformedLine
	}

	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), nil
}

// apply assigns one recognized key. Unrecognized keys are ignored rather
// than rejected, so a configuration file may carry forward keys a future
// revision of this engine doesn't yet consume — matching the spec's
// "selected, non-exhaustive as to defaults" framing of the key list.
func (p *Parameters) apply(key, value string) error {
	switch key {
	case "output_folder":
		p.OutputFolder = value
	case "output_subfolder":
		p.OutputSubfolder = value
	case "number_of_iterations":
		return assignInt(&p.NumIterations, value)
	case "input_folder":
		p.InputFolder = value
	case "file_kpd_data":
		p.FileKPDData = value
	case "file_hla_frequency":
		p.FileHLAFrequency = value
	case "file_hla_dictionary":
		p.FileHLADictionary = value
	case "file_survival_parameters":
		p.FileSurvivalParameters = value
	case "file_deceased_donors":
		p.FileDeceasedDonors = value
	case "file_waiting_list_candidates":
		p.FileWaitingListCandidates = value
	case "optimization_scheme":
		scheme, err := parseOptimizationScheme(value)
		if err != nil {
			return err
		}
		p.OptimizationScheme = scheme
	case "utility_scheme":
		scheme, err := parseUtilityScheme(value)
		if err != nil {
			return err
		}
		p.UtilityScheme = scheme
	case "planning_model":
		model, err := parsePlanningModel(value)
		if err != nil {
			return err
		}
		p.PlanningModel = model
	case "max_cycle_size":
		return assignInt(&p.MaxCycleSize, value)
	case "max_chain_length":
		return assignInt(&p.MaxChainLength, value)
	case "max_LRS_size":
		return assignInt(&p.MaxLRSSize, value)
	case "time_span":
		return assignInt(&p.TimeSpan, value)
	case "time_between_match_runs":
		return assignInt(&p.TimeBetweenMatchRuns, value)
	case "post_selection_inactive_period":
		return assignInt(&p.PostSelectionInactivePeriod, value)
	case "processing_delay":
		return assignInt(&p.ProcessingDelay, value)
	case "pair_arrival_rate":
		return assignFloat(&p.PairArrivalRate, value)
	case "ndd_arrival_rate":
		return assignFloat(&p.NDDArrivalRate, value)
	case "prob_pair_attrition":
		return assignFloat(&p.ProbPairAttrition, value)
	case "prob_ndd_attrition":
		return assignFloat(&p.ProbNDDAttrition, value)
	case "prob_pair_active_to_inactive":
		return assignFloat(&p.ProbPairActiveToInactive, value)
	case "prob_pair_inactive_to_active":
		return assignFloat(&p.ProbPairInactiveToActive, value)
	case "allow_AB_bridge_donors":
		return assignBool(&p.AllowABBridgeDonors, value)
	case "allow_desensitization":
		return assignBool(&p.AllowDesensitization, value)
	case "reserve_O_donors_for_O_candidates":
		return assignBool(&p.ReserveODonorsForOCandidates, value)
	case "estimate_expected_utility":
		return assignBool(&p.EstimateExpectedUtility, value)
	case "n_EU_iterations":
		return assignInt(&p.NEUIterations, value)
	case "PRA_advantage_cutoff":
		return assignInt(&p.PRAAdvantageCutoff, value)
	case "PRA_advantage_value":
		return assignFloat(&p.PRAAdvantageValue, value)
	case "seed_selection":
		return assignSeed(&p.Seeds, rng.PurposeSelection, value)
	case "seed_attrition":
		return assignSeed(&p.Seeds, rng.PurposeAttrition, value)
	case "seed_arrival":
		return assignSeed(&p.Seeds, rng.PurposeArrival, value)
	case "seed_match":
		return assignSeed(&p.Seeds, rng.PurposeMatch, value)
	case "seed_donor":
		return assignSeed(&p.Seeds, rng.PurposeDonor, value)
	case "seed_status":
		return assignSeed(&p.Seeds, rng.PurposeStatus, value)
	case "seed_expected_utility":
		return assignSeed(&p.Seeds, rng.PurposeExpectedUtility, value)
	}

	return nil
}

func assignInt(dst *int, value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	*dst = v

	return nil
}

func assignFloat(dst *float64, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	*dst = v

	return nil
}

func assignBool(dst *bool, value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	*dst = v

	return nil
}

func assignSeed(seeds *rng.Seeds, purpose rng.Purpose, value string) error {
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	seeds.Set(purpose, v)

	return nil
}
