package datasource

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/kpdsim/engine/core"
)

// AntigenFrequencyRow is one row of the HLA frequency table: a donor HLA
// profile (up to eight major antigens, per original_source/DDSim/KPD-Data.h's
// "Columns 1-8: Major HLA antigens; Column 9: Frequency") and its relative
// frequency among the donor population.
type AntigenFrequencyRow struct {
	Antigens  []string
	Frequency float64
}

// LoadHLAFrequency reads the HLA frequency table: columns "antigens"
// (";"-separated) and "frequency".
func LoadHLAFrequency(r io.Reader) ([]AntigenFrequencyRow, error) {
	h, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}

	out := make([]AntigenFrequencyRow, 0, len(rows))
	for i, rec := range rows {
		antigens, err := h.column(rec, "antigens")
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadHLAFrequency: row %d: %w", i, err)
		}
		freqStr, err := h.column(rec, "frequency")
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadHLAFrequency: row %d: %w", i, err)
		}
		freq, _, err := parseOptFloat(freqStr)
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadHLAFrequency: row %d: %w", i, err)
		}

		out = append(out, AntigenFrequencyRow{Antigens: splitList(antigens), Frequency: freq})
	}

	return out, nil
}

// LoadHLAEquivalence reads the HLA equivalence table: columns "antigen" and
// "equivalents" (";"-separated), producing the dictionary crossmatch.Virtual
// consumes to expand a reported antigen into its equivalence class.
func LoadHLAEquivalence(r io.Reader) (map[string][]string, error) {
	h, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}

	dict := make(map[string][]string, len(rows))
	for i, rec := range rows {
		antigen, err := h.column(rec, "antigen")
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadHLAEquivalence: row %d: %w", i, err)
		}
		equivalents, err := h.column(rec, "equivalents")
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadHLAEquivalence: row %d: %w", i, err)
		}
		dict[antigen] = splitList(equivalents)
	}

	return dict, nil
}

// SurvivalParameterRow holds the five- and ten-year survival coefficients
// for one named characteristic, per KPDData::formSurvivalParameters.
type SurvivalParameterRow struct {
	Characteristic string
	FiveYear       float64
	TenYear        float64
}

// LoadSurvivalParameters reads the survival parameter table: columns
// "characteristic", "five_year", "ten_year".
func LoadSurvivalParameters(r io.Reader) (map[string]SurvivalParameterRow, error) {
	h, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}

	out := make(map[string]SurvivalParameterRow, len(rows))
	for i, rec := range rows {
		characteristic, err := h.column(rec, "characteristic")
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadSurvivalParameters: row %d: %w", i, err)
		}
		fiveStr, err := h.column(rec, "five_year")
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadSurvivalParameters: row %d: %w", i, err)
		}
		tenStr, err := h.column(rec, "ten_year")
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadSurvivalParameters: row %d: %w", i, err)
		}
		five, _, err := parseOptFloat(fiveStr)
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadSurvivalParameters: row %d: %w", i, err)
		}
		ten, _, err := parseOptFloat(tenStr)
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadSurvivalParameters: row %d: %w", i, err)
		}

		out[characteristic] = SurvivalParameterRow{Characteristic: characteristic, FiveYear: five, TenYear: ten}
	}

	return out, nil
}

// KPDRow is one row of the KPD pairs/NDDs table: a matching group
// (matchingID groups a candidate with its one or more donors), flagged as
// either a non-directed donor row or a candidate/donor pair row, per
// original_source/DDSim/KPD-Data.h::formKPDPopulation's column layout.
type KPDRow struct {
	MatchingID int
	IsNDD      bool

	CandidateID                string
	CandidateBloodType         core.BloodType
	CandidatePRA               int
	CandidateUnacceptableHLA   []string
	CandidateDesensitizableHLA []string
	CandidateAge               int
	CandidateMale              bool

	DonorID         string
	DonorBloodType  core.BloodType
	DonorHLA        []string
	DonorRelation   core.Relation
	DonorAge        int
	DonorMale       bool
	DonorHeightCM   float64
	DonorWeightKG   float64
}

// LoadKPDPairs reads the KPD pairs/NDDs table.
func LoadKPDPairs(r io.Reader) ([]KPDRow, error) {
	h, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}

	out := make([]KPDRow, 0, len(rows))
	for i, rec := range rows {
		row, err := parseKPDRow(h, rec)
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadKPDPairs: row %d: %w", i, err)
		}
		out = append(out, row)
	}

	return out, nil
}

func parseKPDRow(h header, rec []string) (KPDRow, error) {
	get := func(name string) (string, error) { return h.column(rec, name) }

	matchingIDStr, err := get("matching_id")
	if err != nil {
		return KPDRow{}, err
	}
	matchingID, _, err := parseOptInt(matchingIDStr)
	if err != nil {
		return KPDRow{}, err
	}

	nddStr, err := get("ndd")
	if err != nil {
		return KPDRow{}, err
	}

	candidateID, _ := get("candidate_id")
	candidateBT, _ := get("candidate_blood_type")
	candidatePRAStr, _ := get("candidate_pra")
	candidatePRA, _, _ := parseOptInt(candidatePRAStr)
	candidateUnacceptable, _ := get("candidate_unacceptable_hla")
	candidateDesensitizable, _ := get("candidate_desensitizable_hla")
	candidateAgeStr, _ := get("candidate_age")
	candidateAge, _, _ := parseOptInt(candidateAgeStr)
	candidateSex, _ := get("candidate_sex")

	donorID, err := get("donor_id")
	if err != nil {
		return KPDRow{}, err
	}
	donorBT, err := get("donor_blood_type")
	if err != nil {
		return KPDRow{}, err
	}
	donorHLA, err := get("donor_hla")
	if err != nil {
		return KPDRow{}, err
	}
	donorRelation, _ := get("donor_relation")
	donorAgeStr, _ := get("donor_age")
	donorAge, _, _ := parseOptInt(donorAgeStr)
	donorSex, _ := get("donor_sex")
	donorHeightStr, _ := get("donor_height_cm")
	donorHeight, _, _ := parseOptFloat(donorHeightStr)
	donorWeightStr, _ := get("donor_weight_kg")
	donorWeight, _, _ := parseOptFloat(donorWeightStr)

	return KPDRow{
		MatchingID:                 matchingID,
		IsNDD:                      parseBool(nddStr),
		CandidateID:                candidateID,
		CandidateBloodType:         core.ParseBloodType(candidateBT),
		CandidatePRA:               candidatePRA,
		CandidateUnacceptableHLA:   splitList(candidateUnacceptable),
		CandidateDesensitizableHLA: splitList(candidateDesensitizable),
		CandidateAge:               candidateAge,
		CandidateMale:              parseSex(candidateSex),
		DonorID:                    donorID,
		DonorBloodType:             core.ParseBloodType(donorBT),
		DonorHLA:                   splitList(donorHLA),
		DonorRelation:              parseRelation(donorRelation),
		DonorAge:                   donorAge,
		DonorMale:                  parseSex(donorSex),
		DonorHeightCM:              donorHeight,
		DonorWeightKG:              donorWeight,
	}, nil
}

func parseRelation(s string) core.Relation {
	switch s {
	case "NON_DIRECTED":
		return core.RelationNonDirected
	case "PARENT":
		return core.RelationParent
	case "CHILD":
		return core.RelationChild
	case "TWIN":
		return core.RelationTwin
	case "SIBLING":
		return core.RelationSibling
	case "HALF_SIBLING":
		return core.RelationHalfSibling
	case "RELATIVE":
		return core.RelationRelative
	case "SPOUSE":
		return core.RelationSpouse
	case "PARTNER":
		return core.RelationPartner
	case "PAIRED_DONATION":
		return core.RelationPairedDonation
	case "LIVING_DECEASED":
		return core.RelationLivingDeceased
	case "OTHER_UNRELATED":
		return core.RelationOtherUnrelated
	default:
		return core.RelationUnspecified
	}
}

// DeceasedDonorRow is one row of the deceased donors table.
type DeceasedDonorRow struct {
	ID           string
	BloodType    core.BloodType
	HLA          []string
	Age          int
	RecoveryTime int
}

// LoadDeceasedDonors reads the deceased donors table.
func LoadDeceasedDonors(r io.Reader) ([]DeceasedDonorRow, error) {
	h, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}

	out := make([]DeceasedDonorRow, 0, len(rows))
	for i, rec := range rows {
		id, err := h.column(rec, "id")
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadDeceasedDonors: row %d: %w", i, err)
		}
		btStr, _ := h.column(rec, "blood_type")
		hlaStr, _ := h.column(rec, "hla")
		ageStr, _ := h.column(rec, "age")
		age, _, _ := parseOptInt(ageStr)
		recoveryStr, err := h.column(rec, "recovery_time")
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadDeceasedDonors: row %d: %w", i, err)
		}
		recovery, _, err := parseOptInt(recoveryStr)
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadDeceasedDonors: row %d: %w", i, err)
		}

		out = append(out, DeceasedDonorRow{
			ID:           id,
			BloodType:    core.ParseBloodType(btStr),
			HLA:          splitList(hlaStr),
			Age:          age,
			RecoveryTime: recovery,
		})
	}

	return out, nil
}

// WaitlistCandidateRow is one row of the deceased-donor waitlist table.
type WaitlistCandidateRow struct {
	ID              string
	BloodType       core.BloodType
	PRA             int
	UnacceptableHLA []string
	ListingTime     int
	RemovalTime     int
	CenterID        string
	OPOID           string
	EPTS            float64
}

// LoadWaitlistCandidates reads the waitlist candidates table.
func LoadWaitlistCandidates(r io.Reader) ([]WaitlistCandidateRow, error) {
	h, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}

	out := make([]WaitlistCandidateRow, 0, len(rows))
	for i, rec := range rows {
		id, err := h.column(rec, "id")
		if err != nil {
			return nil, fmt.Errorf("datasource: LoadWaitlistCandidates: row %d: %w", i, err)
		}
		btStr, _ := h.column(rec, "blood_type")
		praStr, _ := h.column(rec, "pra")
		pra, _, _ := parseOptInt(praStr)
		unacceptable, _ := h.column(rec, "unacceptable_hla")
		listingStr, _ := h.column(rec, "listing_time")
		listing, _, _ := parseOptInt(listingStr)
		removalStr, _ := h.column(rec, "removal_time")
		removal, _, _ := parseOptInt(removalStr)
		center, _ := h.column(rec, "center_id")
		opo, _ := h.column(rec, "opo_id")
		eptsStr, _ := h.column(rec, "epts")
		epts, _, _ := parseOptFloat(eptsStr)

		out = append(out, WaitlistCandidateRow{
			ID:              id,
			BloodType:       core.ParseBloodType(btStr),
			PRA:             pra,
			UnacceptableHLA: splitList(unacceptable),
			ListingTime:     listing,
			RemovalTime:     removal,
			CenterID:        center,
			OPOID:           opo,
			EPTS:            epts,
		})
	}

	return out, nil
}

// readTable parses a CSV reader into a header plus the remaining data rows.
func readTable(r io.Reader) (header, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("datasource: readTable: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, ErrEmptyHeader
	}

	return newHeader(records[0]), records[1:], nil
}
