package record

import (
	"fmt"
	"sort"

	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/datasource"
)

// Population bundles the exchange-graph Pool built from the KPD pairs/NDDs
// table with the deceased-donor and waitlist tables, kept alongside it
// rather than folded into the Pool's graph: a waitlist candidate has no
// paired donor of its own (core.Node has no "candidate only" variant) and a
// deceased donor's offer is resolved against the waitlist directly, outside
// the donor-exchange adjacency model §3 describes. This mirrors
// original_source's own separation between kpdData and the waitlist/
// deceased-donor tables it loads alongside it, rather than merging them.
type Population struct {
	Pool     *core.Pool
	Deceased []datasource.DeceasedDonorRow
	Waitlist []datasource.WaitlistCandidateRow
}

// BuildPool synthesizes a Pool from the KPD pairs/NDDs table: rows sharing a
// matching_id form one matching group, either a set of non-directed-donor
// nodes (IsNDD) or a single candidate paired with one or more donors.
func BuildPool(rows []datasource.KPDRow, arrivalTime int) (*core.Pool, error) {
	groups, order := groupByMatchingID(rows)

	pool := core.NewPool()
	for _, id := range order {
		grp := groups[id]
		if len(grp) == 0 {
			return nil, fmt.Errorf("record: BuildPool: matching_id=%d: %w", id, ErrEmptyMatchingGroup)
		}

		if grp[0].IsNDD {
			if err := addNDDNodes(pool, id, grp, arrivalTime); err != nil {
				return nil, err
			}
			continue
		}

		if err := addPairNode(pool, id, grp, arrivalTime); err != nil {
			return nil, err
		}
	}

	return pool, nil
}

func groupByMatchingID(rows []datasource.KPDRow) (map[int][]datasource.KPDRow, []int) {
	groups := make(map[int][]datasource.KPDRow)
	var order []int
	for _, r := range rows {
		if _, seen := groups[r.MatchingID]; !seen {
			order = append(order, r.MatchingID)
		}
		groups[r.MatchingID] = append(groups[r.MatchingID], r)
	}
	sort.Ints(order)

	return groups, order
}

func addNDDNodes(pool *core.Pool, matchingID int, grp []datasource.KPDRow, arrivalTime int) error {
	for i, row := range grp {
		donor, err := donorFromRow(row)
		if err != nil {
			return fmt.Errorf("record: BuildPool: matching_id=%d: %w", matchingID, err)
		}

		id := fmt.Sprintf("NDD-%d", matchingID)
		if len(grp) > 1 {
			id = fmt.Sprintf("NDD-%d-%d", matchingID, i)
		}
		node, err := core.NewNDDNode(id, donor, arrivalTime)
		if err != nil {
			return fmt.Errorf("record: BuildPool: %s: %w", id, err)
		}
		pool.AddNode(node)
	}

	return nil
}

func addPairNode(pool *core.Pool, matchingID int, grp []datasource.KPDRow, arrivalTime int) error {
	first := grp[0]
	if first.CandidateID == "" {
		return fmt.Errorf("record: BuildPool: matching_id=%d: %w", matchingID, ErrPairWithoutCandidate)
	}

	candidate, err := candidateFromRow(first)
	if err != nil {
		return fmt.Errorf("record: BuildPool: matching_id=%d: %w", matchingID, err)
	}

	donors := make([]*core.Donor, 0, len(grp))
	for _, row := range grp {
		d, err := donorFromRow(row)
		if err != nil {
			return fmt.Errorf("record: BuildPool: matching_id=%d: %w", matchingID, err)
		}
		donors = append(donors, d)
	}

	id := fmt.Sprintf("PAIR-%d", matchingID)
	node, err := core.NewPairNode(id, candidate, donors, arrivalTime)
	if err != nil {
		return fmt.Errorf("record: BuildPool: %s: %w", id, err)
	}
	pool.AddNode(node)

	return nil
}

func candidateFromRow(row datasource.KPDRow) (*core.Candidate, error) {
	return core.NewCandidate(
		row.CandidateID,
		row.CandidatePRA,
		row.CandidateBloodType,
		row.CandidateUnacceptableHLA,
		row.CandidateDesensitizableHLA,
		core.WithDemographics(row.CandidateAge, core.Sex(row.CandidateMale), core.RaceUnspecified, 0, 0, false, false, core.InsuranceUnspecified, 0),
	)
}

func donorFromRow(row datasource.KPDRow) (*core.Donor, error) {
	bmi := bmiFromHeightWeight(row.DonorHeightCM, row.DonorWeightKG)

	return core.NewDonor(
		row.DonorID,
		row.DonorBloodType,
		row.DonorHLA,
		row.DonorRelation,
		core.WithDonorDemographics(row.DonorAge, core.Sex(row.DonorMale), core.RaceUnspecified, bmi),
	)
}

func bmiFromHeightWeight(heightCM, weightKG float64) float64 {
	if heightCM <= 0 {
		return 0
	}
	heightM := heightCM / 100

	return weightKG / (heightM * heightM)
}

// AddDeceasedDonorNodes appends one BRIDGE-less NDD-style node for every
// deceased donor row it is given (e.g. a list-exchange deceased-donor
// voucher); rows are not filtered. Most simulation configurations
// never call this; it exists so SPEC_FULL's carried-over deceased-donor
// fields have somewhere to flow into the graph when a future configuration
// enables list exchange, without requiring a Node kind that doesn't exist.
func AddDeceasedDonorNodes(pool *core.Pool, rows []datasource.DeceasedDonorRow, arrivalTime int) error {
	for _, row := range rows {
		donor, err := core.NewDonor(row.ID, row.BloodType, row.HLA, core.RelationNonDirected, core.WithDeceased(row.RecoveryTime), core.WithDonorDemographics(row.Age, core.SexMale, core.RaceUnspecified, 0))
		if err != nil {
			return fmt.Errorf("record: AddDeceasedDonorNodes: %s: %w", row.ID, err)
		}
		node, err := core.NewNDDNode("DD-"+row.ID, donor, arrivalTime)
		if err != nil {
			return fmt.Errorf("record: AddDeceasedDonorNodes: %s: %w", row.ID, err)
		}
		pool.AddNode(node)
	}

	return nil
}
