package datasource

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kpdsim/engine/arrangement"
	"github.com/kpdsim/engine/core"
)

// ArrangementsSink writes one row per enqueued arrangement, matching the
// "Arrangements" CSV output named in §6.
type ArrangementsSink struct {
	w         *csv.Writer
	wroteHead bool
}

// NewArrangementsSink wraps w. The header is written lazily on the first
// WriteRow call so a sink that never sees an arrangement produces an empty
// file rather than a header-only one.
func NewArrangementsSink(w io.Writer) *ArrangementsSink {
	return &ArrangementsSink{w: csv.NewWriter(w)}
}

func (s *ArrangementsSink) WriteRow(pool *core.Pool, a arrangement.Arrangement) error {
	if err := s.ensureHeader(); err != nil {
		return err
	}

	ids := make([]string, len(a.Handles))
	for i, h := range a.Handles {
		n, err := pool.Node(h)
		if err != nil {
			return fmt.Errorf("datasource: ArrangementsSink.WriteRow: %w", err)
		}
		ids[i] = n.ID()
	}

	return s.w.Write([]string{
		strconv.Itoa(a.IterationIndex),
		strconv.Itoa(a.MatchRunIndex),
		strconv.Itoa(a.MatchRunTime),
		a.Kind.String(),
		joinList(ids),
		strconv.FormatFloat(a.Utility, 'f', -1, 64),
		strconv.Itoa(a.Delay),
		strconv.Itoa(a.TransplantTime),
	})
}

func (s *ArrangementsSink) ensureHeader() error {
	if s.wroteHead {
		return nil
	}
	s.wroteHead = true

	return s.w.Write([]string{
		"iteration", "match_run_index", "match_run_time", "kind",
		"nodes", "utility", "delay", "transplant_time",
	})
}

// Flush flushes the underlying CSV writer and returns any write error.
func (s *ArrangementsSink) Flush() error {
	s.w.Flush()

	return s.w.Error()
}

// TransplantsSink writes one row per realized transplant record, matching
// the "Transplants" CSV output named in §6.
type TransplantsSink struct {
	w         *csv.Writer
	wroteHead bool
}

func NewTransplantsSink(w io.Writer) *TransplantsSink {
	return &TransplantsSink{w: csv.NewWriter(w)}
}

func (s *TransplantsSink) WriteRow(pool *core.Pool, t arrangement.TransplantRecord, iteration int) error {
	if err := s.ensureHeader(); err != nil {
		return err
	}

	donorNode, err := pool.Node(t.DonorNode)
	if err != nil {
		return fmt.Errorf("datasource: TransplantsSink.WriteRow: %w", err)
	}
	candidateNode, err := pool.Node(t.CandidateNode)
	if err != nil {
		return fmt.Errorf("datasource: TransplantsSink.WriteRow: %w", err)
	}
	donor, err := donorNode.Donor(t.DonorIndex)
	if err != nil {
		return fmt.Errorf("datasource: TransplantsSink.WriteRow: %w", err)
	}

	return s.w.Write([]string{
		strconv.Itoa(iteration),
		donorNode.ID(),
		donor.ID(),
		candidateNode.ID(),
		t.Kind.String(),
	})
}

func (s *TransplantsSink) ensureHeader() error {
	if s.wroteHead {
		return nil
	}
	s.wroteHead = true

	return s.w.Write([]string{"iteration", "donor_node", "donor_id", "candidate_node", "kind"})
}

func (s *TransplantsSink) Flush() error {
	s.w.Flush()

	return s.w.Error()
}

// PopulationSink writes one row per node present in the pool at the end of
// an iteration, matching the "Population" CSV output named in §6. It
// carries the listing-center/OPO and deceased-donor-recovery-time fields
// named in original_source's data model but left unattached to an
// operation in the distilled spec (see DESIGN.md).
type PopulationSink struct {
	w         *csv.Writer
	wroteHead bool
}

func NewPopulationSink(w io.Writer) *PopulationSink {
	return &PopulationSink{w: csv.NewWriter(w)}
}

func (s *PopulationSink) WriteRow(iteration int, n *core.Node) error {
	if err := s.ensureHeader(); err != nil {
		return err
	}

	candidateID, centerID, opoID := "", "", ""
	if n.Kind() == core.KindPair && n.Candidate() != nil {
		c := n.Candidate()
		candidateID, centerID, opoID = c.ID(), c.CenterID(), c.OPOID()
	}

	recoveryTime, recoveryPresent := 0, false
	if len(n.Donors()) > 0 {
		if d := n.Donors()[0]; d.Deceased() {
			recoveryTime, recoveryPresent = d.RecoveryTime(), true
		}
	}

	return s.w.Write([]string{
		strconv.Itoa(iteration),
		n.ID(),
		n.Kind().String(),
		candidateID,
		centerID,
		opoID,
		n.ObservedStatus(iteration).String(),
		n.TransplantStatus().String(),
		formatOptInt(recoveryTime, recoveryPresent),
	})
}

func (s *PopulationSink) ensureHeader() error {
	if s.wroteHead {
		return nil
	}
	s.wroteHead = true

	return s.w.Write([]string{
		"iteration", "node_id", "kind", "candidate_id", "center_id", "opo_id",
		"status", "transplant_status", "deceased_donor_recovery_time",
	})
}

func (s *PopulationSink) Flush() error {
	s.w.Flush()

	return s.w.Error()
}
