package core

import "fmt"

// Candidate is an immutable value object describing a transplant candidate,
// either paired with one or more donors in a KPD pool or listed on the
// deceased-donor waitlist. Construct with NewCandidate; all fields are
// read-only after construction, matching the "immutable after construction"
// invariant in the data model.
type Candidate struct {
	id  string
	pra int // panel-reactive antibody, 0-100

	bloodType BloodType

	unacceptableHLA  []string
	desensitizableHLA []string

	// Demographics
	age             int
	sex             Sex
	race            Race
	bmi             float64
	dialysisTime    float64 // years on dialysis ("time on dialysis")
	priorTransplant bool
	hepC            bool
	insurance       Insurance
	epts            float64 // estimated post-transplant survival score

	// Waitlist-only fields; zero values for KPD-only candidates.
	waitlisted   bool
	listingTime  int
	removalTime  int
	centerID     string
	opoID        string
}

// CandidateOption configures optional fields of a Candidate at construction.
type CandidateOption func(*Candidate)

// WithWaitlist marks the candidate as a waitlist candidate and records the
// listing/removal times and center/OPO ids named in §3 of the data model.
func WithWaitlist(listingTime, removalTime int, centerID, opoID string) CandidateOption {
	return func(c *Candidate) {
		c.waitlisted = true
		c.listingTime = listingTime
		c.removalTime = removalTime
		c.centerID = centerID
		c.opoID = opoID
	}
}

// WithDemographics sets the optional demographic attributes; any field left
// at its zero value by omission is reported as such by the accessors.
func WithDemographics(age int, sex Sex, race Race, bmi float64, dialysisTime float64, priorTransplant, hepC bool, insurance Insurance, epts float64) CandidateOption {
	return func(c *Candidate) {
		c.age = age
		c.sex = sex
		c.race = race
		c.bmi = bmi
		c.dialysisTime = dialysisTime
		c.priorTransplant = priorTransplant
		c.hepC = hepC
		c.insurance = insurance
		c.epts = epts
	}
}

// NewCandidate constructs a Candidate. id must be non-empty; pra is clamped
// into [0,100]. unacceptableHLA and desensitizableHLA are copied so the
// caller's slices may be reused or mutated afterwards.
func NewCandidate(id string, pra int, bt BloodType, unacceptableHLA, desensitizableHLA []string, opts ...CandidateOption) (*Candidate, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	clamped := pra
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 100 {
		clamped = 100
	}

	c := &Candidate{
		id:                id,
		pra:               clamped,
		bloodType:         bt,
		unacceptableHLA:   append([]string(nil), unacceptableHLA...),
		desensitizableHLA: append([]string(nil), desensitizableHLA...),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Candidate) ID() string             { return c.id }
func (c *Candidate) PRA() int               { return c.pra }
func (c *Candidate) BloodType() BloodType   { return c.bloodType }
func (c *Candidate) Age() int               { return c.age }
func (c *Candidate) Sex() Sex               { return c.sex }
func (c *Candidate) Race() Race             { return c.race }
func (c *Candidate) BMI() float64           { return c.bmi }
func (c *Candidate) DialysisTime() float64  { return c.dialysisTime }
func (c *Candidate) PriorTransplant() bool  { return c.priorTransplant }
func (c *Candidate) HepC() bool             { return c.hepC }
func (c *Candidate) Insurance() Insurance   { return c.insurance }
func (c *Candidate) EPTS() float64          { return c.epts }
func (c *Candidate) Waitlisted() bool       { return c.waitlisted }
func (c *Candidate) ListingTime() int       { return c.listingTime }
func (c *Candidate) RemovalTime() int       { return c.removalTime }
func (c *Candidate) CenterID() string       { return c.centerID }
func (c *Candidate) OPOID() string          { return c.opoID }

// UnacceptableHLA returns a copy of the candidate's unacceptable-antigen set.
func (c *Candidate) UnacceptableHLA() []string {
	return append([]string(nil), c.unacceptableHLA...)
}

// DesensitizableHLA returns a copy of the candidate's desensitizable-antigen set.
func (c *Candidate) DesensitizableHLA() []string {
	return append([]string(nil), c.desensitizableHLA...)
}

func (c *Candidate) String() string {
	return fmt.Sprintf("Candidate(%s, BT=%s, PRA=%d)", c.id, c.bloodType, c.pra)
}
