package core

import "fmt"

// Donor is an immutable value object describing a living or deceased donor.
// A Donor's Relation names either its relationship to a paired candidate or
// RelationNonDirected for a non-directed donor.
type Donor struct {
	id        string
	bloodType BloodType
	hla       []string
	relation  Relation

	age  int
	sex  Sex
	race Race
	bmi  float64

	deceased     bool
	recoveryTime int // meaningful only when deceased
}

// DonorOption configures optional fields of a Donor at construction.
type DonorOption func(*Donor)

// WithDonorDemographics sets the optional demographic attributes.
func WithDonorDemographics(age int, sex Sex, race Race, bmi float64) DonorOption {
	return func(d *Donor) {
		d.age = age
		d.sex = sex
		d.race = race
		d.bmi = bmi
	}
}

// WithDeceased marks the donor as a deceased donor with the given recovery
// time, per the "deceased donors table" input named in §6.
func WithDeceased(recoveryTime int) DonorOption {
	return func(d *Donor) {
		d.deceased = true
		d.recoveryTime = recoveryTime
	}
}

// NewDonor constructs a Donor. id must be non-empty; hla is copied.
func NewDonor(id string, bt BloodType, hla []string, relation Relation, opts ...DonorOption) (*Donor, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	d := &Donor{
		id:        id,
		bloodType: bt,
		hla:       append([]string(nil), hla...),
		relation:  relation,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

func (d *Donor) ID() string             { return d.id }
func (d *Donor) BloodType() BloodType   { return d.bloodType }
func (d *Donor) Relation() Relation     { return d.relation }
func (d *Donor) Age() int               { return d.age }
func (d *Donor) Sex() Sex               { return d.sex }
func (d *Donor) Race() Race             { return d.race }
func (d *Donor) BMI() float64           { return d.bmi }
func (d *Donor) Deceased() bool         { return d.deceased }
func (d *Donor) RecoveryTime() int      { return d.recoveryTime }

// HLA returns a copy of the donor's antigen set.
func (d *Donor) HLA() []string {
	return append([]string(nil), d.hla...)
}

// NonDirected reports whether this donor initiates chains rather than being
// paired to a specific candidate.
func (d *Donor) NonDirected() bool {
	return d.relation == RelationNonDirected
}

func (d *Donor) String() string {
	return fmt.Sprintf("Donor(%s, BT=%s)", d.id, d.bloodType)
}
