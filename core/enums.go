package core

// BloodType is a candidate's or donor's ABO blood type.
type BloodType uint8

const (
	BloodTypeUnspecified BloodType = iota
	BloodTypeO
	BloodTypeA
	BloodTypeB
	BloodTypeAB
)

// String renders the canonical short form used throughout CSV I/O.
func (bt BloodType) String() string {
	switch bt {
	case BloodTypeO:
		return "O"
	case BloodTypeA:
		return "A"
	case BloodTypeB:
		return "B"
	case BloodTypeAB:
		return "AB"
	default:
		return "Unspecified"
	}
}

// ParseBloodType converts the CSV token into a BloodType, falling back to
// BloodTypeUnspecified for any unrecognized token (per the Data error kind
// in §7: unrecognized enum tokens fall back to sentinels, never fail fast).
func ParseBloodType(s string) BloodType {
	switch s {
	case "O":
		return BloodTypeO
	case "A":
		return BloodTypeA
	case "B":
		return BloodTypeB
	case "AB":
		return BloodTypeAB
	default:
		return BloodTypeUnspecified
	}
}

// Sex is a binary demographic attribute; data pulled from record sources
// with any other token is recorded as false (matching the C++ source's
// "candidateMale" boolean field).
type Sex bool

const (
	SexFemale Sex = false
	SexMale   Sex = true
)

// Race is a categorical demographic attribute.
type Race uint8

const (
	RaceUnspecified Race = iota
	RaceWhite
	RaceBlack
	RaceHispanic
	RaceHawaiian
	RaceNative
	RaceAsian
	RaceMultiracial
	RaceOther
)

// Insurance is a candidate's payer category.
type Insurance uint8

const (
	InsuranceUnspecified Insurance = iota
	InsurancePublic
	InsuranceMedicaid
	InsuranceMedicarePlus
	InsuranceMedicare
	InsurancePrivate
	InsurancePrivatePlus
	InsuranceOther
)

// Relation describes a donor's relationship to their paired candidate, or
// RelationNonDirected for an NDD.
type Relation uint8

const (
	RelationUnspecified Relation = iota
	RelationParent
	RelationChild
	RelationTwin
	RelationSibling
	RelationHalfSibling
	RelationRelative
	RelationSpouse
	RelationPartner
	RelationPairedDonation
	RelationOtherUnrelated
	RelationNonDirected
	RelationLivingDeceased
)

// NodeKind is the tagged-union discriminant for Node: a node is exactly one
// of PAIR, NDD or BRIDGE at any time. Conversion from NDD/PAIR-tail to
// BRIDGE is a variant mutation (Node.ConvertToBridge), never a new type.
type NodeKind uint8

const (
	KindPair NodeKind = iota
	KindNDD
	KindBridge
)

func (k NodeKind) String() string {
	switch k {
	case KindPair:
		return "Pair"
	case KindNDD:
		return "NDD"
	case KindBridge:
		return "Bridge Donor"
	default:
		return "Unspecified"
	}
}

// NodeStatus is a node's lifecycle status. The timeline
// ACTIVE -> {INACTIVE <-> ACTIVE}* -> WITHDRAWN is the order the timelines
// built by record.GenerateTimelines follow; Node.SetTimeline stores a
// timeline without checking it. WITHDRAWN is absorbing.
type NodeStatus uint8

const (
	StatusActive NodeStatus = iota
	StatusInactive
	StatusWithdrawn
)

func (s NodeStatus) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusInactive:
		return "Inactive"
	case StatusWithdrawn:
		return "Withdrawn"
	default:
		return "Unspecified"
	}
}

// TransplantStatus tracks a node's progress toward transplantation. It is
// monotone except that IN_PROGRESS reverts to NOT_TRANSPLANTED when the
// enclosing arrangement does not, in the end, transplant the node.
type TransplantStatus uint8

const (
	NotTransplanted TransplantStatus = iota
	TransplantInProgress
	Transplanted
)

func (t TransplantStatus) String() string {
	switch t {
	case NotTransplanted:
		return "Not Transplanted"
	case TransplantInProgress:
		return "In Progress"
	case Transplanted:
		return "Transplanted"
	default:
		return "Unspecified"
	}
}
