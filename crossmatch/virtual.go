package crossmatch

import "github.com/kpdsim/engine/core"

// bloodTypeCompatible implements the BT rule of §4.1 step (a): donor AB
// requires candidate AB; donor A is rejected by candidates O or B; donor B
// is rejected by candidates O or A. O donors are compatible with every
// candidate blood type at the BT level.
func bloodTypeCompatible(candidateBT, donorBT core.BloodType) bool {
	switch donorBT {
	case core.BloodTypeAB:
		return candidateBT == core.BloodTypeAB
	case core.BloodTypeA:
		return candidateBT != core.BloodTypeO && candidateBT != core.BloodTypeB
	case core.BloodTypeB:
		return candidateBT != core.BloodTypeO && candidateBT != core.BloodTypeA
	default: // O, Unspecified
		return true
	}
}

// oDonorToNonO reports the "O donor to non-O candidate" condition used both
// as a standalone code and combined with the desensitization code.
func oDonorToNonO(candidateBT, donorBT core.BloodType) bool {
	return donorBT == core.BloodTypeO && candidateBT != core.BloodTypeO
}

// Virtual performs the planning-time (BT/HLA only) crossmatch test between
// candidate and donor, following the ordered procedure in §4.1:
//
//  1. BT rule — fails with FailedBT per bloodTypeCompatible.
//  2. Unacceptable-HLA scan — any expanded unacceptable antigen present on
//     the donor fails with FailedHLA.
//  3. Desensitizable-HLA scan — any expanded desensitizable antigen present
//     on the donor requires desensitization, combined with the O-to-non-O
//     code if that condition also holds.
//  4. Otherwise SUCCESSFUL, or the standalone O-to-non-O code.
func Virtual(candidate *core.Candidate, donor *core.Donor, equiv EquivalenceDictionary) core.CrossmatchCode {
	if !bloodTypeCompatible(candidate.BloodType(), donor.BloodType()) {
		return core.CrossmatchFailedBT
	}

	donorHLA := donor.HLA()

	unacceptable := equiv.ExpandAll(candidate.UnacceptableHLA())
	if hasOverlap(unacceptable, donorHLA) {
		return core.CrossmatchFailedHLA
	}

	oToNonO := oDonorToNonO(candidate.BloodType(), donor.BloodType())

	desensitizable := equiv.ExpandAll(candidate.DesensitizableHLA())
	if hasOverlap(desensitizable, donorHLA) {
		if oToNonO {
			return core.CrossmatchRequiresDesensitizationAndODonorToNonO
		}

		return core.CrossmatchRequiresDesensitization
	}

	if oToNonO {
		return core.CrossmatchODonorToNonO
	}

	return core.CrossmatchSuccessful
}

// Policy names the configuration flags that gate which crossmatch codes
// translate into an allowable (adjacency-true) transplant edge.
type Policy struct {
	AllowDesensitization         bool
	ReserveODonorsForOCandidates bool
}

// Allowable implements §4.1's allowable_match: SUCCESSFUL is always
// allowed; the O-to-non-O code is allowed unless O donors are reserved for
// O candidates; the desensitization code is allowed only when
// desensitization is permitted; the combined code requires both flags
// permissive; every failure code is never allowed.
func Allowable(code core.CrossmatchCode, policy Policy) bool {
	switch code {
	case core.CrossmatchSuccessful:
		return true
	case core.CrossmatchODonorToNonO:
		return !policy.ReserveODonorsForOCandidates
	case core.CrossmatchRequiresDesensitization:
		return policy.AllowDesensitization
	case core.CrossmatchRequiresDesensitizationAndODonorToNonO:
		return policy.AllowDesensitization && !policy.ReserveODonorsForOCandidates
	default:
		return false
	}
}
