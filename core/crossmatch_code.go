package core

// CrossmatchCode is the result of a virtual (BT/HLA) or lab crossmatch test,
// computed by package crossmatch and stored on Match. It lives in core
// (rather than crossmatch) so Match can reference it without importing the
// crossmatch package, which itself depends on core's Candidate/Donor types.
type CrossmatchCode uint8

const (
	CrossmatchSuccessful CrossmatchCode = iota
	CrossmatchODonorToNonO
	CrossmatchRequiresDesensitization
	CrossmatchRequiresDesensitizationAndODonorToNonO
	CrossmatchFailedHLA
	CrossmatchFailedBT
	CrossmatchFailedLab
)

func (c CrossmatchCode) String() string {
	switch c {
	case CrossmatchSuccessful:
		return "Successful Crossmatch"
	case CrossmatchODonorToNonO:
		return "O Donor to Non-O Candidate"
	case CrossmatchRequiresDesensitization:
		return "Requires Desensitization"
	case CrossmatchRequiresDesensitizationAndODonorToNonO:
		return "Requires Desensitization and O Donor to Non-O Candidate"
	case CrossmatchFailedHLA:
		return "Failed Crossmatch (Based on HLA)"
	case CrossmatchFailedBT:
		return "Failed Crossmatch (Based on BT)"
	case CrossmatchFailedLab:
		return "Failed Crossmatch (Lab Crossmatch)"
	default:
		return "Unspecified"
	}
}
