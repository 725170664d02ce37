package crossmatch

// AntigenProfile is one donor HLA profile and its relative frequency among
// the donor population, as loaded from the HLA frequency CSV table (§6).
type AntigenProfile struct {
	Antigens  []string
	Frequency float64
}

// AntigenFrequencyTable holds population HLA profiles with their relative
// frequencies; no package in this module draws from it. It plays no role in
// Virtual itself, but lives alongside EquivalenceDictionary since both are the
// antigen-side lookup tables §4.1 names as loaded by datasource rather than
// hard-coded.
type AntigenFrequencyTable []AntigenProfile

// TotalFrequency sums the table's relative frequencies, the denominator a
// caller divides by before drawing a profile with a uniform variate.
func (t AntigenFrequencyTable) TotalFrequency() float64 {
	var total float64
	for _, p := range t {
		total += p.Frequency
	}

	return total
}

// Draw selects the profile whose cumulative frequency interval contains u,
// where u is a uniform variate scaled to [0, TotalFrequency()). The last
// profile is returned if rounding pushes u past the final interval.
func (t AntigenFrequencyTable) Draw(u float64) []string {
	var cumulative float64
	for _, p := range t {
		cumulative += p.Frequency
		if u < cumulative {
			return p.Antigens
		}
	}
	if len(t) == 0 {
		return nil
	}

	return t[len(t)-1].Antigens
}
