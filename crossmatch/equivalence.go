package crossmatch

// EquivalenceDictionary expands a single reported HLA antigen into the set
// of antigens it is serologically equivalent to, as loaded from the HLA
// equivalence CSV table named in §6. A missing key expands to just the
// antigen itself (no broader equivalence known).
type EquivalenceDictionary map[string][]string

// Expand returns the equivalence-class antigens for a reported antigen.
func (d EquivalenceDictionary) Expand(antigen string) []string {
	if classes, ok := d[antigen]; ok && len(classes) > 0 {
		return classes
	}

	return []string{antigen}
}

// ExpandAll expands every antigen in the set and flattens the result.
func (d EquivalenceDictionary) ExpandAll(antigens []string) []string {
	var out []string
	for _, ag := range antigens {
		out = append(out, d.Expand(ag)...)
	}

	return out
}

// hasOverlap reports whether any antigen in expanded appears in donorHLA.
func hasOverlap(expanded, donorHLA []string) bool {
	set := make(map[string]struct{}, len(donorHLA))
	for _, ag := range donorHLA {
		set[ag] = struct{}{}
	}
	for _, ag := range expanded {
		if _, ok := set[ag]; ok {
			return true
		}
	}

	return false
}
