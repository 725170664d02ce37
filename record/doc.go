// Package record synthesizes one iteration's core.Pool from the tables
// datasource loads plus the configured config.Parameters: building
// Candidate/Donor/Node values from the KPD pairs/NDDs table, computing the
// virtual-crossmatch Match for every donor-candidate pair, and generating
// each node's daily status timeline (§4.6).
//
// record is also where the survival-parameter table is wired into
// matchrun's expected-utility estimators (NewScorer), since record is the
// one package that sees both the loaded data and the matchrun.Scorer type.
package record
