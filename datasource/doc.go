// Package datasource reads the CSV input tables named in §6 (HLA frequency,
// HLA equivalence, survival parameters, KPD pairs/NDDs, deceased donors,
// waitlist candidates) and writes the CSV output tables (arrangements,
// transplants, population) plus the plain-text simulation log.
//
// Every table uses "," as the field separator and ";" as the sub-field
// separator for list-valued cells (an antigen set, an equivalence class);
// a bare "NA" marks an optional scalar field as absent. No third-party CSV
// library appears anywhere in the retrieved example corpus, so every reader
// and writer here is built directly on encoding/csv — the justification
// required for any stdlib-only piece of this engine.
package datasource
