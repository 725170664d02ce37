// Package crossmatch implements the virtual blood-type/HLA compatibility
// test between a candidate and a donor (§4.1), and the policy gate that
// decides whether a given crossmatch result is an allowable transplant
// edge under the simulation's configured desensitization/reserve-O rules.
//
// Both functions are pure: Virtual depends only on donor BT+HLA
// and candidate BT+HLA+PRA, so identical inputs always produce identical
// outputs (the symmetry property tested in §8).
package crossmatch
