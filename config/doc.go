// Package config loads the key=value text configuration described in §6:
// optimization/utility schemes, enumeration size bounds, timing parameters,
// arrival and attrition rates, policy flags, expected-utility estimator
// controls, the PRA-advantage bonus, and the seven RNG seeds.
//
// No key=value or INI parsing library appears anywhere in the retrieved
// example corpus, so Load is a small hand-rolled scanner in the
// teacher's error-handling idiom (sentinel errors wrapped with line
// context) rather than a third-party config library — the justification
// required for any stdlib-only piece of this engine.
package config
