// Package arrangement carries a selected cycle/chain/LRS from the moment a
// match run chooses it through its delayed transplant time, lab-crossmatch
// fallback, and realization, as described in §4.5.
package arrangement
