// Package crunch implements the CREATE2 salt search: address derivation,
// zero-byte scoring, and the concurrent workers that sweep the nonce space.
package crunch
