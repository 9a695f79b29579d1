// Package reward assigns a relative value to gas-efficient addresses based
// on how many zero bytes they carry. Addresses below the floor have no entry
// and are discarded by the search.
package reward

import "strconv"

// Addresses with fewer than this many zero bytes in total are never valued,
// regardless of where the zeros sit.
const minTotalZeroes = 3

// Lookup returns the value string for an address with the given number of
// leading and total zero bytes, keyed the same way the search scores
// addresses. The second return is false when the combination is too common
// to be worth recording.
func Lookup(leading, total int) (string, bool) {
	if total < minTotalZeroes {
		return "", false
	}
	if !eligible(leading, total) {
		return "", false
	}
	return strconv.Itoa(value(leading, total)), true
}

// Key folds a (leading, total) pair into the flat table key used in result
// lines and logs.
func Key(leading, total int) int {
	return leading*20 + total
}

// eligible gates out the combinations frequent enough to flood the results
// file. A run of leading zeros is worth far more than the same count
// scattered through the address, so the total floor drops as leading grows.
func eligible(leading, total int) bool {
	switch {
	case leading >= 3:
		return true
	case leading == 2:
		return total >= 4
	case leading == 1:
		return total >= 5
	default:
		return total >= 6
	}
}

// value grows quadratically with leading zeros and linearly with total
// zeros, approximating the rarity of the combination.
func value(leading, total int) int {
	return leading*leading*40 + total*20
}
