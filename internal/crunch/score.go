package crunch

// Score counts the zero bytes of an address. leading is the index of the
// first non-zero byte, i.e. the number of leading zero bytes; an all-zero
// address scores leading == 20.
func Score(addr [20]byte) (leading, total int) {
	leading = -1
	for i, b := range addr {
		if b == 0 {
			total++
		} else if leading < 0 {
			leading = i
		}
	}
	if leading < 0 {
		leading = len(addr)
	}
	return leading, total
}
