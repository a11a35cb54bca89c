package random

// Step applies the generator's recurrence to a register truncated to mask.
// mask must be 2^k-1 for some k <= 32; with mask 0xffffffff this is exactly
// one LCG step.
func Step(state, mask uint64) uint64 {
	return (state*uint64(Multiplier) + uint64(Increment)) & mask
}

// Period walks the truncated recurrence from start until it returns and
// reports the number of steps taken. It walks at most mask+1 steps and returns
// 0 if start is never revisited.
func Period(start, mask uint64) uint64 {
	start &= mask
	s := start
	for n := uint64(1); n <= mask+1; n++ {
		s = Step(s, mask)
		if s == start {
			return n
		}
	}
	return 0
}

// FullPeriod reports whether multiplier and increment satisfy the Hull–Dobell
// conditions for modulus 2^width: increment odd, multiplier-1 even, and
// multiplier-1 divisible by 4 once the modulus is.
func FullPeriod(multiplier, increment uint64, width uint) bool {
	if width == 0 {
		return true
	}
	if width < 64 {
		mask := uint64(1)<<width - 1
		multiplier &= mask
		increment &= mask
	}
	if increment&1 == 0 {
		return false
	}
	am1 := multiplier - 1
	if width >= 2 {
		return am1&3 == 0
	}
	return am1&1 == 0
}
