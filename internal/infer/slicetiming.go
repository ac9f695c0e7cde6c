package infer

// interleavedTiming reconstructs per-slice onsets for the Philips default
// fMRI order: all odd 1-based slice positions bottom-up, then all even.
// The k-th acquired slice fires at k*TR/n seconds; onsets are indexed by
// physical slice and rounded to 6 decimals.
//
// For n=4 the acquisition order is [0,2,1,3] (0-based), giving
// [0, TR/2, TR/4, 3TR/4].
func interleavedTiming(tr float64, n int) []float64 {
	if tr <= 0 || n <= 0 {
		return nil
	}

	order := make([]int, 0, n)
	for s := 0; s < n; s += 2 { // odd 1-based positions
		order = append(order, s)
	}
	for s := 1; s < n; s += 2 { // even 1-based positions
		order = append(order, s)
	}

	per := tr / float64(n)
	timing := make([]float64, n)
	for k, s := range order {
		timing[s] = roundTo(float64(k)*per, 6)
	}
	return timing
}

// sequentialTiming is the ascending order some anatomical protocols
// declare explicitly: slice s fires at s*TR/n.
func sequentialTiming(tr float64, n int) []float64 {
	if tr <= 0 || n <= 0 {
		return nil
	}

	per := tr / float64(n)
	timing := make([]float64, n)
	for s := range timing {
		timing[s] = roundTo(float64(s)*per, 6)
	}
	return timing
}
