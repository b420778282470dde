package scoring

// Percentile returns the position of value within peers as
// (fraction of peers <= value) * 100, flipped when lower is better.
// The result is nil when value is missing or no peer has a usable value,
// so a degenerate column contributes nothing instead of a fake rank.
func Percentile(value *float64, peers []*float64, higherIsBetter bool) *float64 {
	if value == nil {
		return nil
	}
	total, le := 0, 0
	for _, p := range peers {
		if p == nil {
			continue
		}
		total++
		if *p <= *value {
			le++
		}
	}
	if total == 0 {
		return nil
	}
	pct := float64(le) / float64(total) * 100.0
	if !higherIsBetter {
		pct = 100.0 - pct
	}
	return &pct
}
