package scoring

import "testing"

func fp(v float64) *float64 { return &v }

func TestPercentileRank(t *testing.T) {
	peers := []*float64{fp(1), fp(2), fp(3), fp(4)}

	got := Percentile(fp(3), peers, true)
	if got == nil || *got != 75 {
		t.Fatalf("got %v", got)
	}

	// Lower-is-better flips the rank.
	got = Percentile(fp(3), peers, false)
	if got == nil || *got != 25 {
		t.Fatalf("flipped: got %v", got)
	}
}

func TestPercentileComplement(t *testing.T) {
	peers := []*float64{fp(10), fp(20), fp(30), fp(40), fp(50)}
	hi := Percentile(fp(30), peers, true)
	lo := Percentile(fp(30), peers, false)
	if hi == nil || lo == nil {
		t.Fatalf("nil rank")
	}
	if *hi+*lo != 100 {
		t.Fatalf("complement: %v + %v", *hi, *lo)
	}
}

func TestPercentileSkipsNilPeers(t *testing.T) {
	peers := []*float64{nil, fp(1), nil, fp(5)}
	got := Percentile(fp(5), peers, true)
	if got == nil || *got != 100 {
		t.Fatalf("got %v", got)
	}
}

func TestPercentileDegenerate(t *testing.T) {
	if got := Percentile(nil, []*float64{fp(1)}, true); got != nil {
		t.Fatalf("missing value: got %v", *got)
	}
	if got := Percentile(fp(1), nil, true); got != nil {
		t.Fatalf("no peers: got %v", *got)
	}
	if got := Percentile(fp(1), []*float64{nil, nil}, true); got != nil {
		t.Fatalf("all-nil peers: got %v", *got)
	}
}

func TestPercentileMonotonic(t *testing.T) {
	peers := []*float64{fp(1), fp(2), fp(3), fp(4), fp(5)}
	var prev float64 = -1
	for v := 0.5; v <= 5.5; v += 0.5 {
		got := Percentile(fp(v), peers, true)
		if got == nil {
			t.Fatalf("nil rank at %v", v)
		}
		if *got < prev {
			t.Fatalf("rank decreased at %v: %v < %v", v, *got, prev)
		}
		prev = *got
	}
}
