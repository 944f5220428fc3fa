package importer

import "testing"

func TestTracker_SmallInput(t *testing.T) {
	t.Parallel()

	var got []float64
	tr := NewTracker(5, func(pct float64) { got = append(got, pct) })
	for i := 1; i <= 5; i++ {
		tr.Advance(i)
	}

	want := []float64{20, 40, 60, 80, 100}
	if len(got) != len(want) {
		t.Fatalf("emissions: got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("emissions: got=%v want=%v", got, want)
		}
	}
}

func TestTracker_MonotonicWithStep(t *testing.T) {
	t.Parallel()

	var got []float64
	tr := NewTracker(4000, func(pct float64) { got = append(got, pct) })
	for i := 1; i <= 4000; i++ {
		tr.Advance(i)
	}

	if len(got) == 0 {
		t.Fatalf("no emissions")
	}
	if got[len(got)-1] != 100 {
		t.Fatalf("last emission: got=%v want=100", got[len(got)-1])
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("not monotonic at %d: %v -> %v", i, got[i-1], got[i])
		}
	}
	// 除最后一条外，相邻发送间隔 ≥0.1
	for i := 1; i < len(got)-1; i++ {
		if got[i]-got[i-1] < 0.1-1e-9 {
			t.Fatalf("step too small at %d: %v -> %v", i, got[i-1], got[i])
		}
	}
}

func TestTracker_FinalRowAlwaysEmitted(t *testing.T) {
	t.Parallel()

	var got []float64
	tr := NewTracker(3, func(pct float64) { got = append(got, pct) })
	tr.Advance(3)

	if len(got) != 1 || got[0] != 100 {
		t.Fatalf("emissions: got=%v", got)
	}
	// 终点重复上报仍无条件发送，序列保持单调
	tr.Advance(3)
	if len(got) != 2 {
		t.Fatalf("final re-advance must emit again, got=%v", got)
	}
}

func TestTracker_ZeroTotal(t *testing.T) {
	t.Parallel()

	tr := NewTracker(0, func(pct float64) { t.Fatalf("must not emit") })
	tr.Advance(1)
}
