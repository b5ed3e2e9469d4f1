package analysis

import "testing"

func TestAnalyzeContentEvolutionGrowth(t *testing.T) {
	top := []byte(`{"data":{"videos":[
		{"stats":{"playCount":600000},"video":{"duration":45}},
		{"stats":{"playCount":400000},"video":{"duration":55}}
	]}}`)
	oldest := []byte(`{"data":{"videos":[
		{"stats":{"playCount":80000},"video":{"duration":20}},
		{"stats":{"playCount":120000},"video":{"duration":24}}
	]}}`)

	got := AnalyzeContentEvolution(top, oldest)

	if !got.Available {
		t.Fatalf("Available = false (%s), want true", got.Reason)
	}
	if got.GrowthMultiplier != 5 {
		t.Errorf("GrowthMultiplier = %v, want 5", got.GrowthMultiplier)
	}
	if got.Trajectory != "Steady growth" {
		t.Errorf("Trajectory = %q, want %q", got.Trajectory, "Steady growth")
	}
	if got.DurationShift != "Shifting toward longer videos" {
		t.Errorf("DurationShift = %q, want longer-videos shift", got.DurationShift)
	}
}

func TestAnalyzeContentEvolutionZeroDenominator(t *testing.T) {
	top := []byte(`{"videos":[{"stats":{"playCount":500000}}]}`)
	oldest := []byte(`{"videos":[{"stats":{"playCount":0}}]}`)

	got := AnalyzeContentEvolution(top, oldest)

	if !got.Available {
		t.Fatalf("Available = false (%s), want true", got.Reason)
	}
	if got.GrowthMultiplier != 0 {
		t.Errorf("GrowthMultiplier = %v, want 0", got.GrowthMultiplier)
	}
	if got.Trajectory != "Flat or declining" {
		t.Errorf("Trajectory = %q, want %q", got.Trajectory, "Flat or declining")
	}
}

func TestGrowthTrajectoryBuckets(t *testing.T) {
	tests := []struct {
		multiplier float64
		want       string
	}{
		{20, "Explosive growth"},
		{10, "Rapid growth"},
		{5.5, "Rapid growth"},
		{5, "Steady growth"},
		{2.1, "Steady growth"},
		{2, "Modest growth"},
		{1.5, "Modest growth"},
		{1, "Flat or declining"},
		{0, "Flat or declining"},
	}

	for _, tt := range tests {
		if got := growthTrajectory(tt.multiplier); got != tt.want {
			t.Errorf("growthTrajectory(%v) = %q, want %q", tt.multiplier, got, tt.want)
		}
	}
}

func TestDurationShiftTolerance(t *testing.T) {
	tests := []struct {
		top, old float64
		want     string
	}{
		{30, 30, "Consistent video length"},
		{34, 30, "Consistent video length"},
		{35, 30, "Consistent video length"},
		{36, 30, "Shifting toward longer videos"},
		{30, 36, "Shifting toward shorter videos"},
	}

	for _, tt := range tests {
		if got := durationShift(tt.top, tt.old); got != tt.want {
			t.Errorf("durationShift(%v, %v) = %q, want %q", tt.top, tt.old, got, tt.want)
		}
	}
}

func TestAnalyzeContentEvolutionSentinel(t *testing.T) {
	got := AnalyzeContentEvolution([]byte(`{"videos":[{"stats":{"playCount":1}}]}`), nil)
	if got.Available {
		t.Fatalf("Available = true, want sentinel when one set is missing")
	}
}
