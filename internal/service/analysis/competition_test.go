package analysis

import "testing"

func TestAnalyzeCompetitionAverages(t *testing.T) {
	payload := []byte(`{"data":{"itemList":[
		{"stats":{"playCount":2000000,"diggCount":100000,"commentCount":10000,"shareCount":10000}},
		{"stats":{"playCount":4000000,"diggCount":200000,"commentCount":20000,"shareCount":20000}}
	]}}`)

	got := AnalyzeCompetition(payload)

	if !got.Available {
		t.Fatalf("Available = false (%s), want true", got.Reason)
	}
	if got.SampleSize != 2 {
		t.Errorf("SampleSize = %d, want 2", got.SampleSize)
	}
	if got.AvgViews != 3_000_000 {
		t.Errorf("AvgViews = %v, want 3000000", got.AvgViews)
	}
	if got.AvgLikes != 150_000 {
		t.Errorf("AvgLikes = %v, want 150000", got.AvgLikes)
	}
	if !almostEqual(got.AvgEngagementRate, 0.06) {
		t.Errorf("AvgEngagementRate = %v, want 0.06", got.AvgEngagementRate)
	}
	if got.CompetitionLevel != "High" {
		t.Errorf("CompetitionLevel = %q, want %q", got.CompetitionLevel, "High")
	}
}

func TestCompetitionLevelBuckets(t *testing.T) {
	tests := []struct {
		avgViews float64
		want     string
	}{
		{6_000_000, "Very High"},
		{5_000_000, "High"},
		{1_000_001, "High"},
		{1_000_000, "Medium"},
		{100_001, "Medium"},
		{100_000, "Low"},
		{0, "Low"},
	}

	for _, tt := range tests {
		if got := competitionLevel(tt.avgViews); got != tt.want {
			t.Errorf("competitionLevel(%v) = %q, want %q", tt.avgViews, got, tt.want)
		}
	}
}

func TestAnalyzeCompetitionSentinel(t *testing.T) {
	got := AnalyzeCompetition(nil)
	if got.Available {
		t.Fatalf("Available = true, want sentinel")
	}
	if got.Reason == "" {
		t.Errorf("sentinel has empty Reason")
	}
}
