package analysis

import (
	"testing"

	"clipsight/internal/domain/analysis"
)

func TestBuildRecommendationsRules(t *testing.T) {
	virality := analysis.ViralityInsight{
		Available:   true,
		CommentRate: 0.001,
		ShareRate:   0.002,
	}
	music := analysis.MusicSaturationInsight{
		Available:  true,
		UsageCount: 2_000_000,
	}
	audience := analysis.AudienceInsight{
		Available:         true,
		EngagementQuality: "Very Low",
	}
	alignment := analysis.TrendAlignmentInsight{
		Available:       true,
		MatchedHashtags: nil,
	}

	recs := BuildRecommendations(virality, music, audience, alignment, 90)

	if len(recs) != 6 {
		t.Fatalf("got %d recommendations, want 6: %+v", len(recs), recs)
	}

	wantHigh := 0
	for _, rec := range recs {
		if rec.Priority == analysis.PriorityHigh {
			wantHigh++
		}
	}
	if wantHigh != 3 {
		t.Errorf("got %d High recommendations, want 3", wantHigh)
	}
}

func TestBuildRecommendationsSortIsStableByPriority(t *testing.T) {
	virality := analysis.ViralityInsight{Available: true, CommentRate: 0.001, ShareRate: 0.001}
	music := analysis.MusicSaturationInsight{Available: true, UsageCount: 25_000, IsSweetSpot: true}

	recs := BuildRecommendations(virality, music, analysis.AudienceInsight{}, analysis.TrendAlignmentInsight{}, 0)

	lastRank := -1
	for i, rec := range recs {
		rank := rec.Priority.Rank()
		if rank < lastRank {
			t.Fatalf("recommendation %d (%s) has priority %s after a lower-priority item", i, rec.Category, rec.Priority)
		}
		lastRank = rank
	}

	// High CTA rule precedes the Medium shareability rule, which precedes
	// the Low sweet-spot rule.
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3: %+v", len(recs), recs)
	}
	if recs[0].Priority != analysis.PriorityHigh || recs[0].Category != "Engagement" {
		t.Errorf("recs[0] = %s/%s, want High/Engagement", recs[0].Priority, recs[0].Category)
	}
	if recs[1].Priority != analysis.PriorityMedium || recs[1].Category != "Shareability" {
		t.Errorf("recs[1] = %s/%s, want Medium/Shareability", recs[1].Priority, recs[1].Category)
	}
	if recs[2].Priority != analysis.PriorityLow || recs[2].Category != "Sound Selection" {
		t.Errorf("recs[2] = %s/%s, want Low/Sound Selection", recs[2].Priority, recs[2].Category)
	}
}

func TestBuildRecommendationsEmptyInputs(t *testing.T) {
	recs := BuildRecommendations(
		analysis.ViralityInsight{},
		analysis.MusicSaturationInsight{},
		analysis.AudienceInsight{},
		analysis.TrendAlignmentInsight{},
		0,
	)
	if len(recs) != 0 {
		t.Errorf("got %d recommendations from unavailable insights, want 0", len(recs))
	}
	if recs == nil {
		t.Errorf("recommendations should be an empty slice, not nil")
	}
}
