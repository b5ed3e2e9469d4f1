// internal/service/analysis/recommend.go

package analysis

import (
	"sort"

	"clipsight/internal/domain/analysis"
)

// BuildRecommendations evaluates the fixed rule set over raw stats and the
// normalized insights. Rules fire independently and are not deduplicated;
// the result is stably sorted High before Medium before Low, preserving
// rule order within a tier.
func BuildRecommendations(
	virality analysis.ViralityInsight,
	music analysis.MusicSaturationInsight,
	audience analysis.AudienceInsight,
	alignment analysis.TrendAlignmentInsight,
	duration float64,
) []analysis.Recommendation {
	recs := []analysis.Recommendation{}

	if music.Available && music.UsageCount > 1_000_000 {
		recs = append(recs, analysis.Recommendation{
			Category:       "Sound Selection",
			Priority:       analysis.PriorityHigh,
			Action:         "Switch to a rising sound before reposting or creating a follow-up",
			ExpectedImpact: "+20-40% discoverability",
		})
	}

	if virality.Available && virality.CommentRate < 0.005 {
		recs = append(recs, analysis.Recommendation{
			Category:       "Engagement",
			Priority:       analysis.PriorityHigh,
			Action:         "Ask a direct question or add a comment prompt in the first three seconds",
			ExpectedImpact: "2-3x comment rate",
		})
	}

	if audience.Available && (audience.EngagementQuality == "Low" || audience.EngagementQuality == "Very Low") {
		recs = append(recs, analysis.Recommendation{
			Category:       "Community",
			Priority:       analysis.PriorityHigh,
			Action:         "Reply to top comments within the first hour of posting",
			ExpectedImpact: "Stronger comment-section signals to the algorithm",
		})
	}

	if virality.Available && virality.ShareRate < 0.008 {
		recs = append(recs, analysis.Recommendation{
			Category:       "Shareability",
			Priority:       analysis.PriorityMedium,
			Action:         "End with a moment worth sending to a friend",
			ExpectedImpact: "Up to 2x share rate",
		})
	}

	if duration > 60 {
		recs = append(recs, analysis.Recommendation{
			Category:       "Retention",
			Priority:       analysis.PriorityMedium,
			Action:         "Trim to under 60 seconds to lift completion rate",
			ExpectedImpact: "+15-25% completion",
		})
	}

	if alignment.Available && len(alignment.MatchedHashtags) == 0 {
		recs = append(recs, analysis.Recommendation{
			Category:       "Hashtags",
			Priority:       analysis.PriorityMedium,
			Action:         "Adopt one or two currently trending hashtags relevant to the niche",
			ExpectedImpact: "Improved discovery placement",
		})
	}

	if music.Available && music.IsSweetSpot {
		recs = append(recs, analysis.Recommendation{
			Category:       "Sound Selection",
			Priority:       analysis.PriorityLow,
			Action:         "Keep this sound - it sits in the discoverability sweet spot",
			ExpectedImpact: "Sustained reach while the sound grows",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	return recs
}
