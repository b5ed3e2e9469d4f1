// internal/service/analysis/competition.go

package analysis

import (
	"encoding/json"

	"clipsight/internal/domain/analysis"
)

// relatedListPaths are the known related-video envelopes, in priority order.
var relatedListPaths = []string{"data.itemList", "itemList", "data.videos", "videos", "data.item_list"}

// AnalyzeCompetition summarizes the related-content set competing for the
// same audience.
func AnalyzeCompetition(payload json.RawMessage) analysis.CompetitionInsight {
	items := extractList(payload, relatedListPaths...)
	if len(items) == 0 {
		return analysis.CompetitionInsight{
			Available: false,
			Reason:    "No related videos returned for this niche",
		}
	}

	var totalViews, totalLikes, totalEngagement float64
	for _, item := range items {
		plays, likes, comments, shares := videoStats(item)
		totalViews += plays
		totalLikes += likes
		if plays > 0 {
			totalEngagement += (likes + comments + shares) / plays
		}
	}

	n := float64(len(items))
	avgViews := totalViews / n

	return analysis.CompetitionInsight{
		Available:         true,
		SampleSize:        len(items),
		AvgViews:          avgViews,
		AvgLikes:          totalLikes / n,
		AvgEngagementRate: totalEngagement / n,
		CompetitionLevel:  competitionLevel(avgViews),
		MarketPosition:    marketPosition(avgViews),
	}
}

// competitionLevel buckets the average view count of the related set.
func competitionLevel(avgViews float64) string {
	switch {
	case avgViews > 5_000_000:
		return "Very High"
	case avgViews > 1_000_000:
		return "High"
	case avgViews > 100_000:
		return "Medium"
	default:
		return "Low"
	}
}

// marketPosition labels the niche from the same average.
func marketPosition(avgViews float64) string {
	switch {
	case avgViews > 5_000_000:
		return "Dominated by mega-viral content"
	case avgViews > 1_000_000:
		return "Crowded, high-performing niche"
	case avgViews > 100_000:
		return "Competitive but open"
	default:
		return "Low competition - room to stand out"
	}
}
