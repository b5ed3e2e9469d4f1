// internal/service/analysis/evolution.go

package analysis

import (
	"encoding/json"
	"math"

	"github.com/tidwall/gjson"

	"clipsight/internal/domain/analysis"
)

// postListPaths are the known creator-post envelopes, in priority order.
var postListPaths = []string{"data.videos", "videos", "data.itemList", "itemList", "data.aweme_list", "aweme_list"}

// durationShiftTolerance is the band, in seconds, within which average clip
// lengths of the two sets are considered unchanged.
const durationShiftTolerance = 5.0

// AnalyzeContentEvolution compares the creator's top posts to their oldest
// to read the account's trajectory.
func AnalyzeContentEvolution(topPosts, oldestPosts json.RawMessage) analysis.ContentEvolutionInsight {
	top := extractList(topPosts, postListPaths...)
	oldest := extractList(oldestPosts, postListPaths...)

	if len(top) == 0 || len(oldest) == 0 {
		return analysis.ContentEvolutionInsight{
			Available: false,
			Reason:    "Not enough posting history to compare",
		}
	}

	topViews, topDuration := averageViewsAndDuration(top)
	oldViews, oldDuration := averageViewsAndDuration(oldest)

	multiplier := 0.0
	if oldViews > 0 {
		multiplier = topViews / oldViews
	}

	return analysis.ContentEvolutionInsight{
		Available:        true,
		GrowthMultiplier: multiplier,
		Trajectory:       growthTrajectory(multiplier),
		AvgTopDuration:   topDuration,
		AvgOldDuration:   oldDuration,
		DurationShift:    durationShift(topDuration, oldDuration),
	}
}

// averageViewsAndDuration computes mean play count and clip length for a
// set of posts.
func averageViewsAndDuration(items []gjson.Result) (views, duration float64) {
	for _, item := range items {
		plays, _, _, _ := videoStats(item)
		views += plays
		duration += videoDuration(item)
	}
	n := float64(len(items))
	return views / n, duration / n
}

// growthTrajectory buckets the top-to-oldest view multiplier.
func growthTrajectory(multiplier float64) string {
	switch {
	case multiplier > 10:
		return "Explosive growth"
	case multiplier > 5:
		return "Rapid growth"
	case multiplier > 2:
		return "Steady growth"
	case multiplier > 1:
		return "Modest growth"
	default:
		return "Flat or declining"
	}
}

// durationShift compares average clip lengths with a tolerance band.
func durationShift(topDuration, oldDuration float64) string {
	diff := topDuration - oldDuration
	if math.Abs(diff) <= durationShiftTolerance {
		return "Consistent video length"
	}
	if diff > 0 {
		return "Shifting toward longer videos"
	}
	return "Shifting toward shorter videos"
}
