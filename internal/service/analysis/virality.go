// internal/service/analysis/virality.go

package analysis

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"clipsight/internal/domain/analysis"
)

// AnalyzeVirality breaks the subject's raw counters into virality factors.
// All rates are simple ratios to play count.
func AnalyzeVirality(payload json.RawMessage) analysis.ViralityInsight {
	if len(payload) == 0 {
		return analysis.ViralityInsight{
			Available: false,
			Reason:    "Video stats unavailable",
		}
	}

	v := gjson.ParseBytes(payload)
	item := v
	if inner := v.Get("data"); inner.IsObject() {
		item = inner
	}

	plays, likes, comments, shares := videoStats(item)
	if plays == 0 {
		return analysis.ViralityInsight{
			Available: false,
			Reason:    "Video has no recorded plays yet",
		}
	}

	likeRate := likes / plays
	commentRate := comments / plays
	shareRate := shares / plays
	totalRate := (likes + comments + shares) / plays

	duration := videoDuration(item)
	completion := estimatedCompletionRate(duration)

	return analysis.ViralityInsight{
		Available:           true,
		PlayCount:           plays,
		LikeRate:            likeRate,
		CommentRate:         commentRate,
		ShareRate:           shareRate,
		TotalEngagementRate: totalRate,
		HookStrength:        hookStrength(plays),
		Shareability:        shareability(shareRate),
		Engagement:          engagementLevel(totalRate),
		ViralPotential:      viralPotential(shareRate, likeRate, plays),
		CompletionRate:      completion,
		RewatchValue:        rewatchValue(completion),
	}
}

// hookStrength classifies by absolute play count.
func hookStrength(plays float64) string {
	switch {
	case plays > 1_000_000:
		return "Strong"
	case plays > 100_000:
		return "Moderate"
	default:
		return "Weak"
	}
}

// shareability classifies by share rate.
func shareability(shareRate float64) string {
	switch {
	case shareRate > 0.02:
		return "High"
	case shareRate > 0.008:
		return "Moderate"
	default:
		return "Low"
	}
}

// engagementLevel classifies by total engagement rate.
func engagementLevel(totalRate float64) string {
	switch {
	case totalRate > 0.08:
		return "High"
	case totalRate > 0.03:
		return "Moderate"
	default:
		return "Low"
	}
}

// viralPotential requires share rate, like rate and play count minimums in
// conjunction; a single strong factor is not enough.
func viralPotential(shareRate, likeRate, plays float64) string {
	switch {
	case shareRate > 0.015 && likeRate > 0.05 && plays > 500_000:
		return "High"
	case shareRate > 0.008 && plays > 100_000:
		return "Moderate"
	default:
		return "Low"
	}
}

// estimatedCompletionRate approximates how much of the clip an average
// viewer finishes. Sixty seconds is treated as the fully-watchable length;
// unknown durations get a neutral estimate.
func estimatedCompletionRate(duration float64) float64 {
	if duration <= 0 {
		return 0.5
	}
	rate := 60 / duration
	if rate > 1 {
		rate = 1
	}
	if rate < 0.1 {
		rate = 0.1
	}
	return rate
}

// rewatchValue buckets the estimated completion rate.
func rewatchValue(completion float64) string {
	switch {
	case completion > 0.7:
		return "High"
	case completion > 0.4:
		return "Moderate"
	default:
		return "Low"
	}
}
