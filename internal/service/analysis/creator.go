// internal/service/analysis/creator.go

package analysis

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"clipsight/internal/domain/analysis"
)

// creatorStatPaths probe the differently-shaped profile envelopes the
// creator surfaces return.
var (
	followerCountPaths = []string{
		"data.user.stats.followerCount", "userInfo.stats.followerCount",
		"data.stats.followerCount", "stats.followerCount",
		"data.followerCount", "followerCount", "follower_count",
	}
	followingCountPaths = []string{
		"data.user.stats.followingCount", "userInfo.stats.followingCount",
		"data.stats.followingCount", "stats.followingCount",
		"data.followingCount", "followingCount", "following_count",
	}
	heartCountPaths = []string{
		"data.user.stats.heartCount", "userInfo.stats.heartCount",
		"data.stats.heartCount", "stats.heartCount",
		"data.heartCount", "heartCount", "heart_count", "total_favorited",
	}
	videoCountPaths = []string{
		"data.user.stats.videoCount", "userInfo.stats.videoCount",
		"data.stats.videoCount", "stats.videoCount",
		"data.videoCount", "videoCount", "video_count", "aweme_count",
	}
)

// AnalyzeCreatorStrategy profiles how the creator operates from their
// profile stats and top posts.
func AnalyzeCreatorStrategy(creatorInfo, topPosts json.RawMessage) analysis.CreatorStrategyInsight {
	if len(creatorInfo) == 0 {
		return analysis.CreatorStrategyInsight{
			Available: false,
			Reason:    "Creator profile unavailable (private account or API limitation)",
		}
	}

	v := gjson.ParseBytes(creatorInfo)
	followers, found := firstNumber(v, followerCountPaths...)
	if !found {
		return analysis.CreatorStrategyInsight{
			Available: false,
			Reason:    "Creator profile has no published stats",
		}
	}

	hearts := numberOrZero(v, heartCountPaths...)
	videoCount := numberOrZero(v, videoCountPaths...)

	ratio := 0.0
	if followers > 0 {
		ratio = hearts / followers
	}

	var avgTopViews float64
	if top := extractList(topPosts, postListPaths...); len(top) > 0 {
		avgTopViews, _ = averageViewsAndDuration(top)
	}

	return analysis.CreatorStrategyInsight{
		Available:          true,
		FollowerCount:      followers,
		VideoCount:         videoCount,
		CreatorTier:        creatorTier(followers),
		EngagementRatio:    ratio,
		EngagementStrength: engagementStrength(ratio),
		PostingProfile:     postingProfile(videoCount),
		AvgTopPostViews:    avgTopViews,
	}
}

// creatorTier buckets the account by follower count.
func creatorTier(followers float64) string {
	switch {
	case followers > 1_000_000:
		return "Mega"
	case followers > 100_000:
		return "Macro"
	case followers > 10_000:
		return "Mid-tier"
	case followers > 1_000:
		return "Micro"
	default:
		return "Nano"
	}
}

// engagementStrength buckets total hearts relative to follower count.
func engagementStrength(ratio float64) string {
	switch {
	case ratio > 10:
		return "Exceptional"
	case ratio > 5:
		return "Strong"
	case ratio > 1:
		return "Average"
	default:
		return "Low"
	}
}

// postingProfile buckets the published video count.
func postingProfile(videoCount float64) string {
	switch {
	case videoCount > 500:
		return "High-volume publisher"
	case videoCount > 100:
		return "Consistent publisher"
	case videoCount > 20:
		return "Developing catalog"
	default:
		return "Early-stage account"
	}
}
