// internal/service/analysis/trendalign.go

package analysis

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"clipsight/internal/domain/analysis"
)

// trendingHashtagPaths are the known trending-hashtag envelopes, in priority order.
var trendingHashtagPaths = []string{"data.hashtagList", "hashtagList", "data.challenge_list", "challenge_list", "data.list", "data"}

// AnalyzeTrendAlignment measures how much the subject rides currently
// trending hashtags and sounds.
func AnalyzeTrendAlignment(primary, trendingHashtags, trendingSounds json.RawMessage) analysis.TrendAlignmentInsight {
	trending := extractList(trendingHashtags, trendingHashtagPaths...)
	if len(trending) == 0 {
		return analysis.TrendAlignmentInsight{
			Available: false,
			Reason:    "Trending hashtag data unavailable",
		}
	}

	v := gjson.ParseBytes(primary)
	item := v
	if inner := v.Get("data"); inner.IsObject() {
		item = inner
	}
	tags := videoHashtags(item)

	trendingNames := make(map[string]bool, len(trending))
	for _, entry := range trending {
		name := firstString(entry, "hashtagName", "challengeInfo.challengeName", "title", "name", "cha_name")
		name = strings.ToLower(strings.TrimPrefix(name, "#"))
		if name != "" {
			trendingNames[name] = true
		}
	}

	var matched []string
	for _, tag := range tags {
		if trendingNames[tag] {
			matched = append(matched, tag)
		}
	}

	soundID := firstString(item, "music.id", "musicId", "music_id")
	soundTitle := firstString(item, "music.title", "music_title")

	return analysis.TrendAlignmentInsight{
		Available:       true,
		VideoHashtags:   tags,
		MatchedHashtags: matched,
		Alignment:       alignmentLevel(len(matched)),
		SoundIsTrending: soundIsTrending(trendingSounds, soundID, soundTitle),
	}
}

// alignmentLevel buckets the trending-hashtag overlap count.
func alignmentLevel(matches int) string {
	switch {
	case matches >= 3:
		return "Strongly aligned with current trends"
	case matches >= 1:
		return "Partially aligned with current trends"
	default:
		return "Off-trend"
	}
}
