// internal/service/analysis/music.go

package analysis

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"clipsight/internal/domain/analysis"
)

// trendingSoundPaths are the known trending-sound envelopes, in priority order.
var trendingSoundPaths = []string{"data.music_list", "music_list", "data.musicList", "musicList", "data.sound_list", "data"}

// AnalyzeMusicSaturation judges how crowded the subject's sound is based on
// the upstream-reported usage count, cross-referencing the trending-sounds
// list for a trending flag.
func AnalyzeMusicSaturation(soundInfo, trendingSounds json.RawMessage) analysis.MusicSaturationInsight {
	if len(soundInfo) == 0 {
		return analysis.MusicSaturationInsight{
			Available: false,
			Reason:    "Sound details unavailable for this video",
		}
	}

	v := gjson.ParseBytes(soundInfo)
	usage, found := firstNumber(v,
		"data.music.videoCount", "music.videoCount",
		"data.music.stats.videoCount",
		"data.videoCount", "videoCount", "video_count", "userCount")
	if !found {
		return analysis.MusicSaturationInsight{
			Available: false,
			Reason:    "Upstream did not report a usage count for this sound",
		}
	}

	title := firstString(v, "data.music.title", "music.title", "data.title", "title")
	id := firstString(v, "data.music.id", "music.id", "data.id", "id")

	sweet := usage > 5_000 && usage < 50_000

	return analysis.MusicSaturationInsight{
		Available:       true,
		Title:           title,
		UsageCount:      usage,
		SaturationLevel: saturationLevel(usage),
		IsSweetSpot:     sweet,
		IsTrending:      soundIsTrending(trendingSounds, id, title),
		Opportunity:     soundOpportunity(usage, sweet),
	}
}

// saturationLevel buckets the usage-video count.
func saturationLevel(usage float64) string {
	switch {
	case usage > 1_000_000:
		return "Oversaturated"
	case usage > 100_000:
		return "Highly Saturated"
	case usage > 10_000:
		return "Moderately Saturated"
	case usage > 1_000:
		return "Rising"
	default:
		return "Underutilized"
	}
}

// soundOpportunity translates the saturation picture into an opportunity
// statement. The sweet spot overrides the raw level.
func soundOpportunity(usage float64, sweet bool) string {
	if sweet {
		return "High - Sweet spot for discoverability!"
	}
	switch {
	case usage > 1_000_000:
		return "Low - this sound is past its peak"
	case usage > 100_000:
		return "Moderate - competition on this sound is heavy"
	case usage <= 1_000:
		return "Unproven - very little data on this sound"
	default:
		return "Moderate - sound still has room to grow"
	}
}

// soundIsTrending checks the trending-sounds list for a matching id or title.
func soundIsTrending(trendingSounds json.RawMessage, id, title string) bool {
	if id == "" && title == "" {
		return false
	}
	title = strings.ToLower(title)

	for _, entry := range extractList(trendingSounds, trendingSoundPaths...) {
		entryID := firstString(entry, "music.id", "id", "music_id")
		if id != "" && entryID == id {
			return true
		}
		entryTitle := strings.ToLower(firstString(entry, "music.title", "title", "music_title"))
		if title != "" && entryTitle == title {
			return true
		}
	}
	return false
}
