// internal/service/analysis/extract.go

package analysis

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// extractList digs the logical list out of an arbitrary upstream payload.
// Each upstream surface wraps the same entity in a different envelope, so
// resolution is an ordered fallback chain:
//
//  1. the value itself is an array
//  2. the first matching candidate path (per-domain priority order)
//  3. the first non-empty array value scanning keys in document order
//  4. an empty list
//
// It never fails; malformed input yields an empty list.
func extractList(raw json.RawMessage, paths ...string) []gjson.Result {
	if len(raw) == 0 {
		return nil
	}

	v := gjson.ParseBytes(raw)
	if v.IsArray() {
		return v.Array()
	}
	if !v.IsObject() {
		return nil
	}

	// Known envelope paths, first match wins.
	for _, path := range paths {
		if c := v.Get(path); c.IsArray() {
			return c.Array()
		}
	}

	// Last resort: scan top-level keys in document order.
	var found []gjson.Result
	v.ForEach(func(_, val gjson.Result) bool {
		if val.IsArray() {
			if arr := val.Array(); len(arr) > 0 {
				found = arr
				return false
			}
		}
		return true
	})
	return found
}

// firstString probes candidate paths on a parsed value and returns the
// first non-empty string.
func firstString(v gjson.Result, paths ...string) string {
	for _, path := range paths {
		if c := v.Get(path); c.Exists() {
			if s := c.String(); s != "" {
				return s
			}
		}
	}
	return ""
}

// firstNumber probes candidate paths on a parsed value and returns the
// first number present, even when it is zero.
func firstNumber(v gjson.Result, paths ...string) (float64, bool) {
	for _, path := range paths {
		if c := v.Get(path); c.Exists() {
			return c.Float(), true
		}
	}
	return 0, false
}

// numberOrZero is firstNumber without the presence flag.
func numberOrZero(v gjson.Result, paths ...string) float64 {
	n, _ := firstNumber(v, paths...)
	return n
}

// videoStats pulls the standard counter block out of a video item,
// tolerating the stat envelopes the different surfaces use.
func videoStats(item gjson.Result) (plays, likes, comments, shares float64) {
	plays = numberOrZero(item, "stats.playCount", "playCount", "play_count", "statistics.playCount")
	likes = numberOrZero(item, "stats.diggCount", "diggCount", "digg_count", "statistics.diggCount", "likeCount")
	comments = numberOrZero(item, "stats.commentCount", "commentCount", "comment_count", "statistics.commentCount")
	shares = numberOrZero(item, "stats.shareCount", "shareCount", "share_count", "statistics.shareCount")
	return plays, likes, comments, shares
}

// videoDuration pulls the clip duration in seconds from a video item.
func videoDuration(item gjson.Result) float64 {
	return numberOrZero(item, "video.duration", "duration", "video.length")
}

// videoHashtags collects hashtag names from a video item, preferring the
// structured textExtra block and falling back to scanning the description.
func videoHashtags(item gjson.Result) []string {
	var tags []string
	seen := make(map[string]bool)

	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	if extras := item.Get("textExtra"); extras.IsArray() {
		for _, extra := range extras.Array() {
			add(extra.Get("hashtagName").String())
		}
	}

	desc := firstString(item, "desc", "description", "title")
	for _, word := range strings.Fields(desc) {
		if strings.HasPrefix(word, "#") && len(word) > 1 {
			add(strings.Trim(word[1:], "#.,!?"))
		}
	}

	return tags
}
