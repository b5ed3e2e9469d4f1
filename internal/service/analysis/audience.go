// internal/service/analysis/audience.go

package analysis

import (
	"encoding/json"
	"strings"

	"clipsight/internal/domain/analysis"
)

// commentListPaths are the known comment envelopes, in priority order.
var commentListPaths = []string{"data.comments", "comments", "data.commentList", "commentList", "data.itemList"}

var positiveKeywords = []string{
	"love", "amazing", "great", "awesome", "best", "beautiful",
	"perfect", "fire", "incredible", "obsessed", "goat", "🔥", "❤", "😍",
}

var negativeKeywords = []string{
	"hate", "bad", "worst", "boring", "cringe", "awful",
	"terrible", "fake", "annoying", "mid",
}

// themeRules map comment keywords to audience theme labels. Evaluated in
// order over the concatenated comment text; each label fires at most once.
var themeRules = []struct {
	keywords []string
	label    string
}{
	{[]string{"tutorial", "how to", "how do", "learn"}, "Viewers want to learn from this content"},
	{[]string{"funny", "lol", "hilarious", "😂"}, "Humor is a primary draw"},
	{[]string{"song", "music", "sound", "audio"}, "The sound is driving attention"},
	{[]string{"where", "link", "buy", "price"}, "Purchase intent in the audience"},
	{[]string{"fyp", "viral", "algorithm"}, "Algorithm-driven discovery"},
}

// AnalyzeAudience derives audience insight from the comments stage. A
// failed or empty comments fetch is indistinguishable from a video with no
// comments: both produce the "No comments available" sentinel.
func AnalyzeAudience(payload json.RawMessage) analysis.AudienceInsight {
	comments := extractList(payload, commentListPaths...)
	if len(comments) == 0 {
		return analysis.AudienceInsight{
			Available: false,
			Reason:    "No comments available",
		}
	}

	var totalLikes float64
	var allText strings.Builder
	for _, c := range comments {
		totalLikes += numberOrZero(c, "digg_count", "diggCount", "likeCount", "like_count")
		allText.WriteString(strings.ToLower(firstString(c, "text", "comment", "content", "desc")))
		allText.WriteString(" ")
	}
	avgLikes := totalLikes / float64(len(comments))
	text := allText.String()

	return analysis.AudienceInsight{
		Available:         true,
		CommentCount:      len(comments),
		AvgCommentLikes:   avgLikes,
		EngagementQuality: engagementQuality(avgLikes),
		Sentiment:         commentSentiment(text),
		Themes:            commentThemes(text),
	}
}

// engagementQuality buckets the average comment-like count.
func engagementQuality(avgLikes float64) string {
	switch {
	case avgLikes > 500:
		return "High"
	case avgLikes > 100:
		return "Medium"
	case avgLikes > 10:
		return "Low"
	default:
		return "Very Low"
	}
}

// commentSentiment classifies the concatenated comment text by keyword
// occurrence counts.
func commentSentiment(text string) string {
	var positive, negative int
	for _, kw := range positiveKeywords {
		positive += strings.Count(text, kw)
	}
	for _, kw := range negativeKeywords {
		negative += strings.Count(text, kw)
	}

	switch {
	case positive > 2*negative:
		return "Overwhelmingly positive"
	case positive > negative:
		return "Mostly positive"
	case negative > positive:
		return "Mixed to negative"
	default:
		return "Neutral"
	}
}

// commentThemes extracts recurring themes via fixed keyword rules.
func commentThemes(text string) []string {
	var themes []string
	for _, rule := range themeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				themes = append(themes, rule.label)
				break
			}
		}
	}
	return themes
}
