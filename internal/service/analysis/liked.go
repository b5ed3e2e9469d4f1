// internal/service/analysis/liked.go

package analysis

import (
	"encoding/json"
	"sort"

	"clipsight/internal/domain/analysis"
)

// AnalyzeLikedPosts reads the creator's liked-content list to infer what
// they consume. Most accounts hide this list, so the sentinel is the
// common path.
func AnalyzeLikedPosts(payload json.RawMessage) analysis.LikedPostsInsight {
	liked := extractList(payload, postListPaths...)
	if len(liked) == 0 {
		return analysis.LikedPostsInsight{
			Available: false,
			Reason:    "Liked posts are private or empty for this account",
		}
	}

	var totalViews float64
	tagCounts := make(map[string]int)
	var tagOrder []string
	for _, item := range liked {
		plays, _, _, _ := videoStats(item)
		totalViews += plays
		for _, tag := range videoHashtags(item) {
			if tagCounts[tag] == 0 {
				tagOrder = append(tagOrder, tag)
			}
			tagCounts[tag]++
		}
	}

	// Most frequent hashtags first, first-seen order breaking ties.
	sort.SliceStable(tagOrder, func(i, j int) bool {
		return tagCounts[tagOrder[i]] > tagCounts[tagOrder[j]]
	})
	if len(tagOrder) > 5 {
		tagOrder = tagOrder[:5]
	}

	return analysis.LikedPostsInsight{
		Available:       true,
		SampleSize:      len(liked),
		AvgViews:        totalViews / float64(len(liked)),
		PreferredTopics: tagOrder,
	}
}
