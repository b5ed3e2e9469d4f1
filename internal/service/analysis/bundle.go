// internal/service/analysis/bundle.go

package analysis

import (
	"github.com/tidwall/gjson"

	"clipsight/internal/domain/analysis"
)

// BuildInsights runs every normalizer over the completed result bag and
// assembles the fully-shaped bundle. Each normalizer only ever sees the
// payload of a successful stage; failed and skipped stages arrive as nil
// and produce the normalizer's sentinel.
func BuildInsights(bag *analysis.ResultBag) *analysis.InsightBundle {
	primary := bag.Payload(StageVideoDetail)

	audience := AnalyzeAudience(bag.Payload(StageComments))
	virality := AnalyzeVirality(primary)
	music := AnalyzeMusicSaturation(bag.Payload(StageSoundInfo), bag.Payload(StageTrendingSounds))
	alignment := AnalyzeTrendAlignment(primary, bag.Payload(StageTrendingHashtags), bag.Payload(StageTrendingSounds))

	return &analysis.InsightBundle{
		Audience:        audience,
		Competition:     AnalyzeCompetition(bag.Payload(StageRelatedContent)),
		CreatorStrategy: AnalyzeCreatorStrategy(bag.Payload(StageCreatorInfo), bag.Payload(StageCreatorTopPosts)),
		LikedPosts:      AnalyzeLikedPosts(bag.Payload(StageCreatorLiked)),
		FollowerNetwork: AnalyzeFollowerNetwork(
			bag.Payload(StageCreatorInfo),
			bag.Payload(StageCreatorFollowers),
			bag.Payload(StageCreatorFollowing),
		),
		MusicSaturation:  music,
		ContentEvolution: AnalyzeContentEvolution(bag.Payload(StageCreatorTopPosts), bag.Payload(StageCreatorOldest)),
		TrendAlignment:   alignment,
		Virality:         virality,
		Recommendations:  BuildRecommendations(virality, music, audience, alignment, primaryDuration(primary)),
	}
}

// primaryDuration reads the subject clip's duration off the primary detail
// payload for the recommendation rules.
func primaryDuration(primary []byte) float64 {
	if len(primary) == 0 {
		return 0
	}
	v := gjson.ParseBytes(primary)
	item := v
	if inner := v.Get("data"); inner.IsObject() {
		item = inner
	}
	return videoDuration(item)
}
