// internal/domain/analysis/insights.go

package analysis

// InsightBundle is the fixed set of named insight slots produced by a run.
// Every slot is always present: either populated from upstream data or an
// explicit "insufficient data" sentinel carrying a human-readable reason.
// Consumers never need nil checks beyond the top-level success flag.
type InsightBundle struct {
	Audience         AudienceInsight         `json:"audience"`
	Competition      CompetitionInsight      `json:"competition"`
	CreatorStrategy  CreatorStrategyInsight  `json:"creator_strategy"`
	LikedPosts       LikedPostsInsight       `json:"liked_posts"`
	FollowerNetwork  FollowerNetworkInsight  `json:"follower_network"`
	MusicSaturation  MusicSaturationInsight  `json:"music_saturation"`
	ContentEvolution ContentEvolutionInsight `json:"content_evolution"`
	TrendAlignment   TrendAlignmentInsight   `json:"trend_alignment"`
	Virality         ViralityInsight         `json:"virality"`
	Recommendations  []Recommendation        `json:"recommendations"`
}

// AudienceInsight is derived from the comment section of the subject video.
type AudienceInsight struct {
	Available         bool     `json:"available"`
	Reason            string   `json:"reason,omitempty"`
	CommentCount      int      `json:"comment_count"`
	AvgCommentLikes   float64  `json:"avg_comment_likes"`
	EngagementQuality string   `json:"engagement_quality,omitempty"`
	Sentiment         string   `json:"sentiment,omitempty"`
	Themes            []string `json:"themes,omitempty"`
}

// CompetitionInsight summarizes related content competing for the same views.
type CompetitionInsight struct {
	Available         bool    `json:"available"`
	Reason            string  `json:"reason,omitempty"`
	SampleSize        int     `json:"sample_size"`
	AvgViews          float64 `json:"avg_views"`
	AvgLikes          float64 `json:"avg_likes"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	CompetitionLevel  string  `json:"competition_level,omitempty"`
	MarketPosition    string  `json:"market_position,omitempty"`
}

// CreatorStrategyInsight profiles how the creator operates.
type CreatorStrategyInsight struct {
	Available          bool    `json:"available"`
	Reason             string  `json:"reason,omitempty"`
	FollowerCount      float64 `json:"follower_count"`
	VideoCount         float64 `json:"video_count"`
	CreatorTier        string  `json:"creator_tier,omitempty"`
	EngagementRatio    float64 `json:"engagement_ratio"`
	EngagementStrength string  `json:"engagement_strength,omitempty"`
	PostingProfile     string  `json:"posting_profile,omitempty"`
	AvgTopPostViews    float64 `json:"avg_top_post_views"`
}

// LikedPostsInsight describes the creator's own content preferences.
type LikedPostsInsight struct {
	Available       bool     `json:"available"`
	Reason          string   `json:"reason,omitempty"`
	SampleSize      int      `json:"sample_size"`
	AvgViews        float64  `json:"avg_views"`
	PreferredTopics []string `json:"preferred_topics,omitempty"`
}

// FollowerNetworkInsight describes the shape of the creator's network.
type FollowerNetworkInsight struct {
	Available      bool    `json:"available"`
	Reason         string  `json:"reason,omitempty"`
	FollowerCount  float64 `json:"follower_count"`
	FollowingCount float64 `json:"following_count"`
	Ratio          float64 `json:"ratio"`
	NetworkShape   string  `json:"network_shape,omitempty"`
}

// MusicSaturationInsight judges how crowded the subject's sound is.
type MusicSaturationInsight struct {
	Available       bool    `json:"available"`
	Reason          string  `json:"reason,omitempty"`
	Title           string  `json:"title,omitempty"`
	UsageCount      float64 `json:"usage_count"`
	SaturationLevel string  `json:"saturation_level,omitempty"`
	IsSweetSpot     bool    `json:"is_sweet_spot"`
	IsTrending      bool    `json:"is_trending"`
	Opportunity     string  `json:"opportunity,omitempty"`
}

// ContentEvolutionInsight compares the creator's top posts to their oldest.
type ContentEvolutionInsight struct {
	Available        bool    `json:"available"`
	Reason           string  `json:"reason,omitempty"`
	GrowthMultiplier float64 `json:"growth_multiplier"`
	Trajectory       string  `json:"trajectory,omitempty"`
	AvgTopDuration   float64 `json:"avg_top_duration"`
	AvgOldDuration   float64 `json:"avg_old_duration"`
	DurationShift    string  `json:"duration_shift,omitempty"`
}

// TrendAlignmentInsight measures overlap with currently trending hashtags
// and sounds.
type TrendAlignmentInsight struct {
	Available       bool     `json:"available"`
	Reason          string   `json:"reason,omitempty"`
	VideoHashtags   []string `json:"video_hashtags,omitempty"`
	MatchedHashtags []string `json:"matched_hashtags,omitempty"`
	Alignment       string   `json:"alignment,omitempty"`
	SoundIsTrending bool     `json:"sound_is_trending"`
}

// ViralityInsight breaks the subject's raw stats into virality factors.
type ViralityInsight struct {
	Available           bool    `json:"available"`
	Reason              string  `json:"reason,omitempty"`
	PlayCount           float64 `json:"play_count"`
	LikeRate            float64 `json:"like_rate"`
	CommentRate         float64 `json:"comment_rate"`
	ShareRate           float64 `json:"share_rate"`
	TotalEngagementRate float64 `json:"total_engagement_rate"`
	HookStrength        string  `json:"hook_strength,omitempty"`
	Shareability        string  `json:"shareability,omitempty"`
	Engagement          string  `json:"engagement,omitempty"`
	ViralPotential      string  `json:"viral_potential,omitempty"`
	CompletionRate      float64 `json:"completion_rate"`
	RewatchValue        string  `json:"rewatch_value,omitempty"`
}
