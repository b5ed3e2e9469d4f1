// internal/service/analysis/orchestrator.go

package analysis

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"clipsight/internal/domain/analysis"
)

// Stage names double as ResultBag keys and upstream endpoint names.
const (
	StageVideoDetail      = "primary-detail"
	StageComments         = "comments"
	StageRelatedContent   = "related-content"
	StageCreatorInfo      = "creator-info"
	StageCreatorTopPosts  = "creator-top-posts"
	StageCreatorLiked     = "creator-liked-posts"
	StageCreatorOldest    = "creator-oldest-posts"
	StageCreatorFollowers = "creator-followers"
	StageCreatorFollowing = "creator-followings"
	StageSoundInfo        = "sound-info"
	StageSoundPosts       = "sound-posts"
	StageHashtagInfo      = "hashtag-info"
	StageHashtagPosts     = "hashtag-posts"
	StageTrendingVideos   = "trending-content"
	StageTrendingSounds   = "trending-sounds"
	StageTrendingHashtags = "trending-hashtags"
	StageSearch           = "general-search"
)

// stageDef declares one upstream call: what it needs from the entity ref,
// the progress checkpoint to emit on completion, and whether it is
// explicitly independent of every other independent stage.
type stageDef struct {
	name        string
	message     string
	checkpoint  int
	independent bool
	params      func(ref *analysis.EntityRef) (map[string]string, bool)
}

// stagePlan is the fixed, ordered call sequence of a run. Checkpoints are
// hand-tuned to perceived cost of each call, not an equal division, and
// the last checkpoint leaves room for the closing 100% event.
var stagePlan = []stageDef{
	{
		name: StageComments, message: "Reading the comment section", checkpoint: 18,
		params: func(ref *analysis.EntityRef) (map[string]string, bool) {
			return map[string]string{"video_id": ref.VideoID}, true
		},
	},
	{
		name: StageRelatedContent, message: "Collecting related videos", checkpoint: 26,
		params: func(ref *analysis.EntityRef) (map[string]string, bool) {
			return map[string]string{"video_id": ref.VideoID}, true
		},
	},
	{
		name: StageCreatorInfo, message: "Fetching creator profile", checkpoint: 32,
		params: creatorParams,
	},
	{
		name: StageCreatorTopPosts, message: "Fetching creator top posts", checkpoint: 38,
		params: creatorParams,
	},
	{
		name: StageCreatorLiked, message: "Fetching creator liked posts", checkpoint: 43,
		params: creatorParams,
	},
	{
		name: StageCreatorOldest, message: "Fetching creator earliest posts", checkpoint: 48,
		params: creatorParams,
	},
	{
		name: StageCreatorFollowers, message: "Sampling follower network", checkpoint: 52,
		params: creatorParams,
	},
	{
		name: StageCreatorFollowing, message: "Sampling following network", checkpoint: 56,
		params: creatorParams,
	},
	{
		name: StageSoundInfo, message: "Looking up the sound", checkpoint: 61,
		params: soundParams,
	},
	{
		name: StageSoundPosts, message: "Collecting videos using this sound", checkpoint: 66,
		params: soundParams,
	},
	{
		name: StageHashtagInfo, message: "Looking up the primary hashtag", checkpoint: 70,
		params: hashtagParams,
	},
	{
		name: StageHashtagPosts, message: "Collecting videos for the hashtag", checkpoint: 74,
		params: hashtagParams,
	},
	{
		name: StageTrendingVideos, message: "Pulling trending videos for comparison", checkpoint: 80, independent: true,
		params: noParams,
	},
	{
		name: StageTrendingSounds, message: "Pulling trending sounds for comparison", checkpoint: 85, independent: true,
		params: noParams,
	},
	{
		name: StageTrendingHashtags, message: "Pulling trending hashtags for comparison", checkpoint: 90, independent: true,
		params: noParams,
	},
	{
		name: StageSearch, message: "Searching the niche", checkpoint: 96,
		params: func(ref *analysis.EntityRef) (map[string]string, bool) {
			if ref.Keyword == "" {
				return nil, false
			}
			return map[string]string{"keywords": ref.Keyword}, true
		},
	},
}

const videoDetailCheckpoint = 8

// Config tunes a single engine instance.
type Config struct {
	// StageTimeout bounds each upstream call. No retries.
	StageTimeout time.Duration

	// MaxParallel bounds fan-out of independent stages. Values below 1
	// force fully sequential execution.
	MaxParallel int
}

// Engine implements analysis.Engine. One Analyze call is one run; the
// engine itself holds no per-run state, so instances are safe for
// concurrent use.
type Engine struct {
	client analysis.EndpointClient
	config Config
}

// NewEngine creates a deep analysis engine on top of an endpoint client.
func NewEngine(client analysis.EndpointClient, config Config) *Engine {
	if config.StageTimeout <= 0 {
		config.StageTimeout = 15 * time.Second
	}
	if config.MaxParallel < 1 {
		config.MaxParallel = 1
	}
	return &Engine{
		client: client,
		config: config,
	}
}

// Analyze implements analysis.Engine.
func (e *Engine) Analyze(ctx context.Context, videoID string, sink analysis.ProgressSink) (*analysis.RunResult, error) {
	if sink == nil {
		sink = analysis.NopSink
	}
	progress := newProgressGuard(sink)
	progress.emit(0, "Starting deep analysis")

	ref := &analysis.EntityRef{VideoID: videoID}
	bag := analysis.NewResultBag()

	// The video detail stage is mandatory: its failure aborts the run and
	// is the only error that crosses the engine boundary.
	detail, err := e.fetch(ctx, StageVideoDetail, map[string]string{"video_id": videoID})
	if err != nil {
		return nil, &analysis.MandatoryStageError{Stage: StageVideoDetail, Err: err}
	}
	bag.Record(analysis.StageResult{Name: StageVideoDetail, Status: analysis.StageOK, Payload: detail})
	discoverIDs(ref, detail)
	progress.emit(videoDetailCheckpoint, "Fetching video details")

	// Every remaining stage is optional: failures are recorded and the run
	// moves on. Contiguous independent stages fan out under a bound.
	for i := 0; i < len(stagePlan); {
		if ctx.Err() != nil {
			break
		}
		if !stagePlan[i].independent {
			e.runStage(ctx, stagePlan[i], ref, bag, progress)
			i++
			continue
		}

		j := i
		for j < len(stagePlan) && stagePlan[j].independent {
			j++
		}
		e.runBatch(ctx, stagePlan[i:j], ref, bag, progress)
		i = j
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	insights := BuildInsights(bag)
	progress.emit(100, "Analysis complete")

	return &analysis.RunResult{
		Success:   true,
		Data:      bag,
		Insights:  insights,
		Timestamp: time.Now(),
	}, nil
}

// runStage executes one optional stage and records its outcome. Any
// upstream error is absorbed into a failed stage result.
func (e *Engine) runStage(ctx context.Context, def stageDef, ref *analysis.EntityRef, bag *analysis.ResultBag, progress *progressGuard) {
	bag.Record(e.executeStage(ctx, def, ref))
	progress.emit(def.checkpoint, def.message)
}

// runBatch fans out explicitly independent stages under the configured
// bound. Each stage still records its own result and emits its own
// checkpoint as it completes; the progress guard keeps percent monotone
// for the consumer regardless of completion order.
func (e *Engine) runBatch(ctx context.Context, defs []stageDef, ref *analysis.EntityRef, bag *analysis.ResultBag, progress *progressGuard) {
	if e.config.MaxParallel <= 1 || len(defs) == 1 {
		for _, def := range defs {
			e.runStage(ctx, def, ref, bag, progress)
		}
		return
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.config.MaxParallel)

	for _, def := range defs {
		def := def
		group.Go(func() error {
			res := e.executeStage(groupCtx, def, ref)

			mu.Lock()
			bag.Record(res)
			mu.Unlock()
			progress.emit(def.checkpoint, def.message)
			return nil
		})
	}
	group.Wait()
}

// executeStage resolves a stage's parameters and performs its fetch,
// translating the three possible outcomes into a StageResult.
func (e *Engine) executeStage(ctx context.Context, def stageDef, ref *analysis.EntityRef) analysis.StageResult {
	params, ok := def.params(ref)
	if !ok {
		return analysis.StageResult{
			Name:   def.name,
			Status: analysis.StageSkipped,
			Reason: "prerequisite id was not discovered",
		}
	}

	payload, err := e.fetch(ctx, def.name, params)
	if err != nil {
		log.Printf("Stage %s failed: %v", def.name, err)
		return analysis.StageResult{
			Name:   def.name,
			Status: analysis.StageFailed,
			Reason: err.Error(),
		}
	}

	return analysis.StageResult{
		Name:    def.name,
		Status:  analysis.StageOK,
		Payload: payload,
	}
}

// fetch performs one upstream call under the per-stage timeout.
func (e *Engine) fetch(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.config.StageTimeout)
	defer cancel()

	return e.client.Fetch(callCtx, endpoint, params)
}

// discoverIDs extracts the secondary ids later stages depend on from the
// primary video detail payload.
func discoverIDs(ref *analysis.EntityRef, detail []byte) {
	v := gjson.ParseBytes(detail)

	ref.CreatorID = firstString(v,
		"data.author.uniqueId", "author.uniqueId",
		"data.author.unique_id", "author.unique_id",
		"data.itemInfo.itemStruct.author.uniqueId",
		"data.author.id", "author.id")

	ref.SoundID = firstString(v,
		"data.music.id", "music.id",
		"data.itemInfo.itemStruct.music.id",
		"data.musicId", "musicId", "music_id")

	item := v
	if inner := v.Get("data"); inner.IsObject() {
		item = inner
	}
	if tags := videoHashtags(item); len(tags) > 0 {
		ref.PrimaryHashtag = tags[0]
	}

	// Search keyword: the primary hashtag when present, otherwise the
	// leading words of the description.
	if ref.PrimaryHashtag != "" {
		ref.Keyword = ref.PrimaryHashtag
	} else if desc := firstString(item, "desc", "description", "title"); desc != "" {
		words := strings.Fields(desc)
		if len(words) > 5 {
			words = words[:5]
		}
		ref.Keyword = strings.Join(words, " ")
	}
}

func creatorParams(ref *analysis.EntityRef) (map[string]string, bool) {
	if ref.CreatorID == "" {
		return nil, false
	}
	return map[string]string{"unique_id": ref.CreatorID}, true
}

func soundParams(ref *analysis.EntityRef) (map[string]string, bool) {
	if ref.SoundID == "" {
		return nil, false
	}
	return map[string]string{"music_id": ref.SoundID}, true
}

func hashtagParams(ref *analysis.EntityRef) (map[string]string, bool) {
	if ref.PrimaryHashtag == "" {
		return nil, false
	}
	return map[string]string{"challenge_name": ref.PrimaryHashtag}, true
}

func noParams(*analysis.EntityRef) (map[string]string, bool) {
	return map[string]string{}, true
}

// progressGuard serializes event emission and clamps percent so a consumer
// observes a non-decreasing sequence even when stages complete out of
// declared order.
type progressGuard struct {
	mu   sync.Mutex
	last int
	sink analysis.ProgressSink
}

func newProgressGuard(sink analysis.ProgressSink) *progressGuard {
	return &progressGuard{sink: sink}
}

func (g *progressGuard) emit(percent int, message string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if percent < g.last {
		percent = g.last
	}
	g.last = percent
	g.sink.OnProgress(percent, message)
}
