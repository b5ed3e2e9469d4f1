package analysis

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAnalyzeTrendAlignment(t *testing.T) {
	primary := json.RawMessage(`{"data":{
		"desc":"tonight's dinner #cooking #recipe #asmr",
		"music":{"id":"m-1","title":"Kitchen Beat"}
	}}`)
	trendingHashtags := json.RawMessage(`{"data":{"hashtagList":[
		{"hashtagName":"cooking"},
		{"hashtagName":"dance"},
		{"hashtagName":"ASMR"}
	]}}`)
	trendingSounds := json.RawMessage(`{"data":{"musicList":[{"id":"m-1","title":"Kitchen Beat"}]}}`)

	got := AnalyzeTrendAlignment(primary, trendingHashtags, trendingSounds)
	if !got.Available {
		t.Fatalf("insight unavailable: %s", got.Reason)
	}
	if want := []string{"cooking", "asmr"}; !reflect.DeepEqual(got.MatchedHashtags, want) {
		t.Errorf("MatchedHashtags = %v, want %v", got.MatchedHashtags, want)
	}
	if got.Alignment != "Partially aligned with current trends" {
		t.Errorf("Alignment = %q", got.Alignment)
	}
	if !got.SoundIsTrending {
		t.Errorf("SoundIsTrending = false, want true")
	}
}

func TestAnalyzeTrendAlignmentOffTrend(t *testing.T) {
	primary := json.RawMessage(`{"data":{"desc":"#woodworking"}}`)
	trendingHashtags := json.RawMessage(`{"hashtagList":[{"hashtagName":"dance"}]}`)

	got := AnalyzeTrendAlignment(primary, trendingHashtags, nil)
	if !got.Available {
		t.Fatalf("insight unavailable: %s", got.Reason)
	}
	if len(got.MatchedHashtags) != 0 {
		t.Errorf("MatchedHashtags = %v, want none", got.MatchedHashtags)
	}
	if got.Alignment != "Off-trend" {
		t.Errorf("Alignment = %q, want Off-trend", got.Alignment)
	}
	if got.SoundIsTrending {
		t.Errorf("SoundIsTrending = true with no trending sound data")
	}
}

func TestAnalyzeTrendAlignmentSentinel(t *testing.T) {
	for _, payload := range []string{"", `{}`, `{"data":{"hashtagList":[]}}`} {
		got := AnalyzeTrendAlignment(json.RawMessage(`{"data":{}}`), json.RawMessage(payload), nil)
		if got.Available {
			t.Errorf("payload %q: insight available, want sentinel", payload)
		}
		if got.Reason != "Trending hashtag data unavailable" {
			t.Errorf("payload %q: Reason = %q", payload, got.Reason)
		}
	}
}

func TestAlignmentLevelBuckets(t *testing.T) {
	tests := []struct {
		matches int
		want    string
	}{
		{4, "Strongly aligned with current trends"},
		{3, "Strongly aligned with current trends"},
		{1, "Partially aligned with current trends"},
		{0, "Off-trend"},
	}
	for _, tt := range tests {
		if got := alignmentLevel(tt.matches); got != tt.want {
			t.Errorf("alignmentLevel(%d) = %q, want %q", tt.matches, got, tt.want)
		}
	}
}
