package analysis

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAnalyzeLikedPosts(t *testing.T) {
	payload := json.RawMessage(`{"data":{"itemList":[
		{"stats":{"playCount":1000},"desc":"#fitness #gym"},
		{"stats":{"playCount":3000},"desc":"#fitness #meal"},
		{"stats":{"playCount":2000},"desc":"#gym #fitness"}
	]}}`)

	got := AnalyzeLikedPosts(payload)
	if !got.Available {
		t.Fatalf("insight unavailable: %s", got.Reason)
	}
	if got.SampleSize != 3 {
		t.Errorf("SampleSize = %d, want 3", got.SampleSize)
	}
	if !almostEqual(got.AvgViews, 2000) {
		t.Errorf("AvgViews = %v, want 2000", got.AvgViews)
	}
	// fitness appears three times, gym twice, meal once.
	want := []string{"fitness", "gym", "meal"}
	if !reflect.DeepEqual(got.PreferredTopics, want) {
		t.Errorf("PreferredTopics = %v, want %v", got.PreferredTopics, want)
	}
}

func TestAnalyzeLikedPostsCapsTopicsAtFive(t *testing.T) {
	payload := json.RawMessage(`{"itemList":[
		{"desc":"#a #b #c #d #e #f #g"}
	]}`)

	got := AnalyzeLikedPosts(payload)
	if !got.Available {
		t.Fatalf("insight unavailable: %s", got.Reason)
	}
	if len(got.PreferredTopics) != 5 {
		t.Errorf("got %d topics, want 5: %v", len(got.PreferredTopics), got.PreferredTopics)
	}
}

func TestAnalyzeLikedPostsSentinel(t *testing.T) {
	for _, payload := range []string{"", `{}`, `{"data":{"itemList":[]}}`} {
		got := AnalyzeLikedPosts(json.RawMessage(payload))
		if got.Available {
			t.Errorf("payload %q: insight available, want sentinel", payload)
		}
		if got.Reason != "Liked posts are private or empty for this account" {
			t.Errorf("payload %q: Reason = %q", payload, got.Reason)
		}
	}
}
