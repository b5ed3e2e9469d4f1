package analysis

import (
	"testing"

	"github.com/tidwall/gjson"
)

func parseItem(t *testing.T, raw string) gjson.Result {
	t.Helper()
	if !gjson.Valid(raw) {
		t.Fatalf("invalid test JSON: %s", raw)
	}
	return gjson.Parse(raw)
}

func TestExtractListBareArray(t *testing.T) {
	items := extractList([]byte(`[1,2,3]`), "data.items")
	if len(items) != 3 {
		t.Fatalf("extractList() returned %d items, want 3", len(items))
	}
}

func TestExtractListCandidatePaths(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		paths []string
		want  int
	}{
		{
			name:  "first path wins",
			raw:   `{"data":{"comments":[1,2]},"comments":[1,2,3]}`,
			paths: []string{"data.comments", "comments"},
			want:  2,
		},
		{
			name:  "falls through to second path",
			raw:   `{"comments":[1,2,3]}`,
			paths: []string{"data.comments", "comments"},
			want:  3,
		},
		{
			name:  "empty array at candidate path still wins",
			raw:   `{"comments":[],"other":[1,2]}`,
			paths: []string{"comments"},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractList([]byte(tt.raw), tt.paths...)
			if len(got) != tt.want {
				t.Errorf("extractList() returned %d items, want %d", len(got), tt.want)
			}
		})
	}
}

func TestExtractListKeyScanFallback(t *testing.T) {
	// No candidate path matches; the first non-empty array in document
	// order wins.
	got := extractList([]byte(`{"foo":[],"bar":[1,2,3]}`), "data.items")
	if len(got) != 3 {
		t.Fatalf("extractList() returned %d items, want 3", len(got))
	}
	if got[0].Int() != 1 {
		t.Errorf("first item = %v, want 1", got[0].Int())
	}
}

func TestExtractListNoArrays(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"only empty arrays", `{"foo":[]}`},
		{"no arrays at all", `{"foo":"bar","n":42}`},
		{"scalar", `42`},
		{"string", `"hello"`},
		{"null", `null`},
		{"malformed", `{"foo":`},
		{"empty input", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractList([]byte(tt.raw), "data.items"); len(got) != 0 {
				t.Errorf("extractList(%q) returned %d items, want 0", tt.raw, len(got))
			}
		})
	}
}

func TestVideoStatsEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"nested stats", `{"stats":{"playCount":100,"diggCount":10,"commentCount":5,"shareCount":2}}`},
		{"flat camelCase", `{"playCount":100,"diggCount":10,"commentCount":5,"shareCount":2}`},
		{"flat snake_case", `{"play_count":100,"digg_count":10,"comment_count":5,"share_count":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := parseItem(t, tt.raw)
			plays, likes, comments, shares := videoStats(item)
			if plays != 100 || likes != 10 || comments != 5 || shares != 2 {
				t.Errorf("videoStats() = %v,%v,%v,%v, want 100,10,5,2", plays, likes, comments, shares)
			}
		})
	}
}

func TestVideoHashtags(t *testing.T) {
	raw := `{"desc":"my video #Cooking #recipes","textExtra":[{"hashtagName":"cooking"},{"hashtagName":"food"}]}`
	got := videoHashtags(parseItem(t, raw))

	want := []string{"cooking", "food", "recipes"}
	if len(got) != len(want) {
		t.Fatalf("videoHashtags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("videoHashtags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
