package trending

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"clipsight/internal/cache"
)

type countingClient struct {
	calls    map[string]int
	err      error
	payloads map[string]string
}

func (c *countingClient) Fetch(_ context.Context, endpoint string, _ map[string]string) (json.RawMessage, error) {
	if c.calls == nil {
		c.calls = make(map[string]int)
	}
	c.calls[endpoint]++
	if c.err != nil {
		return nil, c.err
	}
	if payload, ok := c.payloads[endpoint]; ok {
		return json.RawMessage(payload), nil
	}
	return json.RawMessage(`{"itemList":[]}`), nil
}

func TestVideosCachesUpstreamResponse(t *testing.T) {
	client := &countingClient{payloads: map[string]string{"trending-content": `{"itemList":[1,2]}`}}
	c := cache.NewTTLCache(0)
	defer c.Close()
	svc := NewService(client, c, Config{CacheTTL: time.Minute})

	first, err := svc.Videos(context.Background())
	if err != nil {
		t.Fatalf("Videos returned error: %v", err)
	}
	second, err := svc.Videos(context.Background())
	if err != nil {
		t.Fatalf("Videos returned error on cached call: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("cached payload differs: %s vs %s", first, second)
	}
	if got := client.calls["trending-content"]; got != 1 {
		t.Errorf("upstream fetched %d times, want 1", got)
	}
}

func TestListsUseDistinctCacheKeys(t *testing.T) {
	client := &countingClient{}
	c := cache.NewTTLCache(0)
	defer c.Close()
	svc := NewService(client, c, Config{CacheTTL: time.Minute})

	ctx := context.Background()
	if _, err := svc.Videos(ctx); err != nil {
		t.Fatalf("Videos: %v", err)
	}
	if _, err := svc.Sounds(ctx); err != nil {
		t.Fatalf("Sounds: %v", err)
	}
	if _, err := svc.Hashtags(ctx); err != nil {
		t.Fatalf("Hashtags: %v", err)
	}

	for _, endpoint := range []string{"trending-content", "trending-sounds", "trending-hashtags"} {
		if got := client.calls[endpoint]; got != 1 {
			t.Errorf("endpoint %s fetched %d times, want 1", endpoint, got)
		}
	}
}

func TestFetchErrorIsNotCached(t *testing.T) {
	client := &countingClient{err: errors.New("upstream down")}
	c := cache.NewTTLCache(0)
	defer c.Close()
	svc := NewService(client, c, Config{CacheTTL: time.Minute})

	if _, err := svc.Sounds(context.Background()); err == nil {
		t.Fatalf("Sounds returned no error while upstream is down")
	}

	client.err = nil
	if _, err := svc.Sounds(context.Background()); err != nil {
		t.Fatalf("Sounds did not recover after upstream came back: %v", err)
	}
	if got := client.calls["trending-sounds"]; got != 2 {
		t.Errorf("upstream fetched %d times, want 2", got)
	}
}
