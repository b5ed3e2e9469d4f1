// internal/domain/analysis/model.go

package analysis

import (
	"encoding/json"
	"time"
)

// EntityRef identifies the subject of a run. Secondary ids are discovered
// mid-run once the primary video detail stage has succeeded.
type EntityRef struct {
	VideoID        string
	CreatorID      string
	SoundID        string
	PrimaryHashtag string
	Keyword        string
}

// StageStatus describes the outcome of a single stage.
type StageStatus string

const (
	StageOK      StageStatus = "ok"
	StageFailed  StageStatus = "failed"
	StageSkipped StageStatus = "skipped"
)

// StageResult records the outcome of one upstream fetch. Immutable once
// recorded in the ResultBag.
type StageResult struct {
	Name    string          `json:"name"`
	Status  StageStatus     `json:"status"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Reason  string          `json:"reason,omitempty"`
}

// ResultBag holds all stage results of a single run in insertion order.
// It is owned by the orchestrator while a run is in flight and becomes
// read-only input to the insight normalizers afterwards.
type ResultBag struct {
	order   []string
	results map[string]StageResult
}

// NewResultBag creates an empty result bag.
func NewResultBag() *ResultBag {
	return &ResultBag{
		results: make(map[string]StageResult),
	}
}

// Record stores a stage result. A stage name is recorded at most once; the
// first record wins.
func (b *ResultBag) Record(res StageResult) {
	if _, exists := b.results[res.Name]; exists {
		return
	}
	b.order = append(b.order, res.Name)
	b.results[res.Name] = res
}

// Get returns the result recorded for a stage name.
func (b *ResultBag) Get(name string) (StageResult, bool) {
	res, ok := b.results[name]
	return res, ok
}

// Payload returns the raw payload of a stage if, and only if, the stage
// completed successfully. Failed and skipped stages look identical to
// callers: no data.
func (b *ResultBag) Payload(name string) json.RawMessage {
	res, ok := b.results[name]
	if !ok || res.Status != StageOK {
		return nil
	}
	return res.Payload
}

// Names returns the stage names in insertion order.
func (b *ResultBag) Names() []string {
	names := make([]string, len(b.order))
	copy(names, b.order)
	return names
}

// Len returns the number of recorded stages.
func (b *ResultBag) Len() int {
	return len(b.order)
}

// MarshalJSON serializes the bag as an ordered array of stage results.
func (b *ResultBag) MarshalJSON() ([]byte, error) {
	results := make([]StageResult, 0, len(b.order))
	for _, name := range b.order {
		results = append(results, b.results[name])
	}
	return json.Marshal(results)
}

// UnmarshalJSON rebuilds the bag from its ordered array form.
func (b *ResultBag) UnmarshalJSON(data []byte) error {
	var results []StageResult
	if err := json.Unmarshal(data, &results); err != nil {
		return err
	}
	b.order = nil
	b.results = make(map[string]StageResult, len(results))
	for _, res := range results {
		b.Record(res)
	}
	return nil
}

// ProgressEvent reports fractional run progress to a caller-supplied sink.
// Percent is non-decreasing within a run and the final event is always 100.
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// Priority orders recommendations.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Rank returns the sort rank of a priority, lowest first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Recommendation is a single prioritized action derived from a run.
type Recommendation struct {
	Category       string   `json:"category"`
	Priority       Priority `json:"priority"`
	Action         string   `json:"action"`
	ExpectedImpact string   `json:"expected_impact"`
}

// RunResult is the final product of a run.
type RunResult struct {
	Success   bool           `json:"success"`
	Data      *ResultBag     `json:"data"`
	Insights  *InsightBundle `json:"insights"`
	Timestamp time.Time      `json:"timestamp"`
}

// Report is a persisted run result, stored by the HTTP layer after a run
// completes. The engine itself never persists anything.
type Report struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	Result    RunResult `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}
