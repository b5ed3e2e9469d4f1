// internal/domain/analysis/engine.go

package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Engine runs a full deep analysis for one video.
type Engine interface {
	// Analyze drives the staged upstream calls for the given video and
	// synthesizes the insight bundle. Progress is streamed to the sink.
	// Only a mandatory-stage failure or cancellation is returned as an
	// error; every other upstream failure is recorded in the result bag.
	Analyze(ctx context.Context, videoID string, sink ProgressSink) (*RunResult, error)
}

// EndpointClient fetches one named upstream resource. Implementations own
// transport, credential and per-call timeout; the engine never retries.
type EndpointClient interface {
	Fetch(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error)
}

// ProgressSink receives progress events during a run.
type ProgressSink interface {
	OnProgress(percent int, message string)
}

// SinkFunc adapts a plain function to a ProgressSink.
type SinkFunc func(percent int, message string)

// OnProgress implements ProgressSink.
func (f SinkFunc) OnProgress(percent int, message string) {
	f(percent, message)
}

// NopSink discards all progress events.
var NopSink ProgressSink = SinkFunc(func(int, string) {})

// ReportStore persists finished run results. Persistence is a caller
// concern; the engine never touches it.
type ReportStore interface {
	SaveReport(ctx context.Context, report Report) error
	GetReport(ctx context.Context, id string) (*Report, error)
	FindReportsByVideo(ctx context.Context, videoID string, limit int) ([]Report, error)
}

// ErrReportNotFound is returned by a ReportStore when no report matches.
var ErrReportNotFound = errors.New("report not found")

// MandatoryStageError aborts a run: the primary video detail fetch failed,
// so no later stage or insight has anything to work from.
type MandatoryStageError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *MandatoryStageError) Error() string {
	return fmt.Sprintf("mandatory stage %q failed: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying upstream error.
func (e *MandatoryStageError) Unwrap() error {
	return e.Err
}
