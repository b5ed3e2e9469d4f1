// internal/adapter/storage/report_store.go

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"clipsight/internal/domain/analysis"
)

// ReportStore implements analysis.ReportStore on Postgres.
type ReportStore struct {
	db *pgxpool.Pool
}

// NewReportStore creates a new report store.
func NewReportStore(db *pgxpool.Pool) *ReportStore {
	return &ReportStore{
		db: db,
	}
}

// SaveReport persists a finished run result.
func (s *ReportStore) SaveReport(ctx context.Context, report analysis.Report) error {
	query := `
		INSERT INTO analysis_reports (
			id, video_id, success, insights, stages, analyzed_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	insightsJSON, err := json.Marshal(report.Result.Insights)
	if err != nil {
		return fmt.Errorf("error marshaling insights: %w", err)
	}

	stagesJSON, err := json.Marshal(report.Result.Data)
	if err != nil {
		return fmt.Errorf("error marshaling stage results: %w", err)
	}

	_, err = s.db.Exec(
		ctx,
		query,
		report.ID,
		report.VideoID,
		report.Result.Success,
		insightsJSON,
		stagesJSON,
		report.Result.Timestamp,
		report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting report: %w", err)
	}

	return nil
}

// GetReport retrieves a report by ID.
func (s *ReportStore) GetReport(ctx context.Context, id string) (*analysis.Report, error) {
	query := `
		SELECT id, video_id, success, insights, stages, analyzed_at, created_at
		FROM analysis_reports
		WHERE id = $1
	`

	report, err := s.scanReport(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, analysis.ErrReportNotFound
		}
		return nil, fmt.Errorf("error querying report: %w", err)
	}

	return report, nil
}

// FindReportsByVideo returns the most recent reports for a video.
func (s *ReportStore) FindReportsByVideo(ctx context.Context, videoID string, limit int) ([]analysis.Report, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, video_id, success, insights, stages, analyzed_at, created_at
		FROM analysis_reports
		WHERE video_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, videoID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying reports: %w", err)
	}
	defer rows.Close()

	var reports []analysis.Report
	for rows.Next() {
		report, err := s.scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning report: %w", err)
		}
		reports = append(reports, *report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}

// scanReport reads one report row.
func (s *ReportStore) scanReport(row pgx.Row) (*analysis.Report, error) {
	var report analysis.Report
	var insightsJSON, stagesJSON []byte

	err := row.Scan(
		&report.ID,
		&report.VideoID,
		&report.Result.Success,
		&insightsJSON,
		&stagesJSON,
		&report.Result.Timestamp,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(insightsJSON, &report.Result.Insights); err != nil {
		return nil, fmt.Errorf("error unmarshaling insights: %w", err)
	}

	report.Result.Data = analysis.NewResultBag()
	if err := json.Unmarshal(stagesJSON, report.Result.Data); err != nil {
		return nil, fmt.Errorf("error unmarshaling stage results: %w", err)
	}

	return &report, nil
}
