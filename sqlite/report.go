package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/siteinv"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ siteinv.ReportStore = (*ReportStore)(nil)

// ReportStore implements siteinv.ReportStore using SQLite.
// Listing columns are stored alongside the full report encoded as JSON.
type ReportStore struct {
	db *DB
}

// NewReportStore creates a new ReportStore.
func NewReportStore(db *DB) *ReportStore {
	return &ReportStore{db: db}
}

// SaveReport validates the report, assigns it a new ID, and stores it.
func (s *ReportStore) SaveReport(ctx context.Context, report *siteinv.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}

	report.ID = uuid.New().String()
	if report.FinishedAt.IsZero() {
		report.FinishedAt = time.Now().UTC()
	}
	if report.StartedAt.IsZero() {
		report.StartedAt = report.FinishedAt
	}

	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, seed_url, scope_domain, total_files, visited, error_count, interrupted, started_at, finished_at, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.SeedURL, report.ScopeDomain, report.TotalFiles, report.Visited, len(report.Errors),
		report.Interrupted, formatTime(report.StartedAt), formatTime(report.FinishedAt),
		string(body))

	return err
}

// FindReportByID retrieves a report by ID.
func (s *ReportStore) FindReportByID(ctx context.Context, id string) (*siteinv.Report, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM reports WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, siteinv.Errorf(siteinv.ENOTFOUND, "report not found")
	}
	if err != nil {
		return nil, err
	}

	var report siteinv.Report
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	report.ID = id
	return &report, nil
}

// FindReports lists saved reports matching the filter, newest first.
func (s *ReportStore) FindReports(ctx context.Context, filter siteinv.ReportFilter) ([]*siteinv.ReportSummary, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, seed_url, total_files, error_count, interrupted, finished_at FROM reports WHERE 1=1")

	if filter.SeedURL != nil {
		query.WriteString(" AND seed_url = ?")
		args = append(args, *filter.SeedURL)
	}

	query.WriteString(" ORDER BY finished_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*siteinv.ReportSummary
	for rows.Next() {
		var summary siteinv.ReportSummary
		var finishedAt string

		if err := rows.Scan(&summary.ID, &summary.SeedURL, &summary.TotalFiles, &summary.ErrorCount,
			&summary.Interrupted, &finishedAt); err != nil {
			return nil, err
		}

		summary.FinishedAt, err = parseTime(finishedAt, "finished_at")
		if err != nil {
			return nil, err
		}

		reports = append(reports, &summary)
	}

	return reports, rows.Err()
}

// DeleteReport permanently removes a report.
func (s *ReportStore) DeleteReport(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return siteinv.Errorf(siteinv.ENOTFOUND, "report not found")
	}

	return nil
}
