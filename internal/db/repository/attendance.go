package repository

import (
	"context"
	"database/sql"
	"strings"

	"pinya-planner/internal/domain"
)

var _ domain.AttendanceRepository = (*AttendanceRepo)(nil)

// AttendanceRepo implements domain.AttendanceRepository using SQLite.
// The store may still hold legacy day-first dates from the spreadsheet
// era; reads normalize them to ISO and writes are always ISO.
type AttendanceRepo struct {
	db *sql.DB
}

// NewAttendanceRepo creates a new AttendanceRepo.
func NewAttendanceRepo(db *sql.DB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

// Record appends a check-in.
func (r *AttendanceRepo) Record(ctx context.Context, rec *domain.AttendanceRecord) error {
	if rec == nil || strings.TrimSpace(rec.Nickname) == "" {
		return domain.ErrValidation("nickname is required")
	}
	date, err := domain.NormalizeDate(rec.Date)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO attendance (date, nickname) VALUES (?, ?)
	`, date, strings.TrimSpace(rec.Nickname))
	return mapDBError(err)
}

// ListByDate returns the check-ins recorded for an ISO date, including
// legacy rows stored in the old day-first format.
func (r *AttendanceRepo) ListByDate(ctx context.Context, date string) ([]domain.AttendanceRecord, error) {
	iso, err := domain.NormalizeDate(date)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT date, nickname, ts FROM attendance ORDER BY ts
	`)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	var records []domain.AttendanceRecord
	for rows.Next() {
		var rec domain.AttendanceRecord
		if err := rows.Scan(&rec.Date, &rec.Nickname, &rec.Timestamp); err != nil {
			return nil, err
		}
		normalized, err := domain.NormalizeDate(rec.Date)
		if err != nil {
			continue // skip unparseable legacy rows rather than failing the read
		}
		if normalized != iso {
			continue
		}
		rec.Date = normalized
		records = append(records, rec)
	}
	return records, rows.Err()
}
