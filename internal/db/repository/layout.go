package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"pinya-planner/internal/domain"
)

var _ domain.LayoutRepository = (*LayoutRepo)(nil)

// LayoutRepo implements domain.LayoutRepository using SQLite. Positions
// and publication sets persist as JSON columns, preserving the
// snapshot-not-join semantics of bound members.
type LayoutRepo struct {
	db *sql.DB
}

// NewLayoutRepo creates a new LayoutRepo.
func NewLayoutRepo(db *sql.DB) *LayoutRepo {
	return &LayoutRepo{db: db}
}

const layoutColumns = `id, name, folder, castell_type, positions, published_dates, created_at, updated_at`

// memberRecord is the persisted snapshot of a bound member, in the same
// shape the layout rows always used on the wire.
type memberRecord struct {
	Nickname  string `json:"nickname"`
	Name      string `json:"name,omitempty"`
	Surname   string `json:"surname,omitempty"`
	Position  string `json:"position,omitempty"`
	Position2 string `json:"position2,omitempty"`
}

// positionRecord is the persisted shape of one role instance. Older rows
// carry a single "member" field; new rows always write "members".
type positionRecord struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Rotation int            `json:"rotation,omitempty"`
	Members  []memberRecord `json:"members,omitempty"`
	Member   *memberRecord  `json:"member,omitempty"` // legacy single occupant
}

func memberRecordFrom(m domain.Member) memberRecord {
	return memberRecord{
		Nickname:  m.Nickname,
		Name:      m.Name,
		Surname:   m.Surname,
		Position:  m.Position,
		Position2: m.Position2,
	}
}

func (rec memberRecord) toDomain() domain.Member {
	return domain.Member{
		Nickname:  rec.Nickname,
		Name:      rec.Name,
		Surname:   rec.Surname,
		Position:  rec.Position,
		Position2: rec.Position2,
	}
}

// Save upserts by the (name, folder) logical identity: re-saving under
// the same name and folder replaces the stored content instead of
// inserting a duplicate. The report tells the caller which happened.
func (r *LayoutRepo) Save(ctx context.Context, l *domain.Layout) (*domain.SaveLayoutReport, error) {
	if l == nil {
		return nil, domain.ErrValidation("layout is required")
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	positions, err := marshalPositions(l.Positions)
	if err != nil {
		return nil, err
	}

	var existingID string
	err = r.db.QueryRowContext(ctx, `
		SELECT id FROM layouts WHERE name = ? AND folder = ?
	`, l.Name, l.Folder).Scan(&existingID)

	switch {
	case err == nil:
		// Replace content in place; the publication set is untouched.
		_, err = r.db.ExecContext(ctx, `
			UPDATE layouts
			SET castell_type = ?, positions = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`, l.CastellType, positions, existingID)
		if err != nil {
			return nil, mapDBError(err)
		}
		stored, err := r.GetByID(ctx, existingID)
		if err != nil {
			return nil, err
		}
		return &domain.SaveLayoutReport{Layout: stored, Updated: true}, nil

	case err == sql.ErrNoRows:
		id := l.ID
		if id == "" {
			id = domain.NewID()
		}
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO layouts (id, name, folder, castell_type, positions, published_dates)
			VALUES (?, ?, ?, ?, ?, '[]')
		`, id, l.Name, l.Folder, l.CastellType, positions)
		if err != nil {
			return nil, mapDBError(err)
		}
		stored, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &domain.SaveLayoutReport{Layout: stored, Updated: false}, nil

	default:
		return nil, mapDBError(err)
	}
}

// Update replaces the stored content of a layout by its ID. Calling it
// with an unsaved layout is a distinct not-found condition so the caller
// knows to save-as-new instead of retrying.
func (r *LayoutRepo) Update(ctx context.Context, l *domain.Layout) (*domain.Layout, error) {
	if l == nil {
		return nil, domain.ErrValidation("layout is required")
	}
	if l.ID == "" {
		return nil, domain.ErrNotFound("layout has no identifier; save it first")
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	positions, err := marshalPositions(l.Positions)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE layouts
		SET name = ?, folder = ?, castell_type = ?, positions = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, l.Name, l.Folder, l.CastellType, positions, l.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNotFound("layout %q not found", l.ID)
	}
	return r.GetByID(ctx, l.ID)
}

// GetByID returns a layout by its storage identifier.
func (r *LayoutRepo) GetByID(ctx context.Context, id string) (*domain.Layout, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+layoutColumns+` FROM layouts WHERE id = ?
	`, id)
	return scanLayout(row.Scan)
}

// List returns all layouts, or only those in an exactly matching folder.
// Folder labels are case-sensitive; two folders differing only by case
// are distinct.
func (r *LayoutRepo) List(ctx context.Context, folder *string) ([]domain.Layout, error) {
	query := `SELECT ` + layoutColumns + ` FROM layouts ORDER BY folder, name`
	args := []any{}
	if folder != nil {
		query = `SELECT ` + layoutColumns + ` FROM layouts WHERE folder = ? ORDER BY name`
		args = append(args, *folder)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()
	return collectLayouts(rows)
}

// Delete removes a layout record entirely. Publication state goes with
// the record; there is no separate unpublish step.
func (r *LayoutRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound("layout %q not found", id)
	}
	return nil
}

// SetPublishedDates replaces a layout's publication set.
func (r *LayoutRepo) SetPublishedDates(ctx context.Context, id string, dates []string) error {
	if dates == nil {
		dates = []string{}
	}
	encoded, err := json.Marshal(dates)
	if err != nil {
		return fmt.Errorf("marshal published dates: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE layouts SET published_dates = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, string(encoded), id)
	if err != nil {
		return mapDBError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound("layout %q not found", id)
	}
	return nil
}

// VisibleOn returns layouts whose publication set contains the date or
// the GLOBAL sentinel. The JSON set is filtered in Go; layout counts are
// small and the snapshot column is already loaded for the response.
func (r *LayoutRepo) VisibleOn(ctx context.Context, date string) ([]domain.Layout, error) {
	if _, err := domain.ParseISODate(date); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+layoutColumns+` FROM layouts WHERE published_dates != '[]' ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	all, err := collectLayouts(rows)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.Layout, 0, len(all))
	for _, l := range all {
		if l.PublishedOn(date) {
			visible = append(visible, l)
		}
	}
	return visible, nil
}

func marshalPositions(positions []domain.RoleInstance) (string, error) {
	records := make([]positionRecord, 0, len(positions))
	for _, ri := range positions {
		rec := positionRecord{
			ID:       ri.ID,
			Label:    ri.Label,
			X:        ri.X,
			Y:        ri.Y,
			Rotation: ri.Rotation,
		}
		for _, m := range ri.Members {
			rec.Members = append(rec.Members, memberRecordFrom(m))
		}
		records = append(records, rec)
	}
	encoded, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshal positions: %w", err)
	}
	return string(encoded), nil
}

func unmarshalPositions(encoded string) ([]domain.RoleInstance, error) {
	if strings.TrimSpace(encoded) == "" {
		return nil, nil
	}
	var records []positionRecord
	if err := json.Unmarshal([]byte(encoded), &records); err != nil {
		return nil, fmt.Errorf("unmarshal positions: %w", err)
	}
	positions := make([]domain.RoleInstance, 0, len(records))
	for _, rec := range records {
		ri := domain.RoleInstance{
			ID:       rec.ID,
			Label:    rec.Label,
			X:        rec.X,
			Y:        rec.Y,
			Rotation: rec.Rotation,
		}
		for _, m := range rec.Members {
			ri.Members = append(ri.Members, m.toDomain())
		}
		if len(ri.Members) == 0 && rec.Member != nil {
			ri.Members = []domain.Member{rec.Member.toDomain()}
		}
		positions = append(positions, ri)
	}
	return positions, nil
}

func scanLayout(scan func(dest ...any) error) (*domain.Layout, error) {
	var l domain.Layout
	var positions, published string
	if err := scan(&l.ID, &l.Name, &l.Folder, &l.CastellType, &positions, &published, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, mapDBError(err)
	}
	var err error
	l.Positions, err = unmarshalPositions(positions)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(published), &l.PublishedDates); err != nil {
		return nil, fmt.Errorf("unmarshal published dates: %w", err)
	}
	return &l, nil
}

func collectLayouts(rows *sql.Rows) ([]domain.Layout, error) {
	var layouts []domain.Layout
	for rows.Next() {
		l, err := scanLayout(rows.Scan)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, *l)
	}
	return layouts, rows.Err()
}
