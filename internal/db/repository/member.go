package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pinya-planner/internal/domain"
)

var _ domain.MemberRepository = (*MemberRepo)(nil)

// MemberRepo implements domain.MemberRepository using SQLite. Nickname
// identity is case-insensitive (COLLATE NOCASE on the column).
type MemberRepo struct {
	db *sql.DB
}

// NewMemberRepo creates a new MemberRepo.
func NewMemberRepo(db *sql.DB) *MemberRepo {
	return &MemberRepo{db: db}
}

const memberColumns = `nickname, name, surname, position, position2, is_admin, created_at`

// Create inserts a new member.
func (r *MemberRepo) Create(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	if m == nil || strings.TrimSpace(m.Nickname) == "" {
		return nil, domain.ErrValidation("nickname is required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO members (nickname, name, surname, position, position2, is_admin)
		VALUES (?, ?, ?, ?, ?, ?)
	`, strings.TrimSpace(m.Nickname), m.Name, m.Surname, m.Position, m.Position2, boolToInt(m.IsAdmin))
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByNickname(ctx, m.Nickname)
}

// GetByNickname returns a member by nickname, case-insensitively.
func (r *MemberRepo) GetByNickname(ctx context.Context, nickname string) (*domain.Member, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+memberColumns+` FROM members WHERE nickname = ?
	`, strings.TrimSpace(nickname))
	return scanMember(row)
}

// List returns every registered member ordered by nickname.
func (r *MemberRepo) List(ctx context.Context) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+memberColumns+` FROM members ORDER BY nickname
	`)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		var isAdmin int64
		if err := rows.Scan(&m.Nickname, &m.Name, &m.Surname, &m.Position, &m.Position2, &isAdmin, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.IsAdmin = isAdmin != 0
		members = append(members, m)
	}
	return members, rows.Err()
}

// Update applies partial updates to an existing member.
func (r *MemberRepo) Update(ctx context.Context, nickname string, req domain.UpdateMemberRequest) (*domain.Member, error) {
	existing, err := r.GetByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}

	name := existing.Name
	if req.Name != nil {
		name = *req.Name
	}
	surname := existing.Surname
	if req.Surname != nil {
		surname = *req.Surname
	}
	position := existing.Position
	if req.Position != nil {
		position = *req.Position
	}
	position2 := existing.Position2
	if req.Position2 != nil {
		position2 = *req.Position2
	}
	isAdmin := existing.IsAdmin
	if req.IsAdmin != nil {
		isAdmin = *req.IsAdmin
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE members SET name = ?, surname = ?, position = ?, position2 = ?, is_admin = ?
		WHERE nickname = ?
	`, name, surname, position, position2, boolToInt(isAdmin), existing.Nickname)
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByNickname(ctx, existing.Nickname)
}

// EnsureExists registers a member on first contact (e.g. first check-in)
// and returns the stored record either way.
func (r *MemberRepo) EnsureExists(ctx context.Context, nickname string) (*domain.Member, error) {
	existing, err := r.GetByNickname(ctx, nickname)
	if err == nil {
		return existing, nil
	}
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}
	return r.Create(ctx, &domain.Member{Nickname: strings.TrimSpace(nickname)})
}

func scanMember(row *sql.Row) (*domain.Member, error) {
	var m domain.Member
	var isAdmin int64
	if err := row.Scan(&m.Nickname, &m.Name, &m.Surname, &m.Position, &m.Position2, &isAdmin, &m.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	m.IsAdmin = isAdmin != 0
	return &m, nil
}
