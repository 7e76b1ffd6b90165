// Package roster provides business logic for members, check-ins, and
// scheduled events.
package roster

import (
	"context"
	"fmt"
	"strings"

	"pinya-planner/internal/domain"
)

// Service provides member, attendance, and event operations.
type Service struct {
	members    domain.MemberRepository
	attendance domain.AttendanceRepository
	events     domain.EventRepository
}

// New creates a new Service.
func New(members domain.MemberRepository, attendance domain.AttendanceRepository, events domain.EventRepository) *Service {
	return &Service{members: members, attendance: attendance, events: events}
}

// ListMembers returns every registered member.
func (s *Service) ListMembers(ctx context.Context) ([]domain.Member, error) {
	return s.members.List(ctx)
}

// GetMember returns one member by nickname.
func (s *Service) GetMember(ctx context.Context, nickname string) (*domain.Member, error) {
	return s.members.GetByNickname(ctx, nickname)
}

// CreateMember registers a member explicitly (admin flow).
func (s *Service) CreateMember(ctx context.Context, req domain.CreateMemberRequest) (*domain.Member, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	m := &domain.Member{
		Nickname:  strings.TrimSpace(req.Nickname),
		Name:      req.Name,
		Surname:   req.Surname,
		Position:  req.Position,
		Position2: req.Position2,
		IsAdmin:   req.IsAdmin,
	}
	created, err := s.members.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return created, nil
}

// UpdateMember applies profile or position edits. Edits never propagate
// into member snapshots already bound in saved layouts.
func (s *Service) UpdateMember(ctx context.Context, nickname string, req domain.UpdateMemberRequest) (*domain.Member, error) {
	return s.members.Update(ctx, nickname, req)
}

// CheckIn records attendance for a date, registering the member
// implicitly when the nickname is unknown.
func (s *Service) CheckIn(ctx context.Context, nickname, date string) error {
	if strings.TrimSpace(nickname) == "" {
		return domain.ErrValidation("nickname is required")
	}
	iso, err := domain.NormalizeDate(date)
	if err != nil {
		return err
	}
	if _, err := s.members.EnsureExists(ctx, nickname); err != nil {
		return fmt.Errorf("ensure member: %w", err)
	}
	if err := s.attendance.Record(ctx, &domain.AttendanceRecord{Date: iso, Nickname: strings.TrimSpace(nickname)}); err != nil {
		return fmt.Errorf("record attendance: %w", err)
	}
	return nil
}

// AttendanceOn returns the check-ins for a date.
func (s *Service) AttendanceOn(ctx context.Context, date string) ([]domain.AttendanceRecord, error) {
	return s.attendance.ListByDate(ctx, date)
}

// CreateEvent schedules a rehearsal or performance.
func (s *Service) CreateEvent(ctx context.Context, req domain.CreateEventRequest) (*domain.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	e := &domain.Event{
		ID:       domain.NewID(),
		Title:    strings.TrimSpace(req.Title),
		Date:     req.Date,
		Location: req.Location,
		Notes:    req.Notes,
	}
	created, err := s.events.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return created, nil
}

// ListEvents returns all scheduled events in date order.
func (s *Service) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.events.List(ctx)
}
