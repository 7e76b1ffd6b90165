// Package planner provides the interactive formation-planning service:
// candidate pool selection, in-memory editing sessions over the formation
// graph, and persistence through the layout service.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pinya-planner/internal/domain"
	layoutsvc "pinya-planner/internal/service/layout"
)

// DefaultSessionTTL is how long a session may sit idle before the sweep
// removes it.
const DefaultSessionTTL = 2 * time.Hour

// Service manages planning sessions and builds candidate pools.
type Service struct {
	members    domain.MemberRepository
	attendance domain.AttendanceRepository
	events     domain.EventRepository
	votes      domain.VoteRepository
	layouts    *layoutsvc.Service
	logger     *slog.Logger

	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// New creates a planner service with the default session TTL.
func New(
	members domain.MemberRepository,
	attendance domain.AttendanceRepository,
	events domain.EventRepository,
	votes domain.VoteRepository,
	layouts *layoutsvc.Service,
	logger *slog.Logger,
) *Service {
	return &Service{
		members:    members,
		attendance: attendance,
		events:     events,
		votes:      votes,
		layouts:    layouts,
		logger:     logger.With("component", "planner"),
		ttl:        DefaultSessionTTL,
		now:        time.Now,
		sessions:   make(map[string]*Session),
	}
}

// SetSessionTTL overrides the idle session lifetime. Call before
// serving traffic.
func (s *Service) SetSessionTTL(d time.Duration) {
	if d > 0 {
		s.ttl = d
	}
}

// SelectPool builds the candidate pool for the given request. An RSVP
// request whose date resolves to no event yields an empty pool rather
// than an error.
func (s *Service) SelectPool(ctx context.Context, req domain.PoolRequest) ([]domain.Member, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	switch req.Mode {
	case domain.PoolAll:
		return s.members.List(ctx)
	case domain.PoolCheckedIn:
		return s.checkedInPool(ctx, req.Date)
	case domain.PoolRsvpComing:
		return s.rsvpPool(ctx, req)
	}
	return nil, domain.ErrValidation("unknown pool mode %q", string(req.Mode))
}

func (s *Service) checkedInPool(ctx context.Context, date string) ([]domain.Member, error) {
	recs, err := s.attendance.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	pool := make([]domain.Member, 0, len(recs))
	seen := make(map[string]bool)
	for _, rec := range recs {
		key := domain.NormalizeNickname(rec.Nickname)
		if seen[key] {
			continue
		}
		seen[key] = true
		m, err := s.members.GetByNickname(ctx, rec.Nickname)
		if err != nil {
			var nf *domain.NotFoundError
			if errors.As(err, &nf) {
				continue
			}
			return nil, err
		}
		pool = append(pool, *m)
	}
	return pool, nil
}

func (s *Service) rsvpPool(ctx context.Context, req domain.PoolRequest) ([]domain.Member, error) {
	var (
		event *domain.Event
		err   error
	)
	if req.EventID != "" {
		event, err = s.events.GetByID(ctx, req.EventID)
	} else {
		event, err = s.events.FirstByDate(ctx, req.Date)
	}
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return []domain.Member{}, nil
		}
		return nil, err
	}
	recs, err := s.votes.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	pool := make([]domain.Member, 0, len(recs))
	for _, rec := range recs {
		if rec.Vote != domain.VoteComing {
			continue
		}
		m, err := s.members.GetByNickname(ctx, rec.Nickname)
		if err != nil {
			var nf *domain.NotFoundError
			if errors.As(err, &nf) {
				continue
			}
			return nil, err
		}
		pool = append(pool, *m)
	}
	return pool, nil
}

// StartSession opens a fresh session with an empty graph and a pool
// built from the request.
func (s *Service) StartSession(ctx context.Context, req domain.PoolRequest) (*Session, error) {
	pool, err := s.SelectPool(ctx, req)
	if err != nil {
		return nil, err
	}
	sess := s.newSession(req, pool)
	s.logger.Info("session started", "session_id", sess.ID, "pool_mode", string(req.Mode), "pool_size", len(pool))
	return sess, nil
}

// Session returns an open session by id and marks it as touched.
func (s *Service) Session(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound("session %s not found", id)
	}
	sess.touch(s.now())
	return sess, nil
}

// CloseSession discards a session. Closing an unknown session is a no-op.
func (s *Service) CloseSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Sweep removes sessions idle for longer than the TTL and returns how
// many were removed. Driven by the cron scheduler in the server.
func (s *Service) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastTouched()) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("swept idle sessions", "removed", removed)
	}
	return removed
}

func (s *Service) newSession(req domain.PoolRequest, pool []domain.Member) *Session {
	sess := newSession(s, req, pool, s.now())
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}
