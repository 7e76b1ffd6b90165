package planner

import (
	"context"
	"strings"
	"sync"
	"time"

	"pinya-planner/internal/domain"
	"pinya-planner/internal/formation"
)

// Session is one interactive planning session. It owns a formation graph
// and a candidate pool, and serializes every canvas event through its
// mutex so concurrent editors of the same session cannot corrupt either.
type Session struct {
	ID string

	svc *Service

	mu      sync.Mutex
	graph   *formation.Graph
	pool    []domain.Member
	poolReq domain.PoolRequest

	// Loaded layout identity; empty until LoadLayout or Save.
	layoutID    string
	name        string
	folder      string
	castellType string

	touched time.Time
}

func newSession(svc *Service, req domain.PoolRequest, pool []domain.Member, now time.Time) *Session {
	return &Session{
		ID:      domain.NewID(),
		svc:     svc,
		graph:   formation.NewGraph(),
		pool:    pool,
		poolReq: req,
		touched: now,
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.touched = now
	s.mu.Unlock()
}

func (s *Session) lastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// Pool returns the visible candidate pool: the session pool minus
// members already placed on a non-base role. Members who only occupy
// base roles stay visible.
func (s *Session) Pool() []domain.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return formation.FilterPool(s.pool, s.graph)
}

// Instances returns the current role instances, newest first.
func (s *Session) Instances() []domain.RoleInstance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Snapshot()
}

// LayoutID returns the id of the loaded or last-saved layout, or "".
func (s *Session) LayoutID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layoutID
}

// AddRole places a new unbound role instance on the canvas.
func (s *Session) AddRole(label string) domain.RoleInstance {
	s.mu.Lock()
	defer s.mu.Unlock()
	ri := s.graph.AddRoleInstance(label)
	return *ri
}

// DropMemberOnRole binds a pool member onto a role instance. Dropping
// onto an occupied non-base role is a silent no-op, mirroring the
// canvas behavior.
func (s *Session) DropMemberOnRole(instanceID, nickname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph.Instance(instanceID) == nil {
		return domain.ErrNotFound("role instance %s not found", instanceID)
	}
	m, ok := s.poolMember(nickname)
	if !ok {
		return domain.ErrNotFound("member %s is not in the pool", nickname)
	}
	s.graph.Bind(instanceID, m)
	return nil
}

// DragRoleToTrash removes a role instance. Its occupants reappear in
// the visible pool because the session pool never dropped them.
func (s *Session) DragRoleToTrash(instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.graph.RemoveRoleInstance(instanceID); !ok {
		return domain.ErrNotFound("role instance %s not found", instanceID)
	}
	return nil
}

// RotateRole rotates a role instance by the fixed step.
func (s *Session) RotateRole(instanceID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rot, ok := s.graph.Rotate(instanceID)
	if !ok {
		return 0, domain.ErrNotFound("role instance %s not found", instanceID)
	}
	return rot, nil
}

// MoveRole repositions a role instance on the canvas.
func (s *Session) MoveRole(instanceID string, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.graph.SetCoordinates(instanceID, x, y) {
		return domain.ErrNotFound("role instance %s not found", instanceID)
	}
	return nil
}

// ClearRole unbinds a role instance's occupants, returning them to the
// visible pool.
func (s *Session) ClearRole(instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph.Instance(instanceID) == nil {
		return domain.ErrNotFound("role instance %s not found", instanceID)
	}
	s.graph.Unbind(instanceID)
	return nil
}

// AutoAssign runs the greedy matcher over the visible pool and graph.
// Matched members leave the session pool; members placed on base roles
// may have filled several base slots before leaving.
func (s *Session) AutoAssign() {
	s.mu.Lock()
	defer s.mu.Unlock()
	visible := formation.FilterPool(s.pool, s.graph)
	remaining := formation.AutoAssign(visible, s.graph)

	left := make(map[string]bool, len(remaining))
	for _, m := range remaining {
		left[domain.NormalizeNickname(m.Nickname)] = true
	}
	// Drop the matched members (visible before, gone from the remainder).
	// Members hidden by an earlier binding stay in the session pool so
	// trashing their role still restores them.
	matched := make(map[string]bool, len(visible))
	for _, m := range visible {
		if !left[domain.NormalizeNickname(m.Nickname)] {
			matched[domain.NormalizeNickname(m.Nickname)] = true
		}
	}
	kept := s.pool[:0]
	for _, m := range s.pool {
		if !matched[domain.NormalizeNickname(m.Nickname)] {
			kept = append(kept, m)
		}
	}
	s.pool = kept
}

// RefreshPool rebuilds the session pool from its original request.
// Members already placed on the canvas keep their bindings.
func (s *Session) RefreshPool(ctx context.Context) error {
	s.mu.Lock()
	req := s.poolReq
	s.mu.Unlock()
	pool, err := s.svc.SelectPool(ctx, req)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.pool = pool
	s.mu.Unlock()
	return nil
}

// Save persists the canvas as a layout, upserting by (name, folder).
// The session adopts the stored layout's identity so a later Update
// targets the same record.
func (s *Session) Save(ctx context.Context, name, folder, castellType string) (*domain.SaveLayoutReport, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrValidation("layout name is required")
	}
	s.mu.Lock()
	l := &domain.Layout{
		ID:          domain.NewID(),
		Name:        strings.TrimSpace(name),
		Folder:      strings.TrimSpace(folder),
		CastellType: castellType,
		Positions:   s.graph.Snapshot(),
	}
	s.mu.Unlock()
	report, err := s.svc.layouts.Save(ctx, l)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.layoutID = report.Layout.ID
	s.name = report.Layout.Name
	s.folder = report.Layout.Folder
	s.castellType = report.Layout.CastellType
	s.mu.Unlock()
	return report, nil
}

// Update overwrites the loaded layout in place. It fails when the
// session has no layout loaded.
func (s *Session) Update(ctx context.Context) (*domain.Layout, error) {
	s.mu.Lock()
	if s.layoutID == "" {
		s.mu.Unlock()
		return nil, domain.ErrValidation("session has no loaded layout to update")
	}
	l := &domain.Layout{
		ID:          s.layoutID,
		Name:        s.name,
		Folder:      s.folder,
		CastellType: s.castellType,
		Positions:   s.graph.Snapshot(),
	}
	s.mu.Unlock()
	return s.svc.layouts.Update(ctx, l)
}

// LoadLayout replaces the session graph with a stored layout's
// positions. The pool is untouched; the selector filter hides members
// the loaded layout already places on non-base roles.
func (s *Session) LoadLayout(ctx context.Context, id string) error {
	l, err := s.svc.layouts.Get(ctx, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.graph = formation.FromLayout(l)
	s.layoutID = l.ID
	s.name = l.Name
	s.folder = l.Folder
	s.castellType = l.CastellType
	s.mu.Unlock()
	return nil
}

// poolMember finds a session pool member by nickname. Callers hold the
// session mutex.
func (s *Session) poolMember(nickname string) (domain.Member, bool) {
	for _, m := range s.pool {
		if domain.SameNickname(m.Nickname, nickname) {
			return m, true
		}
	}
	return domain.Member{}, false
}
