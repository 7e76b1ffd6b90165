// Package formation implements the formation graph model, the candidate
// pool filter, and the greedy auto-assignment engine. The graph is pure
// in-memory state: it knows nothing about pools or persistence, and the
// planner session coordinates both around it.
package formation

import (
	"fmt"
	"time"

	"pinya-planner/internal/domain"
)

// Default canvas placement for new role instances. New instances stack
// upward and are prepended so they render above existing ones.
const (
	defaultX     = 400.0
	defaultBaseY = 100.0
	defaultMinY  = 50.0
	defaultStepY = 50.0
)

// Graph holds the ordered role instances of one layout under edit.
type Graph struct {
	instances []*domain.RoleInstance
	now       func() time.Time
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{now: time.Now}
}

// FromLayout builds a graph from a stored layout's positions.
func FromLayout(l *domain.Layout) *Graph {
	g := NewGraph()
	for i := range l.Positions {
		ri := l.Positions[i]
		ri.Members = append([]domain.Member(nil), l.Positions[i].Members...)
		g.instances = append(g.instances, &ri)
	}
	return g
}

// AddRoleInstance inserts a new unbound instance with the given label at
// the default coordinates and returns it. The instance is prepended so
// newly added roles render on top of existing ones.
func (g *Graph) AddRoleInstance(label string) *domain.RoleInstance {
	y := defaultBaseY - float64(len(g.instances))*defaultStepY
	if y < defaultMinY {
		y = defaultMinY
	}
	ri := &domain.RoleInstance{
		ID:    g.uniqueID(label),
		Label: label,
		X:     defaultX,
		Y:     y,
	}
	g.instances = append([]*domain.RoleInstance{ri}, g.instances...)
	return ri
}

// uniqueID derives a timestamp id for the label and, when two instances of
// the same label land in the same millisecond, appends a counter so every
// instance stays individually addressable.
func (g *Graph) uniqueID(label string) string {
	base := domain.NewRoleInstanceID(label, g.now())
	id := base
	for n := 2; g.Instance(id) != nil; n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}
	return id
}

// RemoveRoleInstance deletes an instance and returns its occupants so the
// caller can reinsert them into the pool. The second return is false when
// no instance has the given id.
func (g *Graph) RemoveRoleInstance(id string) ([]domain.Member, bool) {
	for i, ri := range g.instances {
		if ri.ID == id {
			occupants := ri.Members
			g.instances = append(g.instances[:i], g.instances[i+1:]...)
			return occupants, true
		}
	}
	return nil, false
}

// SetCoordinates moves an instance on the canvas.
func (g *Graph) SetCoordinates(id string, x, y float64) bool {
	ri := g.Instance(id)
	if ri == nil {
		return false
	}
	ri.X = x
	ri.Y = y
	return true
}

// Rotate adds the fixed rotation step to an instance, wrapping at 360.
// Rotation is cosmetic display state with no effect on binding.
func (g *Graph) Rotate(id string) (int, bool) {
	ri := g.Instance(id)
	if ri == nil {
		return 0, false
	}
	ri.Rotation = (ri.Rotation + domain.RotationStep) % 360
	return ri.Rotation, true
}

// Bind attaches a member snapshot to an instance. It reports whether the
// binding was applied: binding an occupied non-base instance, or a member
// the instance already holds, is a silent no-op per the data model.
func (g *Graph) Bind(id string, m domain.Member) bool {
	ri := g.Instance(id)
	if ri == nil {
		return false
	}
	if ri.Occupied() && !ri.IsBase() {
		return false
	}
	if ri.Holds(m.Nickname) {
		return false
	}
	ri.Members = append(ri.Members, m)
	return true
}

// Unbind clears an instance's occupants and returns them so the caller
// can reinsert them into the pool.
func (g *Graph) Unbind(id string) []domain.Member {
	ri := g.Instance(id)
	if ri == nil {
		return nil
	}
	occupants := ri.Members
	ri.Members = nil
	return occupants
}

// Instance returns the instance with the given id, or nil.
func (g *Graph) Instance(id string) *domain.RoleInstance {
	for _, ri := range g.instances {
		if ri.ID == id {
			return ri
		}
	}
	return nil
}

// Instances returns the instances in layout order (newest first).
func (g *Graph) Instances() []*domain.RoleInstance {
	return g.instances
}

// Len returns the number of instances.
func (g *Graph) Len() int {
	return len(g.instances)
}

// Snapshot copies the graph into a layout's position list.
func (g *Graph) Snapshot() []domain.RoleInstance {
	out := make([]domain.RoleInstance, 0, len(g.instances))
	for _, ri := range g.instances {
		cp := *ri
		cp.Members = append([]domain.Member(nil), ri.Members...)
		out = append(out, cp)
	}
	return out
}

// boundNonBase collects the normalized nicknames of members bound to at
// least one non-base instance.
func (g *Graph) boundNonBase() map[string]bool {
	bound := make(map[string]bool)
	for _, ri := range g.instances {
		if ri.IsBase() {
			continue
		}
		for _, m := range ri.Members {
			bound[domain.NormalizeNickname(m.Nickname)] = true
		}
	}
	return bound
}
