package formation

import "pinya-planner/internal/domain"

// FilterPool removes members already bound in the graph from a candidate
// pool, preserving pool order. Members bound only to base-role instances
// stay selectable, supporting multi-occupancy bases and manual swaps.
func FilterPool(pool []domain.Member, g *Graph) []domain.Member {
	bound := g.boundNonBase()
	out := make([]domain.Member, 0, len(pool))
	for _, m := range pool {
		if bound[domain.NormalizeNickname(m.Nickname)] {
			continue
		}
		out = append(out, m)
	}
	return out
}
