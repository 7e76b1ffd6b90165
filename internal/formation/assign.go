package formation

import "pinya-planner/internal/domain"

// AutoAssign binds pool members to unfilled role instances with a
// deterministic greedy first-fit: one pass over the instances in layout
// order, matching each unfilled instance against the pool in selector
// order, primary position first and the fallback position second.
//
// A matched member is consumed for the rest of the pass, except when the
// instance is the base role: a base match stays available for further
// base instances (towers take several people per base slot), but never
// for non-base instances. Instances that already hold a member are
// skipped; auto-assign never overwrites a prior binding and never fails
// on a no-match.
//
// The returned slice is the remaining pool: members that found no slot,
// in their original order. All matched members are excluded from it.
func AutoAssign(pool []domain.Member, g *Graph) []domain.Member {
	working := append([]domain.Member(nil), pool...)
	baseMatched := make(map[string]bool)

	for _, ri := range g.Instances() {
		if ri.Occupied() {
			continue
		}
		idx := matchIndex(working, ri, baseMatched)
		if idx < 0 {
			continue
		}
		m := working[idx]
		ri.Members = append(ri.Members, m)
		if ri.IsBase() {
			baseMatched[domain.NormalizeNickname(m.Nickname)] = true
		} else {
			working = append(working[:idx], working[idx+1:]...)
		}
	}

	remaining := working[:0]
	for _, m := range working {
		if !baseMatched[domain.NormalizeNickname(m.Nickname)] {
			remaining = append(remaining, m)
		}
	}
	return remaining
}

// matchIndex finds the first pool member eligible for the instance,
// trying every member's primary position before falling back to the
// secondary position.
func matchIndex(pool []domain.Member, ri *domain.RoleInstance, baseMatched map[string]bool) int {
	for pass := 0; pass < 2; pass++ {
		for i, m := range pool {
			if !eligible(m, ri, baseMatched) {
				continue
			}
			preference := m.Position
			if pass == 1 {
				preference = m.Position2
			}
			if domain.MatchesRole(preference, ri.Label) {
				return i
			}
		}
	}
	return -1
}

// eligible reports whether a member may be considered for an instance:
// members already matched into a base slot are only available for other
// base slots, and an instance never takes the same member twice.
func eligible(m domain.Member, ri *domain.RoleInstance, baseMatched map[string]bool) bool {
	if baseMatched[domain.NormalizeNickname(m.Nickname)] && !ri.IsBase() {
		return false
	}
	return !ri.Holds(m.Nickname)
}
