package strategy

import (
	"math"
	"slices"

	"github.com/nstehr/rally/rally-core/model"
)

// AssignRoles marks round(len*share) agents of a roster as defenders and the
// rest as attackers. The lowest ids defend so the split stays stable as
// agents join and leave.
func AssignRoles(roster []model.AgentID, share float64) map[model.AgentID]model.Role {
	ids := slices.Clone(roster)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	defenders := int(math.Round(float64(len(ids)) * clamp(share, 0, 1)))
	roles := make(map[model.AgentID]model.Role, len(ids))
	for i, id := range ids {
		if i < defenders {
			roles[id] = model.RoleDefender
		} else {
			roles[id] = model.RoleAttacker
		}
	}
	return roles
}
