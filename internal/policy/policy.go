// Package policy holds the role-based access table. It is a pure lookup:
// no store access, no side effects.
package policy

import "vyaparpro-api/internal/model"

type Resource string

const (
	ResourceProduct  Resource = "product"
	ResourceCategory Resource = "category"
	ResourceSupplier Resource = "supplier"
	ResourceSale     Resource = "sale"
	ResourceUser     Resource = "user"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var allRoles = []model.Role{model.RoleAdmin, model.RoleStaff, model.RoleViewer}
var adminStaff = []model.Role{model.RoleAdmin, model.RoleStaff}
var adminOnly = []model.Role{model.RoleAdmin}

// rules maps (resource, action) to the roles permitted to perform it.
// Own-profile access is not routed through this table; it is always allowed.
var rules = map[Resource]map[Action][]model.Role{
	ResourceProduct: {
		ActionRead:   allRoles,
		ActionCreate: adminStaff,
		ActionUpdate: adminStaff,
		ActionDelete: adminStaff,
	},
	ResourceCategory: {
		ActionRead:   allRoles,
		ActionCreate: adminStaff,
		ActionUpdate: adminStaff,
		ActionDelete: adminStaff,
	},
	ResourceSupplier: {
		ActionRead:   allRoles,
		ActionCreate: adminStaff,
		ActionUpdate: adminStaff,
		ActionDelete: adminStaff,
	},
	ResourceSale: {
		ActionRead:   allRoles,
		ActionCreate: adminStaff,
		ActionDelete: adminOnly,
	},
	ResourceUser: {
		ActionRead:   adminOnly,
		ActionDelete: adminOnly,
	},
}

// Allows reports whether the given role may perform action on resource.
func Allows(role model.Role, resource Resource, action Action) bool {
	actions, ok := rules[resource]
	if !ok {
		return false
	}
	for _, r := range actions[action] {
		if r == role {
			return true
		}
	}
	return false
}
