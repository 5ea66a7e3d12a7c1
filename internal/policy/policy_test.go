package policy_test

import (
	"testing"

	"vyaparpro-api/internal/model"
	"vyaparpro-api/internal/policy"

	"github.com/stretchr/testify/assert"
)

func TestAllows(t *testing.T) {
	tests := []struct {
		name     string
		role     model.Role
		resource policy.Resource
		action   policy.Action
		want     bool
	}{
		{"viewer reads products", model.RoleViewer, policy.ResourceProduct, policy.ActionRead, true},
		{"viewer cannot create products", model.RoleViewer, policy.ResourceProduct, policy.ActionCreate, false},
		{"staff creates products", model.RoleStaff, policy.ResourceProduct, policy.ActionCreate, true},
		{"staff deletes categories", model.RoleStaff, policy.ResourceCategory, policy.ActionDelete, true},
		{"staff records sales", model.RoleStaff, policy.ResourceSale, policy.ActionCreate, true},
		{"staff cannot delete sales", model.RoleStaff, policy.ResourceSale, policy.ActionDelete, false},
		{"admin deletes sales", model.RoleAdmin, policy.ResourceSale, policy.ActionDelete, true},
		{"viewer reads sales", model.RoleViewer, policy.ResourceSale, policy.ActionRead, true},
		{"sales have no update action", model.RoleAdmin, policy.ResourceSale, policy.ActionUpdate, false},
		{"staff cannot list users", model.RoleStaff, policy.ResourceUser, policy.ActionRead, false},
		{"admin lists users", model.RoleAdmin, policy.ResourceUser, policy.ActionRead, true},
		{"admin deletes users", model.RoleAdmin, policy.ResourceUser, policy.ActionDelete, true},
		{"nobody creates users via admin surface", model.RoleAdmin, policy.ResourceUser, policy.ActionCreate, false},
		{"unknown role denied", model.Role("superuser"), policy.ResourceProduct, policy.ActionRead, false},
		{"unknown resource denied", model.RoleAdmin, policy.Resource("warehouse"), policy.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Allows(tt.role, tt.resource, tt.action))
		})
	}
}
