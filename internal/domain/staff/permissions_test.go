package staff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fitbase/clubstaff/internal/backend"
	"github.com/fitbase/clubstaff/internal/domain/staff"
)

func TestCanActOn(t *testing.T) {
	tests := []struct {
		name   string
		actor  staff.Role
		target staff.Role
		action staff.Action
		want   bool
	}{
		{"owner changes admin", staff.RoleOwner, staff.RoleAdmin, staff.ActionChangeRole, true},
		{"owner removes coach", staff.RoleOwner, staff.RoleCoach, staff.ActionRemove, true},
		{"owner cannot touch owner", staff.RoleOwner, staff.RoleOwner, staff.ActionChangeRole, false},
		{"owner cannot remove owner", staff.RoleOwner, staff.RoleOwner, staff.ActionRemove, false},
		{"admin removes coach", staff.RoleAdmin, staff.RoleCoach, staff.ActionRemove, true},
		{"admin cannot change roles", staff.RoleAdmin, staff.RoleCoach, staff.ActionChangeRole, false},
		{"admin cannot remove admin", staff.RoleAdmin, staff.RoleAdmin, staff.ActionRemove, false},
		{"admin cannot remove owner", staff.RoleAdmin, staff.RoleOwner, staff.ActionRemove, false},
		{"coach has no authority", staff.RoleCoach, staff.RoleCoach, staff.ActionRemove, false},
		{"coach cannot change roles", staff.RoleCoach, staff.RoleCoach, staff.ActionChangeRole, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, staff.CanActOn(tt.actor, tt.target, tt.action))
		})
	}
}

func TestEffectiveRole_IsOwnerFlag(t *testing.T) {
	// is_owner на записи эквивалентен role == owner
	cr := backend.ClubWithRole{Club: backend.Club{ID: 1}, Role: "admin", IsOwner: true}
	assert.Equal(t, staff.RoleOwner, staff.EffectiveRole(cr))

	cr.IsOwner = false
	assert.Equal(t, staff.RoleAdmin, staff.EffectiveRole(cr))
}

func TestRoleInClub(t *testing.T) {
	clubs := []backend.ClubWithRole{
		{Club: backend.Club{ID: 1, Name: "Центр"}, Role: "owner"},
		{Club: backend.Club{ID: 2, Name: "Юг"}, Role: "coach", IsOwner: true},
	}

	r, ok := staff.RoleInClub(clubs, 1)
	assert.True(t, ok)
	assert.Equal(t, staff.RoleOwner, r)

	r, ok = staff.RoleInClub(clubs, 2)
	assert.True(t, ok)
	assert.Equal(t, staff.RoleOwner, r, "is_owner promotes any role")

	_, ok = staff.RoleInClub(clubs, 3)
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, staff.RoleOwner, staff.ParseRole("owner"))
	assert.Equal(t, staff.RoleAdmin, staff.ParseRole("admin"))
	assert.Equal(t, staff.RoleCoach, staff.ParseRole("coach"))
	assert.Equal(t, staff.RoleCoach, staff.ParseRole("unknown"))
}
