package staff_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbase/clubstaff/internal/backend"
	"github.com/fitbase/clubstaff/internal/domain/staff"
)

var createdAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func member(id int64, first, last, phone string, roles ...backend.ClubRole) backend.Member {
	return backend.Member{
		ID: id, FirstName: first, LastName: last, PhoneNumber: phone,
		ClubsAndRoles: roles, CreatedAt: createdAt,
	}
}

func invitation(id int64, phone, role string, clubID int64) backend.Invitation {
	return backend.Invitation{
		ID: id, PhoneNumber: phone, Role: role, ClubID: clubID,
		Status: backend.InvitationPending, CreatedAt: createdAt,
	}
}

func TestIdentityKey(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"spaces stripped", "+7 700 000 00 00", "+77000000000"},
		{"tabs and nbsp stripped", "+7\t700 111 22 33", "+77001112233"},
		{"no normalization of prefixes", "87000000000", "87000000000"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, staff.IdentityKey(tt.phone))
		})
	}
}

func TestReconcile_MembershipOnly(t *testing.T) {
	members := []backend.Member{
		member(1, "Аружан", "Ким", "+7 700 111 11 11",
			backend.ClubRole{ClubID: 1, Role: "coach", IsActive: true},
			backend.ClubRole{ClubID: 2, Role: "admin", IsActive: true},
		),
	}

	out := staff.Reconcile(members, nil)
	require.Len(t, out, 1)

	e := out[0]
	assert.Equal(t, "+77001111111", e.IdentityKey)
	assert.Equal(t, staff.RoleAdmin, e.PrimaryRole, "primary role is the highest-priority one")
	assert.Equal(t, staff.StatusActive, e.Status)
	assert.ElementsMatch(t, []int64{1, 2}, e.ClubIDs)
}

func TestReconcile_InactiveMembershipRoleIsPending(t *testing.T) {
	members := []backend.Member{
		member(1, "Елена", "Серик", "+7 700 222 22 22",
			backend.ClubRole{ClubID: 3, Role: "coach", IsActive: false},
		),
	}

	out := staff.Reconcile(members, nil)
	require.Len(t, out, 1)
	st, ok := out[0].RoleIn(3)
	require.True(t, ok)
	assert.Equal(t, staff.StatusPending, st.Status)
	assert.Equal(t, staff.StatusPending, out[0].Status)
}

func TestReconcile_MembershipWinsOverInvitation(t *testing.T) {
	members := []backend.Member{
		member(1, "Ержан", "Абаев", "+7 700 333 33 33",
			backend.ClubRole{ClubID: 5, Role: "coach", IsActive: true},
		),
	}
	invs := map[int64][]backend.Invitation{
		5: {invitation(100, "+7 700 333 33 33", "admin", 5)},
	}

	out := staff.Reconcile(members, invs)
	require.Len(t, out, 1)

	st, ok := out[0].RoleIn(5)
	require.True(t, ok)
	assert.Equal(t, staff.RoleCoach, st.Role, "membership wins the club slot")
	assert.Equal(t, staff.StatusActive, st.Status)
	assert.Nil(t, st.InvitationID)
	assert.Len(t, out[0].ClubRoles, 1)
}

func TestReconcile_InvitationExtendsExistingEmployee(t *testing.T) {
	members := []backend.Member{
		member(1, "Ержан", "Абаев", "+7 700 333 33 33",
			backend.ClubRole{ClubID: 5, Role: "coach", IsActive: true},
		),
	}
	invs := map[int64][]backend.Invitation{
		6: {invitation(101, "+7 700 333 33 33", "admin", 6)},
	}

	out := staff.Reconcile(members, invs)
	require.Len(t, out, 1)

	e := out[0]
	assert.ElementsMatch(t, []int64{5, 6}, e.ClubIDs)
	st, ok := e.RoleIn(6)
	require.True(t, ok)
	assert.Equal(t, staff.StatusPending, st.Status)
	assert.Equal(t, staff.OriginInvitation, st.Origin)
	require.NotNil(t, st.InvitationID)
	assert.Equal(t, int64(101), *st.InvitationID)
	// активная роль в клубе 5 перевешивает pending в клубе 6
	assert.Equal(t, staff.StatusActive, e.Status)
	assert.Equal(t, staff.RoleAdmin, e.PrimaryRole)
}

func TestReconcile_GhostEmployee(t *testing.T) {
	invs := map[int64][]backend.Invitation{
		9: {invitation(7, "+7 700 000 00 00", "coach", 9)},
	}

	out := staff.Reconcile(nil, invs)
	require.Len(t, out, 1)

	e := out[0]
	assert.True(t, e.Ghost())
	assert.Empty(t, e.FirstName)
	assert.Empty(t, e.LastName)
	assert.Equal(t, staff.StatusPending, e.Status)
	assert.Equal(t, []int64{9}, e.ClubIDs)
	require.NotNil(t, e.InvitationID)
	assert.Equal(t, int64(7), *e.InvitationID)
	assert.Equal(t, staff.RoleCoach, e.PrimaryRole)
}

func TestReconcile_GhostAccumulatesClubs(t *testing.T) {
	invs := map[int64][]backend.Invitation{
		2: {invitation(20, "+7 701 000 00 00", "coach", 2)},
		1: {invitation(10, "+7 701 000 00 00", "admin", 1)},
	}

	out := staff.Reconcile(nil, invs)
	require.Len(t, out, 1, "invitations for one phone collapse into one ghost")

	e := out[0]
	assert.ElementsMatch(t, []int64{1, 2}, e.ClubIDs)
	require.NotNil(t, e.InvitationID)
	// клубы обходятся по возрастанию id — первым видим приглашение клуба 1
	assert.Equal(t, int64(10), *e.InvitationID)
	assert.Equal(t, staff.RoleAdmin, e.PrimaryRole)
}

func TestReconcile_SkipsUsedAndNonPending(t *testing.T) {
	invs := map[int64][]backend.Invitation{
		1: {
			{ID: 1, PhoneNumber: "+7 702 000 00 00", Role: "coach", ClubID: 1, Status: "accepted"},
			{ID: 2, PhoneNumber: "+7 703 000 00 00", Role: "coach", ClubID: 1, Status: backend.InvitationPending, IsUsed: true},
		},
	}

	out := staff.Reconcile(nil, invs)
	assert.Empty(t, out)
}

func TestReconcile_Idempotent(t *testing.T) {
	members := []backend.Member{
		member(1, "Аружан", "Ким", "+7 700 111 11 11",
			backend.ClubRole{ClubID: 1, Role: "owner", IsActive: true},
		),
		member(2, "Елена", "Серик", "+7 700 222 22 22",
			backend.ClubRole{ClubID: 1, Role: "coach", IsActive: false},
		),
	}
	invs := map[int64][]backend.Invitation{
		1: {invitation(1, "+7 700 999 99 99", "coach", 1)},
		2: {invitation(2, "+7 700 222 22 22", "admin", 2)},
	}

	first := staff.Reconcile(members, invs)
	second := staff.Reconcile(members, invs)
	assert.Equal(t, first, second)
}

func TestReconcile_IdentityKeysUnique(t *testing.T) {
	// один человек в двух источниках и с разным форматированием пробелов
	members := []backend.Member{
		member(1, "Аружан", "Ким", "+7 700 111 11 11",
			backend.ClubRole{ClubID: 1, Role: "coach", IsActive: true}),
		member(2, "Аружан", "К.", "+77001111111",
			backend.ClubRole{ClubID: 2, Role: "admin", IsActive: true}),
	}
	invs := map[int64][]backend.Invitation{
		3: {invitation(5, "+7 700 111 11 11", "coach", 3)},
	}

	out := staff.Reconcile(members, invs)
	seen := map[string]bool{}
	for _, e := range out {
		assert.False(t, seen[e.IdentityKey], "duplicate identity key %s", e.IdentityKey)
		seen[e.IdentityKey] = true
	}
	require.Len(t, out, 1)
	assert.ElementsMatch(t, []int64{1, 2, 3}, out[0].ClubIDs)
}
