package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleOrder(t *testing.T) {
	require.True(t, RoleAdmin.AtLeast(RoleManager))
	require.True(t, RoleManager.AtLeast(RoleMember))
	require.False(t, RoleMember.AtLeast(RoleManager))
	require.True(t, RoleAdmin.IsSupervisor())
	require.True(t, RoleManager.IsSupervisor())
	require.False(t, RoleMember.IsSupervisor())
	require.False(t, Role("owner").Valid())
}

func TestEffectiveRole(t *testing.T) {
	tests := []struct {
		name        string
		memberships []Membership
		want        Role
		authorized  bool
	}{
		{
			name:       "no memberships means not authorized",
			authorized: false,
		},
		{
			name: "inactive memberships do not grant access",
			memberships: []Membership{
				{Role: RoleAdmin, IsActive: false},
			},
			authorized: false,
		},
		{
			name: "single active member",
			memberships: []Membership{
				{Role: RoleMember, IsActive: true},
			},
			want:       RoleMember,
			authorized: true,
		},
		{
			name: "highest privilege wins",
			memberships: []Membership{
				{Role: RoleMember, IsActive: true},
				{Role: RoleAdmin, IsActive: true},
				{Role: RoleManager, IsActive: true},
			},
			want:       RoleAdmin,
			authorized: true,
		},
		{
			name: "inactive admin falls back to active manager",
			memberships: []Membership{
				{Role: RoleAdmin, IsActive: false},
				{Role: RoleManager, IsActive: true},
			},
			want:       RoleManager,
			authorized: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := EffectiveRole(tc.memberships)
			require.Equal(t, tc.authorized, ok)
			if tc.authorized {
				require.Equal(t, tc.want, got)
			}
		})
	}
}
