package domain

import "testing"

func TestRoleAllows_Table(t *testing.T) {
	tests := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleOwner, ActionView, true},
		{RoleOwner, ActionEdit, true},
		{RoleOwner, ActionDelete, true},
		{RoleOwner, ActionManageMembers, true},
		{RoleOwner, ActionInviteMembers, true},

		{RoleModerator, ActionView, true},
		{RoleModerator, ActionEdit, true},
		{RoleModerator, ActionDelete, false},
		{RoleModerator, ActionManageMembers, false},
		{RoleModerator, ActionInviteMembers, false},

		{RoleVisitor, ActionView, true},
		{RoleVisitor, ActionEdit, false},
		{RoleVisitor, ActionDelete, false},
		{RoleVisitor, ActionManageMembers, false},
		{RoleVisitor, ActionInviteMembers, false},

		{RoleNone, ActionView, false},
		{RoleNone, ActionEdit, false},
		{RoleNone, ActionDelete, false},
		{RoleNone, ActionManageMembers, false},
		{RoleNone, ActionInviteMembers, false},
	}

	for _, tt := range tests {
		if got := tt.role.Allows(tt.action); got != tt.want {
			t.Errorf("Role(%q).Allows(%q) = %v, want %v", tt.role, tt.action, got, tt.want)
		}
	}
}

func TestRoleAllows_UnknownActionFailsClosed(t *testing.T) {
	for _, role := range []Role{RoleOwner, RoleModerator, RoleVisitor, RoleNone} {
		if role.Allows(Action("superpowers")) {
			t.Errorf("Role(%q) must deny unrecognized actions", role)
		}
		if role.Allows(Action("")) {
			t.Errorf("Role(%q) must deny empty action", role)
		}
	}
}

func TestParseMemberRole(t *testing.T) {
	if r, ok := ParseMemberRole("moderator"); !ok || r != RoleModerator {
		t.Errorf("ParseMemberRole(moderator) = %q, %v", r, ok)
	}
	if r, ok := ParseMemberRole("visitor"); !ok || r != RoleVisitor {
		t.Errorf("ParseMemberRole(visitor) = %q, %v", r, ok)
	}

	// Owner is derived from Board.OwnerID, never a storable membership role.
	for _, s := range []string{"owner", "admin", "", "MODERATOR"} {
		if _, ok := ParseMemberRole(s); ok {
			t.Errorf("ParseMemberRole(%q) should fail", s)
		}
	}
}
