package domain

// Role represents a user's relationship to a board.
//
// The owner is never stored as a membership row; it is derived from
// Board.OwnerID. Membership rows only ever hold moderator or visitor.
type Role string

const (
	// RoleOwner is the board creator. Derived, never persisted as a membership.
	RoleOwner Role = "owner"
	// RoleModerator can reshape board content but not its roster or existence.
	RoleModerator Role = "moderator"
	// RoleVisitor has read-only access to the board and its contents.
	RoleVisitor Role = "visitor"
	// RoleNone means the user has no relationship to the board.
	RoleNone Role = ""
)

// ParseMemberRole converts a string to a storable membership role.
// Only moderator and visitor are valid membership roles; owner is derived.
func ParseMemberRole(s string) (Role, bool) {
	switch s {
	case "moderator":
		return RoleModerator, true
	case "visitor":
		return RoleVisitor, true
	default:
		return RoleNone, false
	}
}

// Action is a permission-checked operation on a board or its descendants.
type Action string

const (
	// ActionView covers all read paths on a board, its lists, cards, and comments.
	ActionView Action = "view"
	// ActionEdit covers mutations of lists, cards, and other users' comments.
	ActionEdit Action = "edit"
	// ActionDelete covers deleting the board itself.
	ActionDelete Action = "delete"
	// ActionManageMembers covers role changes and member removal.
	ActionManageMembers Action = "manage_members"
	// ActionInviteMembers covers adding new members to the board.
	ActionInviteMembers Action = "invite_members"
)

// Allows reports whether the role may perform the action.
// Unrecognized actions fail closed.
func (r Role) Allows(a Action) bool {
	switch a {
	case ActionView:
		return r == RoleOwner || r == RoleModerator || r == RoleVisitor
	case ActionEdit:
		return r == RoleOwner || r == RoleModerator
	case ActionDelete, ActionManageMembers, ActionInviteMembers:
		return r == RoleOwner
	default:
		return false
	}
}
