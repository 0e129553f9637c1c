package domain

// Board is the top-level shared workspace owning lists and memberships.
// OwnerID is immutable after creation; ownership transfer is not supported.
// Deleting a board cascades to its lists, cards, comments, and memberships.
type Board struct {
	Entity
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	OwnerID     string `json:"owner_id"`
}

// BoardMember links a non-owner user to a board with a role.
// At most one membership row exists per (board, user) pair.
type BoardMember struct {
	Entity
	BoardID string `json:"board_id"`
	UserID  string `json:"user_id"`
	Role    Role   `json:"role"`
}

// BoardWithRole is a board annotated with the requesting user's effective role
// and the member count (stored memberships plus one for the owner).
type BoardWithRole struct {
	Board
	UserRole    Role `json:"user_role"`
	MemberCount int  `json:"member_count"`
}

// BoardMemberWithUser is a membership row with the member's public profile.
type BoardMemberWithUser struct {
	BoardMember
	User UserSummary `json:"user"`
}
