package domain

// NotificationType classifies what triggered a notification.
type NotificationType string

const (
	// NotificationBoardInvitation is emitted when a user is invited to a board.
	NotificationBoardInvitation NotificationType = "board_invitation"
	// NotificationCardAssignment is emitted when a user is assigned to a card.
	NotificationCardAssignment NotificationType = "card_assignment"
	// NotificationRoleChange is emitted when a member's role is changed.
	NotificationRoleChange NotificationType = "role_change"
)

// Notification is a per-user read-model entry produced as a side effect of
// board and card operations. Delivery is polling-based; there is no push path.
type Notification struct {
	Entity
	UserID         string           `json:"user_id"`
	Type           NotificationType `json:"type"`
	Message        string           `json:"message"`
	RelatedBoardID string           `json:"related_board_id,omitempty"`
	RelatedCardID  string           `json:"related_card_id,omitempty"`
	IsRead         bool             `json:"is_read"`
}
