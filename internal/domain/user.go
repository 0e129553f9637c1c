package domain

// User represents a registered account.
type User struct {
	Entity
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Argon2id encoded, never serialized
	AvatarURL    string `json:"avatar_url,omitempty"`
}

// UserSummary is the public projection of a user embedded in board member,
// assignment, and comment responses.
type UserSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Summary returns the public projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
	}
}
