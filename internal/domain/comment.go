package domain

import "time"

// editedTolerance absorbs persistence round-trip skew between CreatedAt and
// UpdatedAt so a freshly created comment does not report as edited.
const editedTolerance = time.Second

// Comment is a message on a card. AuthorID is immutable.
type Comment struct {
	Entity
	Content  string `json:"content"`
	CardID   string `json:"card_id"`
	AuthorID string `json:"author_id"`
}

// IsEdited reports whether the comment was changed after creation.
// True only when UpdatedAt exceeds CreatedAt by more than one second.
func (c *Comment) IsEdited() bool {
	return c.UpdatedAt.Sub(c.CreatedAt) > editedTolerance
}

// CommentWithAuthor is a comment with its author's public profile and the
// derived edited flag.
type CommentWithAuthor struct {
	Comment
	Author   UserSummary `json:"author"`
	IsEdited bool        `json:"is_edited"`
}
