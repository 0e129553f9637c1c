package domain

// List is an ordered column of cards within a board.
// Position is a dense zero-based integer unique within the board.
// Deleting a list cascades to its cards.
type List struct {
	Entity
	Title    string `json:"title"`
	Position int    `json:"position"`
	BoardID  string `json:"board_id"`
}

// ListWithCards is a list with its cards eagerly loaded for board detail views.
// Cards are ordered ascending by position.
type ListWithCards struct {
	List
	Cards []CardWithAssignees `json:"cards"`
}
